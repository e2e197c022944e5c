package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vmodl-helper/internal/app"
)

type verifyOptions struct {
	reconcileOptions
	Strict bool
}

func newVerifyCommand() *cobra.Command {
	opts := verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Report schema types missing from the registry and mismatched property types",
		Example: "  vmodl-helper verify --wsdl path/to/vimService.wsdl\n" +
			"  vmodl-helper verify --wsdl pbmService.wsdl --vmodl pbm.db --registry-module pbm --catalog vim-types.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd.Context(), cmd, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when any finding is reported")
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runVerify(ctx context.Context, cmd *cobra.Command, opts verifyOptions) error {
	inputs, err := opts.inputs(cmd)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Verify(ctx, app.VerifyRequest{ReconcileInputs: inputs})
	if err != nil {
		return err
	}

	for _, finding := range result.Findings {
		fmt.Println(finding.String())
	}
	missing, mismatched := result.Counts()
	fmt.Printf("verified %d schema types (%d excluded) against %d registry entries: %d missing, %d mismatched\n",
		result.SchemaTypes, result.ExcludedTypes, result.RegistryEntries, missing, mismatched)

	if resolveBool(cmd, opts.Strict, "strict", "strict") && len(result.Findings) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: %d findings", msgRegistryDrift, len(result.Findings)))
	}
	return nil
}
