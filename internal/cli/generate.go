package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vmodl-helper/internal/app"
)

type generateOptions struct {
	reconcileOptions
	DryRun bool
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Add missing schema types to the registry and correct mismatched property types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report changes without writing the registry")
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	inputs, err := opts.inputs(cmd)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Generate(ctx, app.GenerateRequest{
		ReconcileInputs: inputs,
		DryRun:          resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	if err != nil {
		return err
	}

	fmt.Print(generateSummary(result))
	return nil
}

func generateSummary(result app.GenerateResult) string {
	var out strings.Builder
	for _, name := range result.Added {
		fmt.Fprintf(&out, "Adding %s to registry\n", name)
	}
	for _, correction := range result.Corrections {
		fmt.Fprintf(&out, "Correcting %s.%s: %s -> %s\n",
			correction.TypeName, correction.Property, correction.RegistryType, correction.SchemaType)
	}
	switch {
	case !result.Changed && result.Written:
		fmt.Fprintf(&out, "registry written: %s (already up to date)\n", result.RegistryPath)
	case !result.Changed:
		fmt.Fprintf(&out, "dry run: %s already up to date\n", result.RegistryPath)
	case result.Written:
		fmt.Fprintf(&out, "registry written: %s (%d added, %d corrected)\n",
			result.RegistryPath, len(result.Added), len(result.Corrections))
	default:
		fmt.Fprintf(&out, "dry run: %s not written (%d added, %d corrected)\n",
			result.RegistryPath, len(result.Added), len(result.Corrections))
	}
	return out.String()
}
