package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vmodl-helper/internal/app"
	"vmodl-helper/internal/types"
)

type inspectOptions struct {
	Vmodl    string
	TypeName string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the registry or show one type's properties",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Vmodl, "vmodl", "vmodl.db", "Path to the vmodl registry")
	cmd.Flags().StringVar(&opts.TypeName, "type", "", "Type to show")
	_ = viper.BindPFlag("vmodl", cmd.Flags().Lookup("vmodl"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		RegistryPath: resolveString(cmd, opts.Vmodl, "vmodl", "vmodl"),
		TypeName:     opts.TypeName,
	})
	if err != nil {
		return err
	}

	if result.Entry != nil {
		printEntry(result.TypeName, result.Entry)
		return nil
	}
	fmt.Printf("registry entries: %d (indexed: %d)\n", result.TypeCount, result.IndexedCount)
	for _, summary := range result.Kinds {
		fmt.Printf("- %s: %d\n", summary.Kind, summary.Count)
	}
	if len(result.Unindexed) > 0 {
		fmt.Printf("not in type-name index: %s\n", strings.Join(result.Unindexed, ", "))
	}
	if len(result.Dangling) > 0 {
		fmt.Printf("indexed without entry: %s\n", strings.Join(result.Dangling, ", "))
	}
	return nil
}

func printEntry(name string, entry *types.RegistryEntry) {
	base := entry.WsdlBase
	if base == "" {
		base = "-"
	}
	fmt.Printf("%s (kind=%s, base=%s)\n", name, entry.Kind, base)
	for _, prop := range entry.Props {
		var flags []string
		if prop.IsOptional {
			flags = append(flags, "optional")
		}
		if prop.IsArray {
			flags = append(flags, "array")
		}
		line := fmt.Sprintf("- %s: %s", prop.Name, prop.WsdlType)
		if len(flags) > 0 {
			line += " [" + strings.Join(flags, ", ") + "]"
		}
		if prop.VersionIDRef != nil {
			line += " since " + *prop.VersionIDRef
		}
		fmt.Println(line)
	}
}
