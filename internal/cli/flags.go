package cli

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vmodl-helper/internal/app"
	"vmodl-helper/internal/policies"
	"vmodl-helper/internal/shared"
)

// reconcileOptions are the flags verify and generate share.
type reconcileOptions struct {
	Wsdl           string
	Vmodl          string
	Catalogs       []string
	RegistryModule string
	Exclude        []string
	Namespaces     []string
}

func (o *reconcileOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Wsdl, "wsdl", "", "Path to the vSphere WSDL document")
	cmd.Flags().StringVar(&o.Vmodl, "vmodl", "vmodl.db", "Path to the vmodl registry")
	cmd.Flags().StringSliceVar(&o.Catalogs, "catalog", nil, "Type catalog layer files, later files override earlier ones")
	cmd.Flags().StringVar(&o.RegistryModule, "registry-module", policies.CoreModule, "Client library module the registry belongs to")
	cmd.Flags().StringSliceVar(&o.Exclude, "exclude", nil, "Schema type name patterns to skip (default ArrayOf*,*RequestType)")
	cmd.Flags().StringSliceVar(&o.Namespaces, "namespace", nil, "Extra namespace=module mappings")
	_ = viper.BindPFlag("wsdl", cmd.Flags().Lookup("wsdl"))
	_ = viper.BindPFlag("vmodl", cmd.Flags().Lookup("vmodl"))
	_ = viper.BindPFlag("catalogs", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("registry_module", cmd.Flags().Lookup("registry-module"))
	_ = viper.BindPFlag("exclude", cmd.Flags().Lookup("exclude"))
}

func (o reconcileOptions) inputs(cmd *cobra.Command) (app.ReconcileInputs, error) {
	namespaces, err := resolveNamespaces(cmd, o.Namespaces)
	if err != nil {
		return app.ReconcileInputs{}, err
	}
	return app.ReconcileInputs{
		SchemaPath:     resolveString(cmd, o.Wsdl, "wsdl", "wsdl"),
		RegistryPath:   resolveString(cmd, o.Vmodl, "vmodl", "vmodl"),
		CatalogPaths:   resolveStrings(cmd, o.Catalogs, "catalogs", "catalog"),
		RegistryModule: resolveString(cmd, o.RegistryModule, "registry_module", "registry-module"),
		Exclude:        resolveStrings(cmd, o.Exclude, "exclude", "exclude"),
		Namespaces:     namespaces,
	}, nil
}

// resolveNamespaces reads --namespace pairs, or the "namespaces" config
// mapping when the flag is not set.
func resolveNamespaces(cmd *cobra.Command, values []string) (map[string]string, error) {
	if flagChanged(cmd, "namespace") || (cmd == nil && len(values) > 0) {
		pairs, err := shared.ParseNamespacePairs(values)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid --namespace value").
				WithCause(err)
		}
		return pairs, nil
	}
	return viper.GetStringMapString("namespaces"), nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
