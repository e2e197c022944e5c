package adapters

import (
	_ "embed"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"vmodl-helper/internal/ports"
	"vmodl-helper/internal/types"
)

//go:embed catalog/builtin.yaml
var builtinCatalog []byte

// TypeCatalogAdapter implements TypeCatalogLoaderPort as an in-memory
// table of scopes.  It starts from the embedded built-in scopes; registry
// entries and catalog layer files are merged on top, later sources
// overriding earlier ones per scope and name.
type TypeCatalogAdapter struct {
	scopes map[string]map[string]types.CatalogType

	// layers is the merge order, logged with each run's inputs.
	layers []string
}

// NewTypeCatalogAdapter returns a catalog holding the built-in global and
// basic scopes.
func NewTypeCatalogAdapter() (*TypeCatalogAdapter, error) {
	a := &TypeCatalogAdapter{scopes: map[string]map[string]types.CatalogType{}}
	if err := a.merge(builtinCatalog, "builtin"); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *TypeCatalogAdapter) Lookup(scope string, name string) (types.CatalogType, bool) {
	entry, ok := a.scopes[scope][name]
	return entry, ok
}

func (a *TypeCatalogAdapter) Register(scope string, entry types.CatalogType) {
	name := strings.TrimSpace(entry.Name)
	if scope == "" || name == "" {
		return
	}
	entry.Name = name
	if a.scopes[scope] == nil {
		a.scopes[scope] = map[string]types.CatalogType{}
	}
	a.scopes[scope][name] = entry
}

// AddRegistry registers every registry entry into module.  An entry
// without wsdl_base inherits from ManagedObject when managed, from Enum
// for enums and from DataObject otherwise.
func (a *TypeCatalogAdapter) AddRegistry(registry types.Registry, module string) {
	for name, entry := range registry.Entries {
		if entry == nil {
			continue
		}
		base := entry.WsdlBase
		if base == "" {
			switch entry.Kind {
			case types.EntryKindManaged:
				base = "ManagedObject"
			case types.EntryKindEnum:
				base = "Enum"
			default:
				base = "DataObject"
			}
		}
		a.Register(module, types.CatalogType{Name: name, Base: base})
	}
	log.Debug().
		Str("module", module).
		Int("types", len(registry.Entries)).
		Msg("registry added to type catalog")
}

// LoadLayer reads a catalog file and merges its scopes.
func (a *TypeCatalogAdapter) LoadLayer(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read catalog file: " + path).
			WithCause(err)
	}
	return a.merge(data, path)
}

func (a *TypeCatalogAdapter) merge(data []byte, source string) error {
	var file types.CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse catalog file: " + source).
			WithCause(err)
	}
	if file.CatalogVersion == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog file missing catalog_version: " + source)
	}

	count := 0
	add := func(scope string, entries []types.CatalogType) error {
		for _, entry := range entries {
			if strings.TrimSpace(entry.Name) == "" {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg("catalog scope '" + scope + "' has an entry without name in " + source)
			}
			if _, exists := a.Lookup(scope, entry.Name); exists {
				log.Debug().
					Str("scope", scope).
					Str("type", entry.Name).
					Str("layer", source).
					Msg("catalog type overridden by later layer")
			}
			a.Register(scope, entry)
			count++
		}
		return nil
	}
	if err := add(types.ScopeGlobal, file.Global); err != nil {
		return err
	}
	if err := add(types.ScopeBasic, file.Basic); err != nil {
		return err
	}
	for module, entries := range file.Modules {
		module = strings.TrimSpace(module)
		if module == "" || module == types.ScopeGlobal || module == types.ScopeBasic {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("catalog file has invalid module name '" + module + "': " + source)
		}
		if err := add(module, entries); err != nil {
			return err
		}
	}

	a.layers = append(a.layers, source)
	log.Debug().
		Str("path", source).
		Int("types", count).
		Msg("catalog layer loaded")
	return nil
}

// Layers returns the sources merged so far, in load order.
func (a *TypeCatalogAdapter) Layers() []string {
	return append([]string(nil), a.layers...)
}

var _ ports.TypeCatalogLoaderPort = (*TypeCatalogAdapter)(nil)
