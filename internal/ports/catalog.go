package ports

import "vmodl-helper/internal/types"

// TypeCatalogPort is the lookup surface of the client library's type
// catalog.  Scopes are types.ScopeGlobal, types.ScopeBasic or a module
// name such as "vim".
type TypeCatalogPort interface {
	// Lookup finds a type by its canonical (upper camel case) name.
	Lookup(scope string, name string) (types.CatalogType, bool)

	// Register adds or replaces a type in scope.
	Register(scope string, entry types.CatalogType)
}

// TypeCatalogLoaderPort builds a catalog from its sources.
type TypeCatalogLoaderPort interface {
	TypeCatalogPort

	// AddRegistry registers every registry entry into module.
	AddRegistry(registry types.Registry, module string)

	// LoadLayer merges a catalog file.  Later layers override earlier
	// ones per scope and name.
	LoadLayer(path string) error

	// Layers names the catalog sources merged so far, in load order.
	Layers() []string
}
