package types

// TypeID identifies a resolved type: the catalog scope it was found in
// plus its canonical name.
type TypeID struct {
	Scope string
	Name  string
}

func (id TypeID) String() string {
	return id.Scope + "::" + id.Name
}

// CatalogType is one known client-library type.
type CatalogType struct {
	Name string `yaml:"name"`

	// Base names the parent type.  It is resolved lazily, first in the
	// type's own scope, then in the basic and global scopes.
	Base string `yaml:"base,omitempty"`

	// WsdlName is the type's name on the wire, e.g. "xsd:int".  Empty
	// means the catalog name is also the wire name.
	WsdlName string `yaml:"wsdl_name,omitempty"`
}

// CatalogFile is the top-level structure of a catalog layer file.
type CatalogFile struct {
	CatalogVersion string                   `yaml:"catalog_version"`
	Global         []CatalogType            `yaml:"global,omitempty"`
	Basic          []CatalogType            `yaml:"basic,omitempty"`
	Modules        map[string][]CatalogType `yaml:"modules,omitempty"`
}
