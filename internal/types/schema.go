package types

// TypeRef is a declared type token as it appears in the schema or the
// registry, e.g. "vim25:HostSystem", "xsd:int" or "HostSystem".
//
// Namespace carries the URI the token's prefix was bound to in the schema
// document.  Registry tokens have no namespace.
type TypeRef struct {
	Token     string
	Namespace string
}

// SchemaElement is one element of a complex type's content model.
type SchemaElement struct {
	Name      string
	Type      TypeRef
	MinOccurs int

	// MaxOccurs is Unbounded for maxOccurs="unbounded".
	MaxOccurs int
}

// IsOptional reports whether the element may be omitted (minOccurs=0).
func (e SchemaElement) IsOptional() bool {
	return e.MinOccurs == 0
}

// IsArray reports whether the element may repeat, i.e. maxOccurs is
// anything other than exactly one.
func (e SchemaElement) IsArray() bool {
	return e.MaxOccurs != 1
}

// SchemaType is a named complex type read from the schema document.
type SchemaType struct {
	Name      string
	Namespace string
	Elements  []SchemaElement

	// Base is the extension or restriction base, nil when the type does
	// not derive from another complex type.
	Base *TypeRef
}
