package types

import "fmt"

// Finding is one disagreement between the schema and the registry.
type Finding struct {
	Kind     FindingKind
	TypeName string

	// Property, RegistryType and SchemaType are set for type mismatches.
	// Both types are canonical wire names.
	Property     string
	RegistryType string
	SchemaType   string
}

func (f Finding) String() string {
	switch f.Kind {
	case FindingMissingType:
		return fmt.Sprintf("%s is missing", f.TypeName)
	case FindingTypeMismatch:
		return fmt.Sprintf("%s.%s %s doesn't match %s", f.TypeName, f.Property, f.SchemaType, f.RegistryType)
	default:
		return fmt.Sprintf("%s: %s", f.Kind, f.TypeName)
	}
}
