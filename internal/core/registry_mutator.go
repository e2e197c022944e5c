package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"vmodl-helper/internal/policies"
	"vmodl-helper/internal/ports"
	"vmodl-helper/internal/types"
)

// DefaultDataBase is the wsdl_base of a synthesized entry whose schema
// type declares no base.
const DefaultDataBase = "DataObject"

// RegistryMutator builds registry entries for schema types the registry
// does not know yet and registers them with the registry and the catalog.
type RegistryMutator struct {
	Catalog    ports.TypeCatalogPort
	Namespaces policies.NamespacePolicy
	Resolver   *TypeResolver
}

func NewRegistryMutator(catalog ports.TypeCatalogPort, namespaces policies.NamespacePolicy, resolver *TypeResolver) RegistryMutator {
	return RegistryMutator{
		Catalog:    catalog,
		Namespaces: namespaces,
		Resolver:   resolver,
	}
}

// OwnElements returns schemaType's elements that are not inherited from
// its base chain, in declaration order.
func (m RegistryMutator) OwnElements(index *SchemaIndex, schemaType types.SchemaType) ([]types.SchemaElement, error) {
	inherited, err := index.InheritedElementNames(schemaType)
	if err != nil {
		return nil, err
	}
	own := make([]types.SchemaElement, 0, len(schemaType.Elements))
	for _, element := range schemaType.Elements {
		if _, ok := inherited[element.Name]; ok {
			continue
		}
		own = append(own, element)
	}
	return own, nil
}

// BuildEntry synthesizes the data entry for schemaType.
func (m RegistryMutator) BuildEntry(ctx context.Context, index *SchemaIndex, schemaType types.SchemaType) (types.RegistryEntry, error) {
	assert.NotEmpty(ctx, schemaType.Name, "schema type name must be set")
	own, err := m.OwnElements(index, schemaType)
	if err != nil {
		return types.RegistryEntry{}, err
	}
	entry := types.RegistryEntry{
		Kind:     types.EntryKindData,
		Props:    make([]types.RegistryProperty, 0, len(own)),
		WsdlBase: DefaultDataBase,
	}
	if schemaType.Base != nil {
		entry.WsdlBase = localName(schemaType.Base.Token)
	}
	for _, element := range own {
		token, err := m.Resolver.RegistryToken(element.Type)
		if err != nil {
			return types.RegistryEntry{}, err
		}
		entry.Props = append(entry.Props, types.RegistryProperty{
			Name:       element.Name,
			IsOptional: element.IsOptional(),
			IsArray:    element.IsArray(),
			WsdlType:   token,
		})
	}
	return entry, nil
}

// Register stores entry in the registry and its type-name index, and
// makes the type known to the catalog module owning its namespace.  The
// namespace is checked first so nothing is written for an unknown one.
func (m RegistryMutator) Register(ctx context.Context, registry *types.Registry, schemaType types.SchemaType, entry types.RegistryEntry) error {
	module, err := m.Namespaces.ModuleFor(schemaType.Namespace, schemaType.Name)
	if err != nil {
		return err
	}
	registry.Insert(schemaType.Name, entry)
	m.Catalog.Register(module, types.CatalogType{
		Name: schemaType.Name,
		Base: entry.WsdlBase,
	})
	return nil
}
