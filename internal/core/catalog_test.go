package core

import (
	"vmodl-helper/internal/policies"
	"vmodl-helper/internal/types"
)

type testCatalog map[string]map[string]types.CatalogType

func (c testCatalog) Lookup(scope string, name string) (types.CatalogType, bool) {
	entry, ok := c[scope][name]
	return entry, ok
}

func (c testCatalog) Register(scope string, entry types.CatalogType) {
	if c[scope] == nil {
		c[scope] = map[string]types.CatalogType{}
	}
	c[scope][entry.Name] = entry
}

func newTestCatalog() testCatalog {
	catalog := testCatalog{}
	for _, entry := range []types.CatalogType{
		{Name: "String", WsdlName: "xsd:string"},
		{Name: "Float", WsdlName: "xsd:float"},
		{Name: "DateTime", WsdlName: "xsd:dateTime"},
	} {
		catalog.Register(types.ScopeGlobal, entry)
	}
	for _, entry := range []types.CatalogType{
		{Name: "Base"},
		{Name: "ObjectWithProperties", Base: "Base"},
		{Name: "ObjectWithMethods", Base: "ObjectWithProperties"},
		{Name: "DataObject", Base: "ObjectWithProperties"},
		{Name: "ManagedObject", Base: "ObjectWithMethods"},
		{Name: "Int", WsdlName: "xsd:int"},
		{Name: "Boolean", WsdlName: "xsd:boolean"},
		{Name: "Binary", WsdlName: "xsd:base64Binary"},
		{Name: "AnyType", WsdlName: "xsd:anyType"},
	} {
		catalog.Register(types.ScopeBasic, entry)
	}
	for _, entry := range []types.CatalogType{
		{Name: "ManagedEntity", Base: "ManagedObject"},
		{Name: "HostSystem", Base: "ManagedEntity"},
		{Name: "Datastore", Base: "ManagedEntity"},
		{Name: "DynamicData", Base: "DataObject"},
	} {
		catalog.Register("vim", entry)
	}
	return catalog
}

func newTestReconciler(catalog testCatalog) Reconciler {
	namespaces := policies.NewNamespacePolicy(nil)
	resolver := NewTypeResolver(catalog, namespaces, "vim")
	return NewReconciler(resolver, NewRegistryMutator(catalog, namespaces, resolver))
}

func xsdRef(local string) types.TypeRef {
	return types.TypeRef{Token: "xsd:" + local, Namespace: types.XSDNamespace}
}

func vimRef(local string) types.TypeRef {
	return types.TypeRef{Token: "vim25:" + local, Namespace: "urn:vim25"}
}

func vimType(name string, base string, elements ...types.SchemaElement) types.SchemaType {
	schemaType := types.SchemaType{Name: name, Namespace: "urn:vim25", Elements: elements}
	if base != "" {
		ref := vimRef(base)
		schemaType.Base = &ref
	}
	return schemaType
}

func element(name string, ref types.TypeRef, minOccurs int, maxOccurs int) types.SchemaElement {
	return types.SchemaElement{Name: name, Type: ref, MinOccurs: minOccurs, MaxOccurs: maxOccurs}
}
