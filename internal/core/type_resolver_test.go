package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmodl-helper/internal/policies"
	"vmodl-helper/internal/types"
)

func newTestResolver(catalog testCatalog) *TypeResolver {
	return NewTypeResolver(catalog, policies.NewNamespacePolicy(nil), "vim")
}

func TestTypeResolverScopes(t *testing.T) {
	resolver := newTestResolver(newTestCatalog())

	tests := []struct {
		name string
		ref  types.TypeRef
		want types.TypeID
	}{
		{name: "global", ref: xsdRef("string"), want: types.TypeID{Scope: types.ScopeGlobal, Name: "String"}},
		{name: "basic", ref: xsdRef("boolean"), want: types.TypeID{Scope: types.ScopeBasic, Name: "Boolean"}},
		{name: "module", ref: vimRef("HostSystem"), want: types.TypeID{Scope: "vim", Name: "HostSystem"}},
		{name: "registry token", ref: types.TypeRef{Token: "HostSystem", Namespace: "urn:vim25"}, want: types.TypeID{Scope: "vim", Name: "HostSystem"}},
		{name: "default module", ref: types.TypeRef{Token: "Datastore"}, want: types.TypeID{Scope: "vim", Name: "Datastore"}},
		{name: "lowercase registry token", ref: types.TypeRef{Token: "int"}, want: types.TypeID{Scope: types.ScopeBasic, Name: "Int"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(t.Context(), tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeResolverSynonyms(t *testing.T) {
	resolver := newTestResolver(newTestCatalog())
	ctx := t.Context()

	intID, err := resolver.Resolve(ctx, xsdRef("int"))
	require.NoError(t, err)
	for _, synonym := range []string{"long", "short", "byte"} {
		got, err := resolver.Resolve(ctx, xsdRef(synonym))
		require.NoError(t, err)
		assert.Equal(t, intID, got, synonym)
	}

	floatID, err := resolver.Resolve(ctx, xsdRef("float"))
	require.NoError(t, err)
	got, err := resolver.Resolve(ctx, xsdRef("double"))
	require.NoError(t, err)
	assert.Equal(t, floatID, got)

	got, err = resolver.Resolve(ctx, xsdRef("base64Binary"))
	require.NoError(t, err)
	assert.Equal(t, types.TypeID{Scope: types.ScopeBasic, Name: "Binary"}, got)

	got, err = resolver.Resolve(ctx, vimRef("ManagedObjectReference"))
	require.NoError(t, err)
	assert.Equal(t, types.TypeID{Scope: types.ScopeBasic, Name: "ManagedObject"}, got)
}

func TestTypeResolverUnresolved(t *testing.T) {
	resolver := newTestResolver(newTestCatalog())

	_, err := resolver.Resolve(t.Context(), vimRef("Nonsense"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), `unresolved type: "vim25:Nonsense"`)

	_, err = resolver.Resolve(t.Context(), types.TypeRef{Token: "xsd:"})
	require.Error(t, err)
}

func TestTypeResolverCompatibilityDirection(t *testing.T) {
	resolver := newTestResolver(newTestCatalog())
	ctx := t.Context()

	tests := []struct {
		name      string
		declared  types.TypeRef
		reference types.TypeRef
		want      bool
	}{
		{name: "narrowed reference", declared: types.TypeRef{Token: "HostSystem"}, reference: vimRef("ManagedObjectReference"), want: true},
		{name: "widened reference", declared: types.TypeRef{Token: "ManagedObject"}, reference: vimRef("HostSystem"), want: false},
		{name: "siblings", declared: types.TypeRef{Token: "Datastore"}, reference: vimRef("HostSystem"), want: false},
		{name: "same scalar", declared: types.TypeRef{Token: "long"}, reference: xsdRef("int"), want: true},
		{name: "scalar mismatch", declared: types.TypeRef{Token: "int"}, reference: xsdRef("string"), want: false},
		{name: "data object", declared: types.TypeRef{Token: "DynamicData"}, reference: types.TypeRef{Token: "DataObject"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.IsCompatible(ctx, tt.declared, tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeResolverCycleTerminates(t *testing.T) {
	catalog := newTestCatalog()
	catalog.Register("vim", types.CatalogType{Name: "Loop", Base: "Knot"})
	catalog.Register("vim", types.CatalogType{Name: "Knot", Base: "Loop"})
	resolver := newTestResolver(catalog)

	assert.False(t, resolver.IsDescendant(
		types.TypeID{Scope: "vim", Name: "Loop"},
		types.TypeID{Scope: types.ScopeBasic, Name: "DataObject"},
	))
}

func TestTypeResolverRegistryToken(t *testing.T) {
	resolver := newTestResolver(newTestCatalog())

	tests := []struct {
		ref  types.TypeRef
		want string
	}{
		{ref: xsdRef("int"), want: "int"},
		{ref: xsdRef("long"), want: "int"},
		{ref: xsdRef("dateTime"), want: "dateTime"},
		{ref: vimRef("ManagedObjectReference"), want: "ManagedObject"},
		{ref: vimRef("HostSystem"), want: "HostSystem"},
		{ref: types.TypeRef{Token: "pbm:PbmProfileId"}, want: "PbmProfileId"},
	}
	for _, tt := range tests {
		got, err := resolver.RegistryToken(tt.ref)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.ref.Token)
	}

	_, err := resolver.RegistryToken(types.TypeRef{Token: "x:Thing", Namespace: "urn:elsewhere"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestTypeResolverWsdlName(t *testing.T) {
	resolver := newTestResolver(newTestCatalog())

	assert.Equal(t, "xsd:string", resolver.WsdlName(types.TypeID{Scope: types.ScopeGlobal, Name: "String"}))
	assert.Equal(t, "HostSystem", resolver.WsdlName(types.TypeID{Scope: "vim", Name: "HostSystem"}))
}

func TestTypeResolverFallsBackToCoreModule(t *testing.T) {
	resolver := NewTypeResolver(newTestCatalog(), policies.NewNamespacePolicy(nil), "pbm")

	got, err := resolver.Resolve(t.Context(), types.TypeRef{Token: "HostSystem", Namespace: "urn:pbm"})
	require.NoError(t, err)
	assert.Equal(t, types.TypeID{Scope: "vim", Name: "HostSystem"}, got)
}
