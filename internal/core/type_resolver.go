package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"vmodl-helper/internal/policies"
	"vmodl-helper/internal/ports"
	"vmodl-helper/internal/types"
)

// TypeResolver maps schema and registry type tokens onto catalog
// identities and answers subtype questions over the catalog's base-type
// graph.  Resolutions are cached for the lifetime of the resolver.
type TypeResolver struct {
	Catalog       ports.TypeCatalogPort
	Namespaces    policies.NamespacePolicy
	DefaultModule string

	cache map[types.TypeRef]types.TypeID
}

// Comparison is the outcome of comparing a declared type against a
// reference type.
type Comparison struct {
	Declared   types.TypeID
	Reference  types.TypeID
	Compatible bool
}

func NewTypeResolver(catalog ports.TypeCatalogPort, namespaces policies.NamespacePolicy, defaultModule string) *TypeResolver {
	return &TypeResolver{
		Catalog:       catalog,
		Namespaces:    namespaces,
		DefaultModule: defaultModule,
		cache:         map[types.TypeRef]types.TypeID{},
	}
}

// Resolve normalizes ref and looks it up in the global scope, the basic
// scope, the module owning ref's namespace, the default module and finally
// the core module.
func (r *TypeResolver) Resolve(ctx context.Context, ref types.TypeRef) (types.TypeID, error) {
	if id, ok := r.cache[ref]; ok {
		return id, nil
	}
	name := catalogName(ref.Token)
	if name == "" {
		return types.TypeID{}, unresolvedTypeError(ref.Token, "empty type name")
	}
	for _, scope := range r.lookupScopes(ref) {
		entry, ok := r.Catalog.Lookup(scope, name)
		if !ok {
			continue
		}
		id := types.TypeID{Scope: scope, Name: entry.Name}
		if r.cache == nil {
			r.cache = map[types.TypeRef]types.TypeID{}
		}
		r.cache[ref] = id
		log.Ctx(ctx).Debug().
			Str("token", ref.Token).
			Str("identity", id.String()).
			Msg("type resolved")
		return id, nil
	}
	return types.TypeID{}, unresolvedTypeError(ref.Token, "")
}

// Compare resolves both references and reports whether declared is the
// same type as reference or one of its descendants.
func (r *TypeResolver) Compare(ctx context.Context, declared types.TypeRef, reference types.TypeRef) (Comparison, error) {
	declaredID, err := r.Resolve(ctx, declared)
	if err != nil {
		return Comparison{}, err
	}
	referenceID, err := r.Resolve(ctx, reference)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{
		Declared:   declaredID,
		Reference:  referenceID,
		Compatible: r.IsDescendant(declaredID, referenceID),
	}, nil
}

// IsCompatible is Compare reduced to its verdict.
func (r *TypeResolver) IsCompatible(ctx context.Context, declared types.TypeRef, reference types.TypeRef) (bool, error) {
	comparison, err := r.Compare(ctx, declared, reference)
	if err != nil {
		return false, err
	}
	return comparison.Compatible, nil
}

// IsDescendant reports whether id equals ancestor or inherits from it.
func (r *TypeResolver) IsDescendant(id types.TypeID, ancestor types.TypeID) bool {
	seen := map[types.TypeID]struct{}{}
	current := id
	for {
		if current == ancestor {
			return true
		}
		if _, loop := seen[current]; loop {
			return false
		}
		seen[current] = struct{}{}
		parent, ok := r.parentOf(current)
		if !ok {
			return false
		}
		current = parent
	}
}

// WsdlName returns the wire name of a resolved identity.
func (r *TypeResolver) WsdlName(id types.TypeID) string {
	entry, ok := r.Catalog.Lookup(id.Scope, id.Name)
	if !ok || entry.WsdlName == "" {
		return id.Name
	}
	return entry.WsdlName
}

// RegistryToken maps a schema element type onto the token stored in a
// synthesized registry property: the local name after synonym folding.
// Only XML Schema built-ins and known module namespaces are accepted.
func (r *TypeResolver) RegistryToken(ref types.TypeRef) (string, error) {
	if _, _, ok := r.Namespaces.Classify(ref); !ok {
		return "", unresolvedTypeError(ref.Token, "unrecognized schema namespace")
	}
	token := canonicalToken(ref.Token)
	if token == "" {
		return "", unresolvedTypeError(ref.Token, "empty type name")
	}
	return token, nil
}

func (r *TypeResolver) lookupScopes(ref types.TypeRef) []string {
	scopes := []string{types.ScopeGlobal, types.ScopeBasic}
	if module, _, ok := r.Namespaces.Classify(ref); ok && module != "" {
		scopes = append(scopes, module)
	}
	scopes = appendScope(scopes, r.DefaultModule)
	return appendScope(scopes, policies.CoreModule)
}

func (r *TypeResolver) parentOf(id types.TypeID) (types.TypeID, bool) {
	entry, ok := r.Catalog.Lookup(id.Scope, id.Name)
	if !ok || entry.Base == "" {
		return types.TypeID{}, false
	}
	name := catalogName(entry.Base)
	scopes := appendScope([]string{id.Scope}, types.ScopeBasic)
	scopes = appendScope(scopes, types.ScopeGlobal)
	scopes = appendScope(scopes, r.DefaultModule)
	scopes = appendScope(scopes, policies.CoreModule)
	for _, scope := range scopes {
		if parent, found := r.Catalog.Lookup(scope, name); found {
			return types.TypeID{Scope: scope, Name: parent.Name}, true
		}
	}
	return types.TypeID{}, false
}

func appendScope(scopes []string, scope string) []string {
	if scope == "" {
		return scopes
	}
	for _, existing := range scopes {
		if existing == scope {
			return scopes
		}
	}
	return append(scopes, scope)
}
