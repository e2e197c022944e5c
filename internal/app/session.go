package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"vmodl-helper/internal/core"
	"vmodl-helper/internal/policies"
	"vmodl-helper/internal/shared"
	"vmodl-helper/internal/types"
)

// session holds everything one verify or generate run works on.
type session struct {
	index      *core.SchemaIndex
	registry   types.Registry
	reconciler core.Reconciler
}

func (s Service) openSession(ctx context.Context, in ReconcileInputs) (session, error) {
	schemaPath := strings.TrimSpace(in.SchemaPath)
	if schemaPath == "" {
		return session{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("schema document path is required")
	}
	registryPath := strings.TrimSpace(in.RegistryPath)
	if registryPath == "" {
		return session{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry path is required")
	}
	module := strings.TrimSpace(in.RegistryModule)
	if module == "" {
		module = policies.CoreModule
	}
	if module == types.ScopeGlobal || module == types.ScopeBasic {
		return session{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry module '" + module + "' is reserved")
	}
	exclude := shared.CleanList(in.Exclude)
	if err := policies.ValidateSchemaFilterPatterns(exclude); err != nil {
		return session{}, err
	}

	schemaTypes, err := s.SchemaReader.ReadSchema(schemaPath)
	if err != nil {
		return session{}, err
	}
	registry, err := s.RegistryStore.Load(registryPath)
	if err != nil {
		return session{}, err
	}

	catalog, err := s.NewCatalog()
	if err != nil {
		return session{}, err
	}
	catalog.AddRegistry(registry, module)
	for _, path := range shared.CleanList(in.CatalogPaths) {
		if err := catalog.LoadLayer(path); err != nil {
			return session{}, err
		}
	}

	namespaces := policies.NewNamespacePolicy(in.Namespaces)
	index := core.NewSchemaIndex(ctx, schemaTypes, policies.NewSchemaFilterPolicy(exclude))
	resolver := core.NewTypeResolver(catalog, namespaces, module)
	reconciler := core.NewReconciler(resolver, core.NewRegistryMutator(catalog, namespaces, resolver))

	log.Ctx(ctx).Info().
		Str("schema", schemaPath).
		Str("registry", registryPath).
		Str("module", module).
		Int("schema_types", index.Len()).
		Int("registry_entries", len(registry.Entries)).
		Strs("catalog_layers", catalog.Layers()).
		Msg("reconciliation inputs loaded")
	return session{index: index, registry: registry, reconciler: reconciler}, nil
}
