package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"vmodl-helper/internal/types"
)

// Reconciler compares schema types against registry entries and, in
// generate mode, brings the registry in line with the schema.
type Reconciler struct {
	Resolver *TypeResolver
	Mutator  RegistryMutator
}

// GenerateResult is the registry produced by Generate plus what changed.
type GenerateResult struct {
	Registry    types.Registry
	Added       []string
	Corrections []types.Finding
}

// Changed reports whether Generate altered the registry.
func (r GenerateResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Corrections) > 0
}

func NewReconciler(resolver *TypeResolver, mutator RegistryMutator) Reconciler {
	return Reconciler{
		Resolver: resolver,
		Mutator:  mutator,
	}
}

type propertyMismatch struct {
	index   int
	finding types.Finding
}

// Verify reports schema types missing from the registry and registry
// properties whose type is neither the schema's type nor a subtype of it.
// Registry properties without a schema element are not reported.
func (r Reconciler) Verify(ctx context.Context, index *SchemaIndex, registry types.Registry) ([]types.Finding, error) {
	findings := []types.Finding{}
	for _, schemaType := range index.Types() {
		entry, ok := registry.Lookup(schemaType.Name)
		if !ok {
			log.Ctx(ctx).Debug().Str("type", schemaType.Name).Msg("schema type missing from registry")
			findings = append(findings, types.Finding{
				Kind:     types.FindingMissingType,
				TypeName: schemaType.Name,
			})
			continue
		}
		mismatches, err := r.compareProperties(ctx, index, schemaType, entry)
		if err != nil {
			return nil, err
		}
		for _, mismatch := range mismatches {
			findings = append(findings, mismatch.finding)
		}
	}
	log.Ctx(ctx).Debug().Int("findings", len(findings)).Msg("verify completed")
	return findings, nil
}

// Generate synthesizes entries for schema types missing from the registry
// and then overwrites every incompatible property type with the schema's
// type.  It works on a copy: on error the caller's registry is untouched
// and nothing should be persisted.
func (r Reconciler) Generate(ctx context.Context, index *SchemaIndex, registry types.Registry) (GenerateResult, error) {
	working := registry.Clone()
	result := GenerateResult{}

	for _, schemaType := range index.Types() {
		if _, ok := working.Lookup(schemaType.Name); ok {
			continue
		}
		entry, err := r.Mutator.BuildEntry(ctx, index, schemaType)
		if err != nil {
			return GenerateResult{}, err
		}
		if err := r.Mutator.Register(ctx, &working, schemaType, entry); err != nil {
			return GenerateResult{}, err
		}
		result.Added = append(result.Added, schemaType.Name)
		log.Ctx(ctx).Debug().
			Str("type", schemaType.Name).
			Str("base", entry.WsdlBase).
			Int("props", len(entry.Props)).
			Msg("type added to registry")
	}

	for _, schemaType := range index.Types() {
		entry, ok := working.Lookup(schemaType.Name)
		if !ok {
			return GenerateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("schema type %s has no registry entry after synthesis", schemaType.Name))
		}
		mismatches, err := r.compareProperties(ctx, index, schemaType, entry)
		if err != nil {
			return GenerateResult{}, err
		}
		for _, mismatch := range mismatches {
			entry.Props[mismatch.index].WsdlType = mismatch.finding.SchemaType
			result.Corrections = append(result.Corrections, mismatch.finding)
			log.Ctx(ctx).Debug().
				Str("type", schemaType.Name).
				Str("property", mismatch.finding.Property).
				Str("from", mismatch.finding.RegistryType).
				Str("to", mismatch.finding.SchemaType).
				Msg("property type corrected")
		}
	}

	result.Registry = working
	return result, nil
}

// compareProperties checks each registry property that has a schema
// element of the same name.  Registry tokens are resolved with the schema
// type's namespace as their origin.
func (r Reconciler) compareProperties(ctx context.Context, index *SchemaIndex, schemaType types.SchemaType, entry *types.RegistryEntry) ([]propertyMismatch, error) {
	elements := index.ElementsByName(schemaType.Name)
	var mismatches []propertyMismatch
	for idx, prop := range entry.Props {
		element, ok := elements[prop.Name]
		if !ok {
			continue
		}
		declared := types.TypeRef{Token: prop.WsdlType, Namespace: schemaType.Namespace}
		comparison, err := r.Resolver.Compare(ctx, declared, element.Type)
		if err != nil {
			return nil, err
		}
		if comparison.Compatible {
			continue
		}
		mismatches = append(mismatches, propertyMismatch{
			index: idx,
			finding: types.Finding{
				Kind:         types.FindingTypeMismatch,
				TypeName:     schemaType.Name,
				Property:     prop.Name,
				RegistryType: r.Resolver.WsdlName(comparison.Declared),
				SchemaType:   r.Resolver.WsdlName(comparison.Reference),
			},
		})
	}
	return mismatches, nil
}
