package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"vmodl-helper/internal/policies"
	"vmodl-helper/internal/types"
)

// SchemaIndex is the filtered, name-addressable view of the schema types.
// Iteration order is schema document order.
type SchemaIndex struct {
	types    []types.SchemaType
	byName   map[string]int
	elements []map[string]types.SchemaElement
	excluded int
}

// NewSchemaIndex drops scaffolding types and indexes the rest by name.
// When a name is defined twice the first definition wins.
func NewSchemaIndex(ctx context.Context, schemaTypes []types.SchemaType, filter policies.SchemaFilterPolicy) *SchemaIndex {
	index := &SchemaIndex{byName: make(map[string]int, len(schemaTypes))}
	for _, schemaType := range schemaTypes {
		if filter.Excluded(schemaType.Name) {
			index.excluded++
			continue
		}
		if _, dup := index.byName[schemaType.Name]; dup {
			log.Ctx(ctx).Debug().
				Str("type", schemaType.Name).
				Msg("duplicate schema type ignored")
			continue
		}
		elements := make(map[string]types.SchemaElement, len(schemaType.Elements))
		for _, element := range schemaType.Elements {
			if _, dup := elements[element.Name]; !dup {
				elements[element.Name] = element
			}
		}
		index.byName[schemaType.Name] = len(index.types)
		index.types = append(index.types, schemaType)
		index.elements = append(index.elements, elements)
	}
	log.Ctx(ctx).Debug().
		Int("types", len(index.types)).
		Int("excluded", index.excluded).
		Msg("schema indexed")
	return index
}

func (i *SchemaIndex) Types() []types.SchemaType {
	return i.types
}

func (i *SchemaIndex) Len() int {
	return len(i.types)
}

// Excluded returns how many schema types the filter dropped.
func (i *SchemaIndex) Excluded() int {
	return i.excluded
}

func (i *SchemaIndex) Lookup(name string) (types.SchemaType, bool) {
	idx, ok := i.byName[name]
	if !ok {
		return types.SchemaType{}, false
	}
	return i.types[idx], true
}

// ElementsByName returns the named type's elements keyed by element name,
// or nil for an unknown type.
func (i *SchemaIndex) ElementsByName(name string) map[string]types.SchemaElement {
	idx, ok := i.byName[name]
	if !ok {
		return nil
	}
	return i.elements[idx]
}

// InheritedElementNames collects the element names of every type on
// schemaType's base chain.  A base that is not in the index is a broken
// inheritance chain.
func (i *SchemaIndex) InheritedElementNames(schemaType types.SchemaType) (map[string]struct{}, error) {
	inherited := map[string]struct{}{}
	visited := map[string]struct{}{schemaType.Name: {}}
	current := schemaType
	for current.Base != nil {
		baseName := localName(current.Base.Token)
		base, ok := i.Lookup(baseName)
		if !ok {
			return nil, brokenInheritanceError(current.Name, baseName)
		}
		if _, loop := visited[base.Name]; loop {
			return nil, brokenInheritanceError(current.Name, baseName+" (cycle)")
		}
		visited[base.Name] = struct{}{}
		for _, element := range base.Elements {
			inherited[element.Name] = struct{}{}
		}
		current = base
	}
	return inherited, nil
}
