package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"vmodl-helper/internal/types"
)

// Inspect summarizes a registry, or returns one entry when TypeName is
// set.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	registryPath := strings.TrimSpace(req.RegistryPath)
	if registryPath == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("registry path is required")
	}
	registry, err := s.RegistryStore.Load(registryPath)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		TypeCount:    len(registry.Entries),
		IndexedCount: len(registry.TypeNames),
		Unindexed:    unindexedNames(registry),
		Dangling:     danglingNames(registry),
	}
	kinds := summarizeKinds(registry)
	for _, kind := range sortedKeys(kinds) {
		result.Kinds = append(result.Kinds, InspectKindSummary{Kind: kind, Count: kinds[kind]})
	}

	if typeName := strings.TrimSpace(req.TypeName); typeName != "" {
		entry, ok := registry.Lookup(typeName)
		if !ok {
			return InspectResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("type not in registry: " + typeName)
		}
		result.TypeName = typeName
		result.Entry = entry
	}
	return result, nil
}

func summarizeKinds(registry types.Registry) map[types.EntryKind]int {
	kinds := map[types.EntryKind]int{}
	for _, entry := range registry.Entries {
		if entry == nil {
			continue
		}
		kinds[entry.Kind]++
	}
	return kinds
}

func unindexedNames(registry types.Registry) []string {
	indexed := make(map[string]struct{}, len(registry.TypeNames))
	for _, name := range registry.TypeNames {
		indexed[name] = struct{}{}
	}
	var names []string
	for name := range registry.Entries {
		if _, ok := indexed[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func danglingNames(registry types.Registry) []string {
	var names []string
	for _, name := range registry.TypeNames {
		if _, ok := registry.Lookup(name); !ok {
			names = append(names, name)
		}
	}
	return names
}

func sortedKeys[K comparable, V any](input map[K]V) []K {
	keys := make([]K, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
