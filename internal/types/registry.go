package types

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// TypeNamesKey is the reserved registry key holding the type-name index.
const TypeNamesKey = "_typenames"

// RegistryProperty is one declared property of a registry entry.
type RegistryProperty struct {
	Name       string `yaml:"name"`
	IsOptional bool   `yaml:"is-optional"`
	IsArray    bool   `yaml:"is-array"`

	// VersionIDRef is opaque to this tool and written back as read.
	VersionIDRef *string `yaml:"version-id-ref"`
	WsdlType     string  `yaml:"wsdl_type"`

	Extra map[string]any `yaml:",inline"`
}

// RegistryEntry describes how the client library marshals one type.
type RegistryEntry struct {
	Kind     EntryKind          `yaml:"kind"`
	Props    []RegistryProperty `yaml:"props"`
	WsdlBase string             `yaml:"wsdl_base,omitempty"`

	Extra map[string]any `yaml:",inline"`
}

// Registry is the in-memory form of a vmodl registry: entries keyed by
// type name plus the ordered type-name index.
type Registry struct {
	Entries   map[string]*RegistryEntry
	TypeNames []string
}

func NewRegistry() Registry {
	return Registry{Entries: map[string]*RegistryEntry{}}
}

func (r Registry) Lookup(name string) (*RegistryEntry, bool) {
	entry, ok := r.Entries[name]
	return entry, ok && entry != nil
}

// Insert stores entry under name and appends name to the type-name index
// unless it is already listed.
func (r *Registry) Insert(name string, entry RegistryEntry) {
	if r.Entries == nil {
		r.Entries = map[string]*RegistryEntry{}
	}
	stored := entry
	r.Entries[name] = &stored
	for _, existing := range r.TypeNames {
		if existing == name {
			return
		}
	}
	r.TypeNames = append(r.TypeNames, name)
}

// Clone returns a deep copy.  Extra maps are copied one level deep; their
// values are never mutated by this tool.
func (r Registry) Clone() Registry {
	out := Registry{
		Entries:   make(map[string]*RegistryEntry, len(r.Entries)),
		TypeNames: append([]string(nil), r.TypeNames...),
	}
	for name, entry := range r.Entries {
		if entry == nil {
			continue
		}
		copied := *entry
		copied.Extra = cloneExtra(entry.Extra)
		copied.Props = make([]RegistryProperty, len(entry.Props))
		for i, prop := range entry.Props {
			prop.Extra = cloneExtra(prop.Extra)
			if prop.VersionIDRef != nil {
				ref := *prop.VersionIDRef
				prop.VersionIDRef = &ref
			}
			copied.Props[i] = prop
		}
		out.Entries[name] = &copied
	}
	return out
}

// OrderedNames returns every entry name: indexed names first in index
// order, then entries missing from the index in lexical order.
func (r Registry) OrderedNames() []string {
	seen := make(map[string]struct{}, len(r.Entries))
	names := make([]string, 0, len(r.Entries))
	for _, name := range r.TypeNames {
		if _, ok := r.Entries[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	var rest []string
	for name := range r.Entries {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

type typeNamesRecord struct {
	TypeNames []string `yaml:"_typenames"`
}

// UnmarshalYAML decodes the nested mapping form of the registry.
func (r *Registry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("registry: expected mapping at line %d", node.Line)
	}
	decoded := NewRegistry()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		if key == TypeNamesKey {
			var record typeNamesRecord
			if err := value.Decode(&record); err != nil {
				return fmt.Errorf("registry: %s: %w", TypeNamesKey, err)
			}
			decoded.TypeNames = record.TypeNames
			continue
		}
		var entry RegistryEntry
		if err := value.Decode(&entry); err != nil {
			return fmt.Errorf("registry: entry %s: %w", key, err)
		}
		decoded.Entries[key] = &entry
	}
	*r = decoded
	return nil
}

// MarshalYAML emits the index first, then entries in OrderedNames order,
// so that encoding the same registry twice yields identical bytes.
func (r Registry) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	index := &yaml.Node{}
	if err := index.Encode(typeNamesRecord{TypeNames: nonNil(r.TypeNames)}); err != nil {
		return nil, err
	}
	root.Content = append(root.Content, scalarKey(TypeNamesKey), index)
	for _, name := range r.OrderedNames() {
		value := &yaml.Node{}
		if err := value.Encode(r.Entries[name]); err != nil {
			return nil, fmt.Errorf("registry: entry %s: %w", name, err)
		}
		root.Content = append(root.Content, scalarKey(name), value)
	}
	return root, nil
}

func scalarKey(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func cloneExtra(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
