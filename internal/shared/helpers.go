// Package shared provides common utility functions used by the cli and
// app packages of vmodl-helper.
package shared

import (
	"fmt"
	"strings"
)

// CleanList trims every value, drops empty ones and removes duplicates,
// keeping the first occurrence.
func CleanList(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// ParseNamespacePair splits a "namespace=module" mapping.  The namespace
// may itself contain '=' so the split happens at the last one.
func ParseNamespacePair(value string) (string, string, error) {
	idx := strings.LastIndex(value, "=")
	if idx < 0 {
		return "", "", fmt.Errorf("expected namespace=module, got %q", value)
	}
	namespace := strings.TrimSpace(value[:idx])
	module := strings.TrimSpace(value[idx+1:])
	if namespace == "" || module == "" {
		return "", "", fmt.Errorf("expected namespace=module, got %q", value)
	}
	return namespace, module, nil
}

// ParseNamespacePairs parses every pair into a namespace -> module map.
// Later pairs override earlier ones.
func ParseNamespacePairs(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, value := range CleanList(values) {
		namespace, module, err := ParseNamespacePair(value)
		if err != nil {
			return nil, err
		}
		out[namespace] = module
	}
	return out, nil
}
