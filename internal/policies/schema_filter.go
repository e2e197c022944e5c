package policies

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// DefaultSchemaExcludes names the scaffolding types a WSDL carries that
// never have a registry counterpart: array wrappers and request-parameter
// types.
var DefaultSchemaExcludes = []string{"ArrayOf*", "*RequestType"}

// SchemaFilterPolicy decides which schema types take part in
// reconciliation.  Patterns are exact names, "prefix*", "*suffix" or "*".
type SchemaFilterPolicy struct {
	Patterns []string
	exact    map[string]struct{}
	prefixes []string
	suffixes []string
	wildcard bool
}

func NewSchemaFilterPolicy(patterns []string) SchemaFilterPolicy {
	if len(patterns) == 0 {
		patterns = DefaultSchemaExcludes
	}
	policy := SchemaFilterPolicy{Patterns: append([]string(nil), patterns...)}
	policy.compile()
	return policy
}

// Excluded reports whether the named schema type is scaffolding.
func (p SchemaFilterPolicy) Excluded(name string) bool {
	if p.wildcard {
		return true
	}
	if _, ok := p.exact[name]; ok {
		return true
	}
	for _, prefix := range p.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	for _, suffix := range p.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// ValidateSchemaFilterPatterns rejects patterns Excluded would silently
// ignore.
func ValidateSchemaFilterPatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, kind := parseNamePattern(pattern); kind == patternInvalid {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid schema filter pattern: '" + pattern + "'")
		}
	}
	return nil
}

type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternSuffix
	patternWildcard
	patternInvalid
)

func (p *SchemaFilterPolicy) compile() {
	p.exact = map[string]struct{}{}
	p.prefixes = nil
	p.suffixes = nil
	p.wildcard = false
	for _, pattern := range p.Patterns {
		name, kind := parseNamePattern(pattern)
		switch kind {
		case patternWildcard:
			p.wildcard = true
		case patternExact:
			p.exact[name] = struct{}{}
		case patternPrefix:
			p.prefixes = append(p.prefixes, name)
		case patternSuffix:
			p.suffixes = append(p.suffixes, name)
		}
	}
}

func parseNamePattern(value string) (string, patternKind) {
	pattern := strings.TrimSpace(value)
	if pattern == "" {
		return "", patternInvalid
	}
	if pattern == "*" {
		return "", patternWildcard
	}
	leading := strings.HasPrefix(pattern, "*")
	trailing := strings.HasSuffix(pattern, "*")
	switch {
	case leading && trailing:
		// "*mid*" has no defined meaning here.
		return "", patternInvalid
	case trailing:
		return strings.TrimSuffix(pattern, "*"), patternPrefix
	case leading:
		return strings.TrimPrefix(pattern, "*"), patternSuffix
	}
	if strings.Contains(pattern, "*") {
		return "", patternInvalid
	}
	return pattern, patternExact
}
