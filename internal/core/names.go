package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// typeSynonyms folds schema scalar types the client library does not model
// separately onto the ones it does.  References are always passed as
// managed objects, never as raw references.
var typeSynonyms = map[string]string{
	"long":                   "int",
	"short":                  "int",
	"byte":                   "int",
	"double":                 "float",
	"base64Binary":           "binary",
	"ManagedObjectReference": "ManagedObject",
}

// localName drops everything up to and including the last ':'.
func localName(token string) string {
	token = strings.TrimSpace(token)
	if idx := strings.LastIndex(token, ":"); idx >= 0 {
		return token[idx+1:]
	}
	return token
}

// canonicalToken applies prefix stripping and synonym folding but keeps
// the token's original casing.
func canonicalToken(token string) string {
	name := localName(token)
	if synonym, ok := typeSynonyms[name]; ok {
		return synonym
	}
	return name
}

// catalogName converts a token into the catalog naming convention:
// upper camel case, segments split on '_', '-' and '.'.
func catalogName(token string) string {
	segments := strings.FieldsFunc(canonicalToken(token), func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	caser := cases.Title(language.Und, cases.NoLower)
	var builder strings.Builder
	for _, segment := range segments {
		builder.WriteString(caser.String(segment))
	}
	return builder.String()
}
