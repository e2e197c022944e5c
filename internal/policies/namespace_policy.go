package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"vmodl-helper/internal/types"
)

// CoreModule is the module every other module's types may refer to.
const CoreModule = "vim"

// DefaultNamespaceModules maps each schema target namespace to the client
// library module that owns its types.
var DefaultNamespaceModules = map[string]string{
	"urn:vim25": CoreModule,
	"urn:pbm":   "pbm",
	"urn:sms":   "sms",
}

// defaultPrefixNamespaces is consulted when a QName prefix was never bound
// in the document, matching the conventional prefixes of the vSphere WSDLs.
var defaultPrefixNamespaces = map[string]string{
	"xsd":   types.XSDNamespace,
	"xs":    types.XSDNamespace,
	"vim25": "urn:vim25",
	"pbm":   "urn:pbm",
	"sms":   "urn:sms",
}

// NamespacePolicy maps schema namespaces onto client-library modules.
type NamespacePolicy struct {
	modules map[string]string
}

// NewNamespacePolicy returns the default mapping extended (or overridden)
// by extra namespace -> module pairs.
func NewNamespacePolicy(extra map[string]string) NamespacePolicy {
	modules := make(map[string]string, len(DefaultNamespaceModules)+len(extra))
	for ns, module := range DefaultNamespaceModules {
		modules[ns] = module
	}
	for ns, module := range extra {
		ns = strings.TrimSpace(ns)
		module = strings.TrimSpace(module)
		if ns == "" || module == "" {
			continue
		}
		modules[ns] = module
	}
	return NamespacePolicy{modules: modules}
}

// ModuleFor returns the module owning namespace.  Unknown namespaces are
// reported as a failed precondition naming the type being placed.
func (p NamespacePolicy) ModuleFor(namespace string, typeName string) (string, error) {
	if module, ok := p.modules[strings.TrimSpace(namespace)]; ok {
		return module, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("unknown namespace: %q for %s", namespace, typeName))
}

// Classify reports where a type reference comes from: the XML Schema
// built-ins, a known module, or neither.
func (p NamespacePolicy) Classify(ref types.TypeRef) (module string, builtin bool, ok bool) {
	namespace := p.NamespaceOf(ref)
	if namespace == types.XSDNamespace {
		return "", true, true
	}
	module, ok = p.modules[namespace]
	return module, false, ok
}

// NamespaceOf returns the reference's namespace, falling back to the
// conventional binding of its prefix.
func (p NamespacePolicy) NamespaceOf(ref types.TypeRef) string {
	if ref.Namespace != "" {
		return ref.Namespace
	}
	prefix, _, found := strings.Cut(ref.Token, ":")
	if !found {
		return ""
	}
	return defaultPrefixNamespaces[prefix]
}
