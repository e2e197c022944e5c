package app

import "vmodl-helper/internal/types"

// ReconcileInputs are the inputs shared by verify and generate.
type ReconcileInputs struct {
	SchemaPath     string
	RegistryPath   string
	CatalogPaths   []string
	RegistryModule string
	Exclude        []string
	Namespaces     map[string]string
}

type VerifyRequest struct {
	ReconcileInputs
}

type VerifyResult struct {
	Findings        []types.Finding
	SchemaTypes     int
	ExcludedTypes   int
	RegistryEntries int
}

// Counts splits findings into missing types and type mismatches.
func (r VerifyResult) Counts() (missing int, mismatched int) {
	for _, finding := range r.Findings {
		switch finding.Kind {
		case types.FindingMissingType:
			missing++
		case types.FindingTypeMismatch:
			mismatched++
		}
	}
	return missing, mismatched
}

type GenerateRequest struct {
	ReconcileInputs
	DryRun bool
}

type GenerateResult struct {
	Added        []string
	Corrections  []types.Finding
	RegistryPath string
	Written      bool

	// Changed is false when the registry already matched the schema.
	Changed bool
}

type InspectRequest struct {
	RegistryPath string
	TypeName     string
}

type InspectKindSummary struct {
	Kind  types.EntryKind
	Count int
}

type InspectResult struct {
	TypeCount    int
	IndexedCount int
	Kinds        []InspectKindSummary

	// Unindexed lists entries missing from the type-name index and
	// Dangling lists indexed names without an entry.
	Unindexed []string
	Dangling  []string

	TypeName string
	Entry    *types.RegistryEntry
}
