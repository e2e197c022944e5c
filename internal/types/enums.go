package types

type EntryKind string

const (
	EntryKindData    EntryKind = "data"
	EntryKindManaged EntryKind = "managed"
	EntryKindEnum    EntryKind = "enum"
)

type FindingKind string

const (
	FindingMissingType  FindingKind = "missing-type"
	FindingTypeMismatch FindingKind = "type-mismatch"
)

// Catalog scopes searched by the type resolver before any module scope.
const (
	ScopeGlobal = "global"
	ScopeBasic  = "basic"
)

// Unbounded is the MaxOccurs value of maxOccurs="unbounded".
const Unbounded = -1

const XSDNamespace = "http://www.w3.org/2001/XMLSchema"
