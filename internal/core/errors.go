package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Message prefixes of the fatal reconciliation errors.  The CLI keys its
// exit codes on them.
const (
	MsgUnresolvedType    = "unresolved type"
	MsgBrokenInheritance = "broken inheritance"
)

func unresolvedTypeError(token string, detail string) error {
	msg := fmt.Sprintf("%s: %q", MsgUnresolvedType, token)
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg)
}

func brokenInheritanceError(typeName string, base string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s extends %s, which is not in the schema", MsgBrokenInheritance, typeName, base))
}
