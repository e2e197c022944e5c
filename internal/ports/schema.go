package ports

import "vmodl-helper/internal/types"

// SchemaReaderPort reads the complex types of a schema document.
//
// Includes and imports are resolved relative to the directory of the
// document that names them.  Types are returned in document order, with
// included documents expanded where they are referenced.
type SchemaReaderPort interface {
	ReadSchema(path string) ([]types.SchemaType, error)
}
