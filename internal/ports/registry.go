package ports

import "vmodl-helper/internal/types"

// RegistryStorePort persists the whole registry.  There is no partial
// write: Save replaces the stored registry in one step.
type RegistryStorePort interface {
	Load(path string) (types.Registry, error)
	Save(path string, registry types.Registry) error
}
