package app

import (
	"vmodl-helper/internal/adapters"
	"vmodl-helper/internal/ports"
)

type Service struct {
	SchemaReader  ports.SchemaReaderPort
	RegistryStore ports.RegistryStorePort

	// NewCatalog returns a fresh catalog per run; catalogs are mutated
	// while generating.
	NewCatalog func() (ports.TypeCatalogLoaderPort, error)
}

func NewService() Service {
	return Service{
		SchemaReader:  adapters.NewWSDLFileAdapter(),
		RegistryStore: adapters.NewRegistryFileAdapter(),
		NewCatalog: func() (ports.TypeCatalogLoaderPort, error) {
			return adapters.NewTypeCatalogAdapter()
		},
	}
}
