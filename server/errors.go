package server

import "errors"

var (
	// ErrCatalogRequired is returned when no catalog is supplied.
	ErrCatalogRequired = errors.New("catalog is required")

	// ErrRegistryRequired is returned by NewMetrics without a registry.
	ErrRegistryRequired = errors.New("prometheus registry is required")
)
