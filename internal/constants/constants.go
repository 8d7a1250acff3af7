// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Pagination constants
const (
	// UserPageSize is the page size used when fetching the full user roster
	UserPageSize = 100

	// MaxUserPages bounds roster paging against a backend that misreports totals
	MaxUserPages = 1000

	// DefaultUserListPageSize is the page size for the users command and endpoint
	DefaultUserListPageSize = 20
)

// Image constants
const (
	// MaxImageSize is the maximum dimension (width or height) of camera images sent to the backend
	MaxImageSize = 1280
)

// File upload constants
const (
	// MaxUploadSize is the maximum file upload size in bytes (20MB)
	MaxUploadSize = 20 << 20

	// MaxReconcileBodySize is the maximum raw payload size accepted by the reconcile endpoint
	MaxReconcileBodySize = 8 << 20
)

// Processing constants
const (
	// MaxUnseenPlaceholders caps the reported unseen count before any entries are built
	MaxUnseenPlaceholders = 10000

	// DefaultConcurrency is the default number of parallel recognize workers
	DefaultConcurrency = 4
)
