package domain

import "errors"

// ============================================================================
// Catalog Errors
// ============================================================================

var (
	ErrBaseModelNotFound     = errors.New("base model not found in catalog")
	ErrBaseModelNotTrainable = errors.New("base model does not support fine-tuning")
)

// ============================================================================
// Serving Configuration Errors
// ============================================================================

var (
	ErrMissingModelID        = errors.New("option.model_id is required")
	ErrUnsupportedEngine     = errors.New("unsupported serving engine")
	ErrInvalidParallelDegree = errors.New("tensor parallel degree must be >= 1")
	ErrInvalidBatchSize      = errors.New("max rolling batch size must not be negative")
	ErrMalformedProperties   = errors.New("malformed serving properties line")
)

// ============================================================================
// Model Package Errors
// ============================================================================

var (
	ErrPackageNotFound     = errors.New("model package not found")
	ErrPackageNameConflict = errors.New("model package with this name already exists in the project")
	ErrInvalidPackageName  = errors.New("model package name is required")
	ErrPackageNotUploaded  = errors.New("model package has no uploaded artifact")
	ErrPackageInUse        = errors.New("model package is referenced by a live endpoint")
)

// ============================================================================
// Training Job Errors
// ============================================================================

var (
	ErrTrainingJobNotFound     = errors.New("training job not found")
	ErrTrainingJobNameConflict = errors.New("training job with this name already exists in the project")
	ErrInvalidTrainingJobName  = errors.New("training job name is required")
	ErrInvalidInstanceCount    = errors.New("instance count must be >= 1")
	ErrInvalidInstanceType     = errors.New("instance type is required")
	ErrJobNotStoppable         = errors.New("training job is not in a stoppable state")
	ErrJobNotTerminal          = errors.New("training job has not reached a terminal state")
)

// ============================================================================
// Endpoint Errors
// ============================================================================

var (
	ErrEndpointNotFound     = errors.New("endpoint not found")
	ErrEndpointNameConflict = errors.New("endpoint with this name already exists in the project")
	ErrInvalidEndpointName  = errors.New("endpoint name is required")
	ErrEndpointNotInService = errors.New("endpoint is not in service")
	ErrInsufficientGPUs     = errors.New("instance type has fewer GPUs than the model requires")
	ErrInvalidState         = errors.New("invalid state")
)

// ============================================================================
// Shared / Infrastructure Errors
// ============================================================================

var (
	ErrMissingProjectID       = errors.New("project ID is required (X-Project-ID header)")
	ErrLauncherNotAvailable   = errors.New("launcher backend is not available")
	ErrInvocationFailed       = errors.New("endpoint invocation failed")
	ErrEmptyInvocationPayload = errors.New("invocation payload is required")
)
