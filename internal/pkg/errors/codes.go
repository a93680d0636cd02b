package errors

import "fmt"

// Error code constants. Every code aborts the run; none is retried.

// Configuration error codes.
const (
	CodeConfigInvalid = "CONFIG_INVALID"
)

// Resource file error codes.
const (
	CodeResourceLoadFailed = "RESOURCE_LOAD_FAILED"
	CodeResourceInvalid    = "RESOURCE_INVALID"
)

// Target file error codes.
const (
	CodeWalkFailed      = "WALK_FAILED"
	CodeFileReadFailed  = "FILE_READ_FAILED"
	CodeFileWriteFailed = "FILE_WRITE_FAILED"
)

// Report and check error codes.
const (
	CodeReportWriteFailed   = "REPORT_WRITE_FAILED"
	CodeUnlocalizedLiterals = "UNLOCALIZED_LITERALS"
)

// Convenience constructors using predefined codes.

// ErrConfigInvalidf creates a configuration validation error.
func ErrConfigInvalidf(reason string) *AppError {
	return New(CodeConfigInvalid, reason)
}

// ErrResourceLoadFailedf creates an error for an unreadable resource file.
func ErrResourceLoadFailedf(path string, err error) *AppError {
	return Wrap(err, CodeResourceLoadFailed, "read resource file").
		WithParams(map[string]interface{}{"path": path})
}

// ErrResourceInvalidf creates an error for a resource file that is not a JSON object.
func ErrResourceInvalidf(path, reason string) *AppError {
	return Wrap(ErrInvalid, CodeResourceInvalid, "resource file "+path+": "+reason).
		WithParams(map[string]interface{}{"path": path})
}

// ErrWalkFailedf creates an error for a failed directory walk.
func ErrWalkFailedf(path string, err error) *AppError {
	return Wrap(err, CodeWalkFailed, "walk "+path).
		WithParams(map[string]interface{}{"path": path})
}

// ErrFileReadFailedf creates an error for an unreadable target file.
func ErrFileReadFailedf(path string, err error) *AppError {
	return Wrap(err, CodeFileReadFailed, "read "+path).
		WithParams(map[string]interface{}{"path": path})
}

// ErrFileWriteFailedf creates an error for an unwritable target file.
func ErrFileWriteFailedf(path string, err error) *AppError {
	return Wrap(err, CodeFileWriteFailed, "write "+path).
		WithParams(map[string]interface{}{"path": path})
}

// ErrReportWriteFailedf creates an error for a run report that could not be written.
func ErrReportWriteFailedf(path string, err error) *AppError {
	return Wrap(err, CodeReportWriteFailed, "write report "+path).
		WithParams(map[string]interface{}{"path": path})
}

// ErrUnlocalizedLiteralsf creates the check-mode failure for literals that
// still duplicate resource values.
func ErrUnlocalizedLiteralsf(literals, files int) *AppError {
	return New(CodeUnlocalizedLiterals, fmt.Sprintf("%d literal(s) in %d file(s) duplicate resource values", literals, files)).
		WithParams(map[string]interface{}{"literals": literals, "files": files})
}
