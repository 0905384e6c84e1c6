package storage

import "fmt"

// Stable machine-readable error codes. Callers branch on these instead of
// parsing vendor error text.
const (
	CodeInvalidSegment      = "InvalidSegment"
	CodeStorageUploadFailed = "StorageUploadFailed"
	CodeSignUrlFailed       = "SignUrlFailed"
)

// Error wraps a storage failure with a stable code plus the bucket/path/field
// involved, for diagnostics.
type Error struct {
	Code   string
	Field  string
	Bucket string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Code
	if e.Field != "" {
		msg += ": field " + e.Field
	}
	if e.Path != "" {
		msg += fmt.Sprintf(": %s/%s", e.Bucket, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func invalidSegment(field string, err error) *Error {
	return &Error{Code: CodeInvalidSegment, Field: field, Err: err}
}
