// Package docerr defines the structured error vocabulary shared by the
// CLI and the MCP server. Every failure that crosses an output boundary
// carries one of these codes so agents can branch on it.
package docerr

import (
	"errors"
	"fmt"
)

// Stable error codes. These are part of the tool contract.
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeFileNotFound     = "FILE_NOT_FOUND"
	CodeSectionNotFound  = "SECTION_NOT_FOUND"
	CodeParseError       = "PARSE_ERROR"
	CodeFileSystemError  = "FILE_SYSTEM_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

// Error is a failure with a stable code, a human-readable message, and
// optional structured details (missing section ids, searched paths) that
// let a caller correct its request.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and formatted message.
func New(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetail attaches one structured detail and returns the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// From extracts the *Error from err's chain. Errors outside the
// vocabulary map to CodeInternal so callers always see a code.
func From(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Code: CodeInternal, Message: err.Error()}
}

// CodeOf returns the code classified for err.
func CodeOf(err error) string {
	return From(err).Code
}
