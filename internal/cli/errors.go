package cli

import (
	"github.com/aidanlsb/kvasir/internal/docerr"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Request errors
	ErrInvalidParameter = docerr.CodeInvalidParameter
	ErrFileNotFound     = docerr.CodeFileNotFound
	ErrSectionNotFound  = docerr.CodeSectionNotFound

	// Corpus errors
	ErrParseError      = docerr.CodeParseError
	ErrFileSystemError = docerr.CodeFileSystemError

	// Configuration errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// MCP integration errors
	ErrMCPClientInvalid    = "MCP_CLIENT_INVALID"
	ErrMCPConfigWriteError = "MCP_CONFIG_WRITE_ERROR"
	ErrMCPCheckFailed      = "MCP_CHECK_FAILED"

	// General errors
	ErrInternal = docerr.CodeInternal
)

// handleDomainError maps a document-layer error into the output
// envelope, attaching a suggestion where the code implies one.
func handleDomainError(err error) error {
	de := docerr.From(err)
	suggestion := ""
	switch de.Code {
	case docerr.CodeFileNotFound:
		suggestion = "Run 'kvs list' to see discovered documents"
	case docerr.CodeSectionNotFound:
		suggestion = "Run 'kvs toc <file>' to see valid section ids"
	}
	return handleErrorWithDetails(de.Code, de.Message, suggestion, detailsOrNil(de))
}

func detailsOrNil(de *docerr.Error) interface{} {
	if len(de.Details) == 0 {
		return nil
	}
	return de.Details
}
