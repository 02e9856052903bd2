/*
errors.go - Centralized error types for the import pipeline

PURPOSE:
  All import errors in one place, matched with errors.Is(). The first
  three are batch-fatal: when extraction, generation or parsing fails,
  the whole import aborts and nothing is saved. Per-record persistence
  failures are NOT errors of this kind - they are collected into the
  ImportResult and the batch continues.

SEE ALSO:
  - importer.go: Where these are returned
*/
package jurisprudence

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnreadableDocument is returned when the extraction collaborator
	// cannot read the uploaded file.
	ErrUnreadableDocument = errors.New("document could not be read")

	// ErrDocumentTooShort is returned when the extracted text is too
	// short to contain real content (empty or scanned document).
	ErrDocumentTooShort = errors.New("document text too short: empty or scanned file")

	// ErrGenerationFailed is returned when the generative service fails
	// or returns nothing usable.
	ErrGenerationFailed = errors.New("generative service failed")

	// ErrInvalidResponse is returned when the model output contains no
	// parseable JSON array.
	ErrInvalidResponse = errors.New("invalid AI response format")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// PersistError records a single record's failed insert. It is reported
// through ImportResult.Errors, never as the ImportDocument error.
type PersistError struct {
	CaseNumber string
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("error guardando Rad. %s: %v", e.CaseNumber, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
