/*
Package jurisprudence implements the duplicate-aware import pipeline for
jurisprudence records.

PURPOSE:
  Turns an uploaded court bulletin or sentence into structured records:
  extract the document's text, ask a generative model to return the
  fichas jurisprudenciales as JSON, parse defensively, then insert each
  record unless its radicado already exists in the store.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: one ficha jurisprudencial; the radicado is the natural
    business key and the only deduplication criterion.
  - Document: raw uploaded bytes plus declared name/MIME type.
  - Collaborator interfaces: text extraction, text generation and the
    record store are external concerns the importer only consumes.

SEE ALSO:
  - importer.go: The import state machine
  - parse.go: Defensive parsing of model output
  - store/memory.go, store/sqlite: RecordStore implementations
*/
package jurisprudence

import (
	"context"
	"time"
)

// =============================================================================
// RECORD - One ficha jurisprudencial
// =============================================================================

// SourceType says where a record came from.
type SourceType string

const (
	SourceBulletin SourceType = "bulletin" // Boletín Jurisprudencial batch
	SourceUpload   SourceType = "upload"   // single full-sentence upload
)

// AnalysisLevel marks how deeply a record has been analyzed. Imports
// always create records at the basic level.
const AnalysisBasic = "basic"

// Record is one indexed jurisprudence entry. Records are created by the
// importer and never updated or deleted by it: first write wins.
type Record struct {
	ID            string
	CaseNumber    string // radicado - unique business key
	DecisionCode  string // e.g. "SP2163-2018"
	DDPNumber     string
	Topic         string
	Thesis        string
	SourceURL     string
	SourceType    SourceType
	AnalysisLevel string
	CreatedAt     time.Time
}

// Document is an uploaded file before extraction.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// =============================================================================
// COLLABORATORS - External concerns, consumed as interfaces
// =============================================================================

// TextExtractor turns raw document bytes into UTF-8 text.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc Document) (string, error)
}

// Generator produces free-form text from a prompt. The output is expected
// to contain a JSON array but the contract gives no schema guarantee;
// the importer parses defensively.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// RecordStore is the remote record collection the importer deduplicates
// against. No update or delete operations exist on this contract.
type RecordStore interface {
	// FindByCaseNumber returns the record with that exact radicado,
	// or nil when none exists.
	FindByCaseNumber(ctx context.Context, caseNumber string) (*Record, error)

	// Insert persists a new record. Fails if the radicado already exists.
	Insert(ctx context.Context, rec Record) error
}

// RecordLister extends RecordStore with the read path the library view
// uses. Optional: the importer itself never lists.
type RecordLister interface {
	RecordStore

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}
