/*
importer.go - The import state machine

PURPOSE:
  Orchestrates one document import as a linear chain with no branching
  back: Extracting -> Generating -> Parsing -> Deduplicating/Persisting.

FAILURE SEMANTICS:
  Extraction, generation and parse failures are batch-fatal: the import
  aborts, nothing is saved, and the error is returned. A failed insert
  of a single record is per-record-recoverable: its message joins
  ImportResult.Errors and the batch continues.

ORDERING:
  Records are processed one at a time, in array order. The duplicate
  check for a later record must observe inserts from earlier records in
  the same batch, so two entries sharing a radicado in one bulletin
  yield one save and one skip rather than two saves.

COUNTING POLICY:
  Records without a radicado are dropped silently - they appear in no
  counter. saved + skipped + per-record errors therefore never exceeds
  the number of records the model returned.

CANCELLATION:
  The context flows into every collaborator call. Inserts already
  committed before a cancellation are not rolled back.
*/
package jurisprudence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

const (
	// DefaultMinTextLength rejects extractions too short to hold a real
	// ficha (scanned images extract to near-empty text).
	DefaultMinTextLength = 120

	// DefaultMaxPromptChars caps the document text sent to the model,
	// respecting the generative service's input budget.
	DefaultMaxPromptChars = 30000
)

// =============================================================================
// IMPORTER
// =============================================================================

// Importer runs document imports. Construct with NewImporter; all
// collaborators are required, configuration fields have defaults.
type Importer struct {
	extractor TextExtractor
	generator Generator
	store     RecordStore
	log       *zap.Logger

	// MinTextLength below which an extraction is rejected as empty.
	MinTextLength int

	// MaxPromptChars of document text forwarded to the generator.
	MaxPromptChars int

	// Now is the clock for record timestamps. Tests override it.
	Now func() time.Time
}

// NewImporter wires an Importer with default thresholds.
func NewImporter(extractor TextExtractor, generator Generator, store RecordStore, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		extractor:      extractor,
		generator:      generator,
		store:          store,
		log:            log,
		MinTextLength:  DefaultMinTextLength,
		MaxPromptChars: DefaultMaxPromptChars,
		Now:            time.Now,
	}
}

// ImportResult is the terminal state of an import. Success, partial
// success and total failure all use this shape.
type ImportResult struct {
	Saved   int      `json:"saved"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ImportDocument runs the full pipeline on one uploaded document.
// The returned error is non-nil only for batch-fatal failures.
func (imp *Importer) ImportDocument(ctx context.Context, doc Document, source SourceType) (ImportResult, error) {
	runID := uuid.NewString()
	log := imp.log.With(zap.String("run_id", runID), zap.String("document", doc.Name))

	// --- Extracting ---
	text, err := imp.extractor.ExtractText(ctx, doc)
	if err != nil {
		log.Warn("extraction failed", zap.Error(err))
		return ImportResult{}, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if len(text) < imp.MinTextLength {
		log.Warn("extracted text below minimum", zap.Int("length", len(text)))
		return ImportResult{}, ErrDocumentTooShort
	}

	// --- Generating ---
	if len(text) > imp.MaxPromptChars {
		text = text[:imp.MaxPromptChars]
	}
	raw, err := imp.generator.GenerateText(ctx, extractionPrompt(source, text))
	if err != nil {
		// The generator's own error names the model/key attempted; the
		// extracted text is still in the caller's hands for a retry.
		log.Warn("generation failed", zap.Error(err))
		return ImportResult{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	// --- Parsing ---
	payloads, err := parseRecords(raw)
	if err != nil {
		log.Warn("unparseable model output", zap.Int("response_length", len(raw)))
		return ImportResult{}, err
	}

	// --- Deduplicating & Persisting ---
	now := imp.Now()
	result := ImportResult{Errors: []string{}}
	for _, p := range payloads {
		if p.Radicado == "" {
			// Unusable without its business key. Dropped, uncounted.
			continue
		}

		existing, err := imp.store.FindByCaseNumber(ctx, p.Radicado)
		if err != nil {
			result.Errors = append(result.Errors, (&PersistError{CaseNumber: p.Radicado, Err: err}).Error())
			continue
		}
		if existing != nil {
			// First write wins. No merge, no update.
			result.Skipped++
			continue
		}

		rec := Record{
			ID:            uuid.NewString(),
			CaseNumber:    p.Radicado,
			DecisionCode:  p.SentenciaID,
			DDPNumber:     p.DDPNumber,
			Topic:         p.Tema,
			Thesis:        p.Tesis,
			SourceURL:     p.SourceURL,
			SourceType:    source,
			AnalysisLevel: AnalysisBasic,
			CreatedAt:     now,
		}
		if err := imp.store.Insert(ctx, rec); err != nil {
			result.Errors = append(result.Errors, (&PersistError{CaseNumber: p.Radicado, Err: err}).Error())
			continue
		}
		result.Saved++
	}

	log.Info("import finished",
		zap.Int("saved", result.Saved),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))
	return result, nil
}
