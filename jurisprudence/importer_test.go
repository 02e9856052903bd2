package jurisprudence_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/toga/practice-engine/jurisprudence"
	"github.com/toga/practice-engine/jurisprudence/store"
)

// =============================================================================
// TEST COLLABORATORS
// =============================================================================

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) ExtractText(context.Context, jurisprudence.Document) (string, error) {
	return s.text, s.err
}

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

// flakyStore fails inserts for selected radicados.
type flakyStore struct {
	*store.Memory
	failCase string
}

func (f *flakyStore) Insert(ctx context.Context, rec jurisprudence.Record) error {
	if rec.CaseNumber == f.failCase {
		return fmt.Errorf("constraint violation")
	}
	return f.Memory.Insert(ctx, rec)
}

func longText() string {
	return strings.Repeat("BOLETÍN JURISPRUDENCIAL. ", 50)
}

func bulletinDoc() jurisprudence.Document {
	return jurisprudence.Document{Name: "boletin.txt", MIMEType: "text/plain", Data: []byte("...")}
}

func recordsJSON(radicados ...string) string {
	items := make([]string, len(radicados))
	for i, r := range radicados {
		items[i] = fmt.Sprintf(`{"radicado":%q,"sentencia_id":"SP%s","tema":"tema","tesis":"tesis"}`, r, r)
	}
	return "[" + strings.Join(items, ",") + "]"
}

// =============================================================================
// STATE MACHINE - batch-fatal stages
// =============================================================================

func TestImport_ExtractionFailureIsBatchFatal(t *testing.T) {
	mem := store.NewMemory()
	imp := jurisprudence.NewImporter(
		stubExtractor{err: errors.New("corrupt file")},
		&stubGenerator{response: recordsJSON("1")},
		mem, nil)

	_, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if !errors.Is(err, jurisprudence.ErrUnreadableDocument) {
		t.Fatalf("error = %v, want ErrUnreadableDocument", err)
	}
	if mem.Count() != 0 {
		t.Errorf("store has %d records after fatal failure, want 0", mem.Count())
	}
}

func TestImport_ShortExtractionRejected(t *testing.T) {
	imp := jurisprudence.NewImporter(
		stubExtractor{text: "casi nada"},
		&stubGenerator{response: recordsJSON("1")},
		store.NewMemory(), nil)

	_, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if !errors.Is(err, jurisprudence.ErrDocumentTooShort) {
		t.Fatalf("error = %v, want ErrDocumentTooShort", err)
	}
}

func TestImport_GenerationFailureIsBatchFatal(t *testing.T) {
	mem := store.NewMemory()
	imp := jurisprudence.NewImporter(
		stubExtractor{text: longText()},
		&stubGenerator{err: errors.New("model gemini-1.5-flash with key ****abcd: 503")},
		mem, nil)

	_, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if !errors.Is(err, jurisprudence.ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
	// The operator diagnosis (model/key attempted) survives wrapping.
	if !strings.Contains(err.Error(), "gemini-1.5-flash") {
		t.Errorf("error %q does not name the model attempted", err)
	}
	if mem.Count() != 0 {
		t.Errorf("store has %d records after fatal failure, want 0", mem.Count())
	}
}

func TestImport_UnparseableResponseIsBatchFatal(t *testing.T) {
	mem := store.NewMemory()
	imp := jurisprudence.NewImporter(
		stubExtractor{text: longText()},
		&stubGenerator{response: "No encontré fichas en este documento."},
		mem, nil)

	_, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if !errors.Is(err, jurisprudence.ErrInvalidResponse) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
	if mem.Count() != 0 {
		t.Errorf("store has %d records after fatal failure, want 0", mem.Count())
	}
}

// =============================================================================
// DEDUPLICATION & PERSISTENCE
// =============================================================================

func TestImport_SavesNewRecords(t *testing.T) {
	mem := store.NewMemory()
	imp := jurisprudence.NewImporter(
		stubExtractor{text: longText()},
		&stubGenerator{response: recordsJSON("52059", "52060", "52061")},
		mem, nil)

	res, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if res.Saved != 3 || res.Skipped != 0 || len(res.Errors) != 0 {
		t.Fatalf("result = %+v, want saved=3 skipped=0 errors=0", res)
	}

	rec, err := mem.FindByCaseNumber(context.Background(), "52059")
	if err != nil || rec == nil {
		t.Fatalf("FindByCaseNumber(52059) = %v, %v", rec, err)
	}
	if rec.SourceType != jurisprudence.SourceBulletin || rec.AnalysisLevel != jurisprudence.AnalysisBasic {
		t.Errorf("stored record = %+v, want bulletin/basic", rec)
	}
	if rec.ID == "" {
		t.Error("stored record has no ID")
	}
}

func TestImport_SecondRunIsIdempotent(t *testing.T) {
	mem := store.NewMemory()
	newImporter := func() *jurisprudence.Importer {
		return jurisprudence.NewImporter(
			stubExtractor{text: longText()},
			&stubGenerator{response: recordsJSON("11111", "22222")},
			mem, nil)
	}

	first, err := newImporter().ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if first.Saved != 2 {
		t.Fatalf("first run saved = %d, want 2", first.Saved)
	}

	second, err := newImporter().ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if second.Saved != 0 || second.Skipped != 2 || len(second.Errors) != 0 {
		t.Errorf("second run = %+v, want saved=0 skipped=2 errors=0", second)
	}
}

func TestImport_MixOfNewAndExisting(t *testing.T) {
	// GIVEN: a store that already holds radicado 52059
	// WHEN:  a bulletin yields one new radicado and 52059 again
	// THEN:  only the new record saves; the existing one is untouched
	mem := store.NewMemory()
	if err := mem.Insert(context.Background(), jurisprudence.Record{ID: "pre", CaseNumber: "52059"}); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	imp := jurisprudence.NewImporter(
		stubExtractor{text: longText()},
		&stubGenerator{response: recordsJSON("70001", "52059")},
		mem, nil)

	res, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if res.Saved != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want saved=1 skipped=1", res)
	}
	// First write wins: the pre-existing record is untouched.
	rec, _ := mem.FindByCaseNumber(context.Background(), "52059")
	if rec == nil || rec.ID != "pre" {
		t.Errorf("existing record modified: %+v", rec)
	}
}

func TestImport_DuplicateRadicadoWithinOneBatch(t *testing.T) {
	// Sequential processing: the insert of the first 52059 must be
	// visible to the duplicate check of the second.
	mem := store.NewMemory()
	imp := jurisprudence.NewImporter(
		stubExtractor{text: longText()},
		&stubGenerator{response: recordsJSON("52059", "52059")},
		mem, nil)

	res, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if res.Saved != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want saved=1 skipped=1", res)
	}
}

func TestImport_RecordsWithoutRadicadoAreInvisible(t *testing.T) {
	mem := store.NewMemory()
	imp := jurisprudence.NewImporter(
		stubExtractor{text: longText()},
		&stubGenerator{response: `[{"tema":"sin clave"},{"radicado":"33333","tema":"ok"}]`},
		mem, nil)

	res, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	// The keyless record shows up in no counter.
	if res.Saved != 1 || res.Skipped != 0 || len(res.Errors) != 0 {
		t.Errorf("result = %+v, want saved=1 skipped=0 errors=0", res)
	}
	if mem.Count() != 1 {
		t.Errorf("store has %d records, want 1", mem.Count())
	}
}

func TestImport_PartialFailureContinuesBatch(t *testing.T) {
	// One of five inserts fails; the other four must still land.
	flaky := &flakyStore{Memory: store.NewMemory(), failCase: "3"}
	imp := jurisprudence.NewImporter(
		stubExtractor{text: longText()},
		&stubGenerator{response: recordsJSON("1", "2", "3", "4", "5")},
		flaky, nil)

	res, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin)
	if err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if res.Saved != 4 || res.Skipped != 0 || len(res.Errors) != 1 {
		t.Fatalf("result = %+v, want saved=4 skipped=0 errors=1", res)
	}
	// The error names the failing radicado, verbatim for the end user.
	if !strings.Contains(res.Errors[0], "Rad. 3") {
		t.Errorf("error %q does not name the failing radicado", res.Errors[0])
	}
}

// =============================================================================
// PROMPT BUDGET
// =============================================================================

func TestImport_TruncatesTextToPromptBudget(t *testing.T) {
	gen := &stubGenerator{response: recordsJSON("1")}
	imp := jurisprudence.NewImporter(
		stubExtractor{text: strings.Repeat("~", 2000)},
		gen, store.NewMemory(), nil)
	imp.MaxPromptChars = 500

	if _, err := imp.ImportDocument(context.Background(), bulletinDoc(), jurisprudence.SourceBulletin); err != nil {
		t.Fatalf("ImportDocument failed: %v", err)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.prompts))
	}
	if got := strings.Count(gen.prompts[0], "~"); got != 500 {
		t.Errorf("prompt carries %d document chars, want 500", got)
	}
}
