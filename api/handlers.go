/*
handlers.go - HTTP API handlers for the practice engine

PURPOSE:
  Exposes the calculators and the jurisprudence pipeline via REST.
  Handles HTTP request/response and JSON serialization, delegates the
  arithmetic and the import orchestration to the domain packages.

ENDPOINTS:
  Calculators:
    POST /api/calculators/settlement   Labor settlement (liquidación)
    POST /api/calculators/term         Judicial term due date
    POST /api/calculators/indexation   IPC indexation

  Calendar:
    GET  /api/holidays?year=2025       Holiday table for a year

  Jurisprudence:
    POST /api/jurisprudence/import     Multipart document import
    GET  /api/jurisprudence/recent     Latest imported records

  Admin:
    POST /api/admin/seed               Load demo jurisprudence records

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 503: Import requested but no generative backend configured
  - 500: Internal errors

SECURITY NOTE:
  No authentication middleware. Auth lives in front of this service.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/toga/practice-engine/calendar"
	"github.com/toga/practice-engine/factory"
	"github.com/toga/practice-engine/jurisprudence"
	"github.com/toga/practice-engine/settlement"
	"github.com/toga/practice-engine/store/sqlite"
)

// maxUploadBytes caps import uploads; court bulletins run well under this.
const maxUploadBytes = 20 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Fiscal   *factory.FiscalConfig
	Advancer calendar.Advancer

	// Importer is nil when no generative backend is configured; the
	// import endpoint then answers 503 instead of panicking.
	Importer *jurisprudence.Importer

	Log *zap.Logger
}

// NewHandler creates a handler over the given store and fiscal config.
func NewHandler(store *sqlite.Store, fiscal *factory.FiscalConfig, importer *jurisprudence.Importer, log *zap.Logger) *Handler {
	if fiscal == nil {
		fiscal = factory.Defaults()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Store:    store,
		Fiscal:   fiscal,
		Advancer: calendar.NewAdvancer(fiscal.Holidays),
		Importer: importer,
		Log:      log,
	}
}

// =============================================================================
// CALCULATOR HANDLERS
// =============================================================================

// ComputeSettlement runs the labor-settlement calculator.
// POST /api/calculators/settlement
func (h *Handler) ComputeSettlement(w http.ResponseWriter, r *http.Request) {
	var req SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}

	res, err := settlement.Compute(h.Fiscal.Params, settlement.Input{
		MonthlySalary:    req.MonthlySalary,
		TransportSubsidy: req.TransportSubsidy,
		Start:            start,
		End:              end,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settlement input", err)
		return
	}

	writeJSON(w, http.StatusOK, SettlementDTO{
		Days:              res.Days,
		Severance:         res.Severance.String(),
		SeveranceInterest: res.SeveranceInterest.String(),
		ServiceBonus:      res.ServiceBonus.String(),
		VacationPay:       res.VacationPay.String(),
		Total:             res.Total.String(),
	})
}

// ComputeTerm advances a judicial term to its due date.
// POST /api/calculators/term
func (h *Handler) ComputeTerm(w http.ResponseWriter, r *http.Request) {
	var req TermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}

	due, err := h.Advancer.Advance(start, req.BusinessDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid term length", err)
		return
	}

	writeJSON(w, http.StatusOK, TermDTO{
		DueDate: due.String(),
		Weekday: due.Weekday().String(),
	})
}

// ComputeIndexation rescales an amount between two IPC readings.
// POST /api/calculators/indexation
func (h *Handler) ComputeIndexation(w http.ResponseWriter, r *http.Request) {
	var req IndexationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	value, err := settlement.ComputeIndexedValue(settlement.IndexationInput{
		Principal:    req.Principal,
		IndexInitial: req.IndexInitial,
		IndexFinal:   req.IndexFinal,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid indexation input", err)
		return
	}

	writeJSON(w, http.StatusOK, IndexationDTO{IndexedValue: value.String()})
}

// ListHolidays returns the holiday table for a year.
// GET /api/holidays?year=2025
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing year parameter", err)
		return
	}

	holidays := h.Fiscal.Holidays.Holidays(year)
	dto := HolidaysDTO{Year: year, Holidays: make([]string, len(holidays))}
	for i, d := range holidays {
		dto.Holidays[i] = d.String()
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// JURISPRUDENCE HANDLERS
// =============================================================================

// ImportDocument runs the import pipeline on an uploaded file.
// POST /api/jurisprudence/import  (multipart field "file", optional "source")
func (h *Handler) ImportDocument(w http.ResponseWriter, r *http.Request) {
	if h.Importer == nil {
		writeError(w, http.StatusServiceUnavailable, "No generative backend configured", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file upload", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read upload", err)
		return
	}

	source := jurisprudence.SourceBulletin
	if r.FormValue("source") == string(jurisprudence.SourceUpload) {
		source = jurisprudence.SourceUpload
	}

	doc := jurisprudence.Document{
		Name:     header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}

	result, err := h.Importer.ImportDocument(r.Context(), doc, source)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, jurisprudence.ErrUnreadableDocument) || errors.Is(err, jurisprudence.ErrDocumentTooShort) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Import failed", err)
		return
	}

	writeJSON(w, http.StatusOK, ImportResponseDTO(result))
}

// RecentRecords returns the latest imported records.
// GET /api/jurisprudence/recent?limit=10
func (h *Handler) RecentRecords(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "Invalid limit parameter", err)
			return
		}
		limit = n
	}

	records, err := h.Store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list records", err)
		return
	}

	dtos := make([]RecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = toRecordDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
