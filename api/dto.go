/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types
  decouple the internal domain model from the external API contract.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO / *Response: Types returned to clients

MONEY:
  Monetary request fields are decimal.Decimal: the decoder accepts both
  quoted and bare JSON numbers, and nothing is ever parsed through
  float64. Responses render decimals as strings.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/toga/practice-engine/jurisprudence"
)

// =============================================================================
// CALCULATOR TYPES
// =============================================================================

// SettlementRequest carries the labor-settlement form fields.
type SettlementRequest struct {
	MonthlySalary    decimal.Decimal `json:"monthly_salary"`
	TransportSubsidy bool            `json:"transport_subsidy"`
	StartDate        string          `json:"start_date"` // YYYY-MM-DD
	EndDate          string          `json:"end_date"`   // YYYY-MM-DD
}

// SettlementDTO is the computed settlement, all figures as decimal strings.
type SettlementDTO struct {
	Days              int    `json:"days"`
	Severance         string `json:"cesantias"`
	SeveranceInterest string `json:"intereses"`
	ServiceBonus      string `json:"prima"`
	VacationPay       string `json:"vacaciones"`
	Total             string `json:"total"`
}

// TermRequest carries the judicial-term form fields.
type TermRequest struct {
	StartDate    string `json:"start_date"` // notification date, YYYY-MM-DD
	BusinessDays int    `json:"business_days"`
}

// TermDTO is the computed due date.
type TermDTO struct {
	DueDate string `json:"due_date"`
	Weekday string `json:"weekday"`
}

// IndexationRequest carries the IPC indexation form fields.
type IndexationRequest struct {
	Principal    decimal.Decimal `json:"principal"`
	IndexInitial decimal.Decimal `json:"index_initial"`
	IndexFinal   decimal.Decimal `json:"index_final"`
}

// IndexationDTO is the indexed present value.
type IndexationDTO struct {
	IndexedValue string `json:"indexed_value"`
}

// HolidaysDTO lists the holiday table for one year.
type HolidaysDTO struct {
	Year     int      `json:"year"`
	Holidays []string `json:"holidays"`
}

// =============================================================================
// JURISPRUDENCE TYPES
// =============================================================================

// RecordDTO represents a jurisprudence record in API responses.
type RecordDTO struct {
	ID            string `json:"id"`
	CaseNumber    string `json:"radicado"`
	DecisionCode  string `json:"sentencia_id,omitempty"`
	DDPNumber     string `json:"ddp_number,omitempty"`
	Topic         string `json:"tema"`
	Thesis        string `json:"tesis"`
	SourceURL     string `json:"source_url,omitempty"`
	SourceType    string `json:"source_type"`
	AnalysisLevel string `json:"analysis_level"`
	CreatedAt     string `json:"created_at"`
}

func toRecordDTO(rec jurisprudence.Record) RecordDTO {
	return RecordDTO{
		ID:            rec.ID,
		CaseNumber:    rec.CaseNumber,
		DecisionCode:  rec.DecisionCode,
		DDPNumber:     rec.DDPNumber,
		Topic:         rec.Topic,
		Thesis:        rec.Thesis,
		SourceURL:     rec.SourceURL,
		SourceType:    string(rec.SourceType),
		AnalysisLevel: rec.AnalysisLevel,
		CreatedAt:     rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ImportResponseDTO wraps an import outcome.
type ImportResponseDTO struct {
	Saved   int      `json:"saved"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// SeedResponseDTO reports how the demo seed went.
type SeedResponseDTO struct {
	Saved   int `json:"saved"`
	Skipped int `json:"skipped"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
