/*
seed.go - Demo jurisprudence records

PURPOSE:
  Loads a handful of landmark Colombian decisions so a fresh install
  has something in the library before the first real import. Seeding
  follows the importer's first-write-wins rule: records already present
  are skipped, never overwritten.
*/
package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/toga/practice-engine/jurisprudence"
)

// demoRecords are well-known decisions used for demos and onboarding.
var demoRecords = []jurisprudence.Record{
	{
		CaseNumber:   "T-025/04",
		DecisionCode: "T-025/04",
		Topic:        "Desplazamiento forzado",
		Thesis:       "Estado de Cosas Inconstitucional en materia de desplazamiento forzado.",
	},
	{
		CaseNumber:   "C-355/06",
		DecisionCode: "C-355/06",
		Topic:        "Despenalización del aborto",
		Thesis:       "Despenalización del aborto en tres causales específicas en Colombia.",
	},
	{
		CaseNumber:   "SU-014/01",
		DecisionCode: "SU-014/01",
		Topic:        "Derecho a la salud",
		Thesis:       "Unificación de jurisprudencia sobre el derecho a la salud y conexidad.",
	},
	{
		CaseNumber:   "SL1234-2022",
		DecisionCode: "SL1234-2022",
		Topic:        "Estabilidad laboral reforzada",
		Thesis:       "Estabilidad laboral reforzada en casos de debilidad manifiesta.",
	},
}

// SeedDemoRecords inserts the demo decisions that are not yet present.
// POST /api/admin/seed
func (h *Handler) SeedDemoRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now()

	var resp SeedResponseDTO
	for _, rec := range demoRecords {
		existing, err := h.Store.FindByCaseNumber(ctx, rec.CaseNumber)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to check existing records", err)
			return
		}
		if existing != nil {
			resp.Skipped++
			continue
		}

		rec.ID = uuid.NewString()
		rec.SourceType = jurisprudence.SourceUpload
		rec.AnalysisLevel = jurisprudence.AnalysisBasic
		rec.CreatedAt = now
		if err := h.Store.Insert(ctx, rec); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to insert demo record", err)
			return
		}
		resp.Saved++
	}

	writeJSON(w, http.StatusOK, resp)
}
