package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toga/practice-engine/api"
	"github.com/toga/practice-engine/extract"
	"github.com/toga/practice-engine/jurisprudence"
	"github.com/toga/practice-engine/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type cannedGenerator string

func (c cannedGenerator) GenerateText(context.Context, string) (string, error) {
	return string(c), nil
}

func newTestServer(t *testing.T, gen jurisprudence.Generator) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var importer *jurisprudence.Importer
	if gen != nil {
		importer = jurisprudence.NewImporter(extract.Plain{}, gen, store, nil)
	}

	h := api.NewHandler(store, nil, importer, nil)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, store
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

// =============================================================================
// CALCULATOR ENDPOINTS
// =============================================================================

func TestComputeSettlement(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, body := postJSON(t, srv.URL+"/api/calculators/settlement", `{
		"monthly_salary": 2000000,
		"transport_subsidy": false,
		"start_date": "2024-01-01",
		"end_date": "2024-12-25"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, float64(360), body["days"])
	assert.Equal(t, "2000000", body["cesantias"])
	assert.Equal(t, "2000000", body["prima"])
	assert.Equal(t, "240000", body["intereses"])
	assert.Equal(t, "1000000", body["vacaciones"])
	assert.Equal(t, "5240000", body["total"])
}

func TestComputeSettlement_BadInput(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"garbage body", `not json`},
		{"bad start date", `{"monthly_salary": 1, "start_date": "01/01/2024", "end_date": "2024-02-01"}`},
		{"end before start", `{"monthly_salary": 1, "start_date": "2024-02-01", "end_date": "2024-01-01"}`},
		{"negative salary", `{"monthly_salary": -5, "start_date": "2024-01-01", "end_date": "2024-02-01"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := postJSON(t, srv.URL+"/api/calculators/settlement", tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestComputeTerm(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	// Friday + 1 business day = Monday.
	resp, body := postJSON(t, srv.URL+"/api/calculators/term",
		`{"start_date": "2024-04-12", "business_days": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-04-15", body["due_date"])
	assert.Equal(t, "Monday", body["weekday"])
}

func TestComputeTerm_NegativeDaysRejected(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, _ := postJSON(t, srv.URL+"/api/calculators/term",
		`{"start_date": "2024-04-12", "business_days": -3}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComputeIndexation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, body := postJSON(t, srv.URL+"/api/calculators/indexation",
		`{"principal": 10000000, "index_initial": 100, "index_final": "145.2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "14520000", body["indexed_value"])
}

func TestComputeIndexation_ZeroInitialIndexRejected(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, body := postJSON(t, srv.URL+"/api/calculators/indexation",
		`{"principal": 100, "index_initial": 0, "index_final": 120}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestListHolidays(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/holidays?year=2025")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dto struct {
		Year     int      `json:"year"`
		Holidays []string `json:"holidays"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dto))
	assert.Equal(t, 2025, dto.Year)
	assert.Len(t, dto.Holidays, 17)
	assert.Equal(t, "2025-01-01", dto.Holidays[0])

	resp2, err := http.Get(srv.URL + "/api/holidays")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

// =============================================================================
// JURISPRUDENCE ENDPOINTS
// =============================================================================

func multipartUpload(t *testing.T, url, filename, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestImportDocument(t *testing.T) {
	gen := cannedGenerator(`[
		{"radicado":"52059","sentencia_id":"SP2163-2018","tema":"Inasistencia alimentaria","tesis":"i) ..."},
		{"radicado":"61423","sentencia_id":"SP0091-2025","tema":"Prescripción","tesis":"ii) ..."}
	]`)
	srv, _ := newTestServer(t, gen)

	bulletin := strings.Repeat("Boletín Jurisprudencial de la Corte Suprema. ", 10)

	resp := multipartUpload(t, srv.URL+"/api/jurisprudence/import", "boletin.txt", bulletin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result jurisprudence.ImportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 0, result.Skipped)

	// Same bulletin again: everything dedupes.
	resp2 := multipartUpload(t, srv.URL+"/api/jurisprudence/import", "boletin.txt", bulletin)
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var second jurisprudence.ImportResult
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&second))
	assert.Equal(t, 0, second.Saved)
	assert.Equal(t, 2, second.Skipped)
}

func TestImportDocument_UnreadableFile(t *testing.T) {
	srv, _ := newTestServer(t, cannedGenerator("[]"))

	resp := multipartUpload(t, srv.URL+"/api/jurisprudence/import", "sentencia.bin", "\x00\x01")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportDocument_WithoutBackendIs503(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp := multipartUpload(t, srv.URL+"/api/jurisprudence/import", "boletin.txt", "texto")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSeedAndRecent(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, body := postJSON(t, srv.URL+"/api/admin/seed", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(4), body["saved"])
	assert.Equal(t, float64(0), body["skipped"])

	// Seeding is idempotent.
	resp2, body2 := postJSON(t, srv.URL+"/api/admin/seed", "")
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Equal(t, float64(0), body2["saved"])
	assert.Equal(t, float64(4), body2["skipped"])

	recentResp, err := http.Get(srv.URL + "/api/jurisprudence/recent?limit=3")
	require.NoError(t, err)
	defer recentResp.Body.Close()
	require.Equal(t, http.StatusOK, recentResp.StatusCode)

	var records []map[string]any
	require.NoError(t, json.NewDecoder(recentResp.Body).Decode(&records))
	assert.Len(t, records, 3)
	for _, rec := range records {
		assert.NotEmpty(t, rec["radicado"])
		assert.NotEmpty(t, rec["tesis"])
	}
}
