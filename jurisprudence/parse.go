/*
parse.go - Defensive parsing of generative-model output

PURPOSE:
  The generative collaborator promises nothing about its output shape.
  Models wrap JSON in markdown fences, preface it with prose, or both.
  This file recovers the outermost JSON array from whatever came back
  and decodes it strictly: either a full []Record slice or
  ErrInvalidResponse, never a half-guessed record.

MISSING KEYS:
  A payload entry without a radicado is unusable, not "best effort".
  The parser keeps it (as an empty CaseNumber) so the importer can drop
  it silently per policy; it never invents a key.
*/
package jurisprudence

import (
	"strings"

	json "github.com/goccy/go-json"
)

// recordPayload mirrors the JSON keys the extraction prompt asks for.
type recordPayload struct {
	Radicado    string `json:"radicado"`
	SentenciaID string `json:"sentencia_id"`
	DDPNumber   string `json:"ddp_number"`
	Tema        string `json:"tema"`
	Tesis       string `json:"tesis"`
	SourceURL   string `json:"source_url"`
}

// parseRecords extracts and decodes the JSON array in raw model output.
func parseRecords(raw string) ([]recordPayload, error) {
	arr := extractJSONArray(raw)
	if arr == "" {
		return nil, ErrInvalidResponse
	}

	var payloads []recordPayload
	if err := json.Unmarshal([]byte(arr), &payloads); err != nil {
		return nil, ErrInvalidResponse
	}
	return payloads, nil
}

// extractJSONArray returns the outermost [ ... ] span of s, with any
// markdown code fences stripped first. Empty string when none exists.
func extractJSONArray(s string) string {
	cleaned := stripCodeFences(s)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end <= start {
		return ""
	}
	return cleaned[start : end+1]
}

// stripCodeFences removes a ```json ... ``` (or plain ```) wrapper.
// Text without fences passes through untouched.
func stripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	firstNewline := strings.Index(trimmed, "\n")
	if firstNewline == -1 {
		return s
	}
	lastFence := strings.LastIndex(trimmed, "```")
	if lastFence <= firstNewline {
		return s
	}
	return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
}
