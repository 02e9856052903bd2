/*
Package gemini adapts Google's Gemini API to the importer's
collaborator interfaces.

PURPOSE:
  Two adapters over one client: a Generator that sends an extraction
  prompt and returns the raw completion, and a TextExtractor that hands
  binary documents (PDF/DOCX) to the model inline and asks for a plain
  transcription. Both exist so the import core stays free of any
  Gemini-specific types.

OPERATOR DIAGNOSIS:
  Every error names the model and a fingerprint of the API key that was
  attempted. Imports fail most often because a user pasted a revoked
  key into their profile; the fingerprint lets support confirm which
  one without ever logging the key itself.
*/
package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/toga/practice-engine/jurisprudence"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

const transcriptionPrompt = "Transcribe el texto completo de este documento. " +
	"Retorna ÚNICAMENTE el texto, sin comentarios ni formato adicional."

// Config holds the client settings.
type Config struct {
	APIKey string
	Model  string // defaults to DefaultModel

	// Temperature for generation. Extraction wants deterministic output.
	Temperature float32
}

// Client implements jurisprudence.Generator and jurisprudence.TextExtractor.
type Client struct {
	client  *genai.Client
	model   string
	keyHint string
	temp    float32
	log     *zap.Logger
}

// New creates a Gemini client.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		keyHint: fingerprint(cfg.APIKey),
		temp:    cfg.Temperature,
		log:     log,
	}, nil
}

// fingerprint keeps the last four key characters for diagnostics.
func fingerprint(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// =============================================================================
// GENERATOR
// =============================================================================

// GenerateText sends the prompt and returns the raw completion text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	return c.generate(ctx, contents)
}

// =============================================================================
// TEXT EXTRACTOR
// =============================================================================

// ExtractText transcribes a binary document by sending its bytes inline.
func (c *Client) ExtractText(ctx context.Context, doc jurisprudence.Document) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(transcriptionPrompt),
		genai.NewPartFromBytes(doc.Data, doc.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	return c.generate(ctx, contents)
}

func (c *Client) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	c.log.Debug("gemini request", zap.String("model", c.model))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temp),
	})
	if err != nil {
		return "", fmt.Errorf("gemini model %s (key %s): %w", c.model, c.keyHint, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini model %s (key %s): empty response", c.model, c.keyHint)
	}
	return text, nil
}
