package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiConfig struct {
	APIKey      string
	Model       string // default "gemini-1.5-flash"
	Instruction string // default DefaultInstruction
	BaseURL     string // override for tests
	HTTPClient  *http.Client
}

// GeminiBackend is a very minimal client for the generateContent API.
type GeminiBackend struct {
	cfg  GeminiConfig
	http *http.Client
}

func NewGemini(cfg GeminiConfig) (*GeminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is empty")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Instruction == "" {
		cfg.Instruction = DefaultInstruction
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &GeminiBackend{cfg: cfg, http: hc}, nil
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type generateContentRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (b *GeminiBackend) Generate(ctx context.Context, name, description string) (string, error) {
	prompt := fmt.Sprintf("Name: %s\nDescription: %s", name, description)
	body, err := json.Marshal(generateContentRequest{
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: prompt}}, Role: "user"}},
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: b.cfg.Instruction}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", b.cfg.BaseURL, b.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", b.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := b.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	rb, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: want 200, got %d: %s", res.StatusCode, rb)
	}

	var gr generateContentResponse
	if err := json.Unmarshal(rb, &gr); err != nil {
		return "", fmt.Errorf("gemini: decode: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
