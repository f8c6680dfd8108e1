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

const openAIBaseURL = "https://api.openai.com"

type OpenAIConfig struct {
	APIKey      string
	Model       string // default "gpt-4o-mini"
	Instruction string // default DefaultInstruction
	BaseURL     string // override for tests
	HTTPClient  *http.Client
}

// OpenAIBackend generates summaries via the chat completions API.
type OpenAIBackend struct {
	cfg  OpenAIConfig
	http *http.Client
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key is empty")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Instruction == "" {
		cfg.Instruction = DefaultInstruction
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = openAIBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &OpenAIBackend{cfg: cfg, http: hc}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (b *OpenAIBackend) Generate(ctx context.Context, name, description string) (string, error) {
	prompt := fmt.Sprintf("%s\nName: %s\nDescription: %s\nSummary:", b.cfg.Instruction, name, description)
	body, err := json.Marshal(chatRequest{
		Model: b.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a concise technical summarization assistant."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.5,
		MaxTokens:   100,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)
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
		return "", fmt.Errorf("openai: want 200, got %d: %s", res.StatusCode, rb)
	}

	var cr chatResponse
	if err := json.Unmarshal(rb, &cr); err != nil {
		return "", fmt.Errorf("openai: decode: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return cr.Choices[0].Message.Content, nil
}
