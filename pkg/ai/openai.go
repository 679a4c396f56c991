package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/johnquangdev/mom-service/pkg/config"
)

const grammarSystemPrompt = `You are a professional grammar correction assistant. Your task is to:
1. Correct all grammar, spelling, and punctuation errors
2. Improve sentence structure and clarity
3. Maintain the original meaning and tone
4. Use proper Subject-Verb-Object (SVO) structure
5. Ensure professional and clear communication
6. Keep the text concise and formal
7. Preserve numbering and formatting structure
8. Do not add any explanations or comments
9. Return ONLY the corrected text without any additional commentary`

// OpenAIClient is a minimal client for OpenAI-compatible chat completion APIs
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
}

// NewOpenAIClient creates a client from config. The caller decides whether a
// client should exist at all; see textproc.NewCorrectorBackend.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Correction is the result of one grammar-correction call
type Correction struct {
	CorrectedText string
	ChangeCount   int
	TokensUsed    int
	Model         string
}

// Model returns the configured model name
func (c *OpenAIClient) Model() string {
	return c.model
}

// CorrectGrammar sends text with the grammar instruction and returns the
// corrected text. Errors are *AuthError, *RateLimitError or *UpstreamError
// when the API answered with the matching status.
func (c *OpenAIClient) CorrectGrammar(ctx context.Context, text string) (*Correction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("invalid text provided for grammar correction")
	}

	reqBody := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: grammarSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar correction failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, statusError(resp)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, errors.New("empty response from model")
	}

	corrected := strings.TrimSpace(cr.Choices[0].Message.Content)
	return &Correction{
		CorrectedText: corrected,
		ChangeCount:   CountWordChanges(text, corrected),
		TokensUsed:    cr.Usage.TotalTokens,
		Model:         c.model,
	}, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(raw))
	var body apiErrorBody
	if json.Unmarshal(raw, &body) == nil && body.Error.Message != "" {
		msg = body.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &AuthError{Message: msg}
	case resp.StatusCode == http.StatusTooManyRequests:
		e := &RateLimitError{Message: msg}
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			e.RetryAfter = time.Duration(secs) * time.Second
		}
		return e
	default:
		return &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}
}

// CountWordChanges approximates how many words differ between two texts by
// comparing lowercased words position by position. An inserted word shifts
// every later position, so this overcounts; it is not an edit distance.
func CountWordChanges(original, corrected string) int {
	a := strings.Fields(strings.ToLower(original))
	b := strings.Fields(strings.ToLower(corrected))

	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	changes := 0
	for i := 0; i < n; i++ {
		if i >= len(a) || i >= len(b) || a[i] != b[i] {
			changes++
		}
	}
	return changes
}
