package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/johnquangdev/mom-service/pkg/config"
)

func newTestOpenAIClient(url string) *OpenAIClient {
	return NewOpenAIClient(&config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     url,
		Model:       "gpt-4o-mini",
		MaxTokens:   2000,
		Temperature: 0.3,
		Timeout:     5 * time.Second,
	})
}

func TestCorrectGrammar_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}

		var payload ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "gpt-4o-mini" || payload.MaxTokens != 2000 {
			t.Fatalf("unexpected request %+v", payload)
		}
		if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Content != "the meeting were good" {
			t.Fatalf("unexpected messages %+v", payload.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  The meeting was good.  "}}],"usage":{"total_tokens":42}}`))
	}))
	defer ts.Close()

	res, err := newTestOpenAIClient(ts.URL).CorrectGrammar(context.Background(), "the meeting were good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CorrectedText != "The meeting was good." {
		t.Fatalf("unexpected text %q", res.CorrectedText)
	}
	if res.TokensUsed != 42 {
		t.Fatalf("expected 42 tokens, got %d", res.TokensUsed)
	}
	// "were"->"was" and "good"->"good." differ by position
	if res.ChangeCount != 2 {
		t.Fatalf("expected 2 changes, got %d", res.ChangeCount)
	}
}

func TestCorrectGrammar_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"unauthorized", http.StatusUnauthorized, func(err error) bool {
			var e *AuthError
			return errors.As(err, &e)
		}},
		{"rate limited", http.StatusTooManyRequests, func(err error) bool {
			var e *RateLimitError
			return errors.As(err, &e) && e.RetryAfter == 3*time.Second
		}},
		{"server error", http.StatusBadGateway, func(err error) bool {
			var e *UpstreamError
			return errors.As(err, &e) && e.StatusCode == http.StatusBadGateway && e.Message == "boom"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "3")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":{"message":"boom"}}`))
			}))
			defer ts.Close()

			_, err := newTestOpenAIClient(ts.URL).CorrectGrammar(context.Background(), "hello")
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestCorrectGrammar_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	if _, err := newTestOpenAIClient(ts.URL).CorrectGrammar(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

// CountWordChanges is a positional approximation, not an edit distance: one
// inserted word marks every following position as changed.
func TestCountWordChanges(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"same words here", "Same Words Here", 0},
		{"one two three", "one 2 three", 1},
		{"a b c", "x a b c", 4},
		{"a b c d", "a b", 2},
		{"", "", 0},
	}
	for _, tt := range tests {
		if got := CountWordChanges(tt.a, tt.b); got != tt.want {
			t.Errorf("CountWordChanges(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
