package ai

import (
	"fmt"
	"time"
)

// AuthError means the model service rejected the configured credential
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("invalid API credential: %s", e.Message)
}

// RateLimitError means the model service throttled the request. Callers may
// retry later; the client never retries on its own.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %s: %s", e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// UpstreamError is a 5xx (or otherwise unexpected) answer from an external API
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// TranslationError wraps any failure of the translation service
type TranslationError struct {
	Message string
	Err     error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation failed: %s", e.Message)
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}
