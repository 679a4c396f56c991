package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/johnquangdev/mom-service/pkg/config"
)

// TranslateClient calls the public Google translate endpoint
type TranslateClient struct {
	baseURL string
	client  *http.Client
}

// NewTranslateClient creates a translation client from config
func NewTranslateClient(cfg *config.TranslateConfig) *TranslateClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TranslateClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Translate translates text between two language codes. Empty input returns
// empty output without a network call. Every failure is a *TranslationError.
func (t *TranslateClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", sourceLang)
	q.Set("tl", targetLang)
	q.Set("dt", "t")

	form := url.Values{}
	form.Set("q", text)

	endpoint := t.baseURL + "/translate_a/single?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TranslationError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &TranslationError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		upstream := &UpstreamError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		return "", &TranslationError{Message: upstream.Error(), Err: upstream}
	}

	translated, err := parseTranslation(resp.Body)
	if err != nil {
		return "", &TranslationError{Message: err.Error(), Err: err}
	}
	return translated, nil
}

// parseTranslation reads the nested-array answer:
// [[["translated","source",...],...],null,"gu",...]
func parseTranslation(r io.Reader) (string, error) {
	var top []json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	if len(top) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]interface{}
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translation payload: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("translation response carried no text")
	}
	return sb.String(), nil
}
