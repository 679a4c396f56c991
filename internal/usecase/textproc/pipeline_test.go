package textproc

import (
	"context"
	"errors"
	"testing"

	"github.com/johnquangdev/mom-service/pkg/ai"
)

type fakeTranslator struct {
	out   string
	err   error
	calls []string
	log   *[]string
}

func (f *fakeTranslator) Translate(_ context.Context, text, source, target string) (string, error) {
	f.calls = append(f.calls, text)
	if f.log != nil {
		*f.log = append(*f.log, "translate")
	}
	return f.out, f.err
}

type fakeGrammarClient struct {
	err      error
	received []string
	log      *[]string
}

func (f *fakeGrammarClient) CorrectGrammar(_ context.Context, text string) (*ai.Correction, error) {
	f.received = append(f.received, text)
	if f.log != nil {
		*f.log = append(*f.log, "correct")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ai.Correction{CorrectedText: "Corrected: " + text, ChangeCount: 3, TokensUsed: 10}, nil
}

func newTestPipeline(t *testing.T, tr Translator, backend CorrectorBackend) *Pipeline {
	t.Helper()
	d, err := NewScriptDetector("Gujarati")
	if err != nil {
		t.Fatal(err)
	}
	return NewPipeline(d, tr, backend, "gu", "en", nil)
}

func TestProcess_LatinTextUsesBasicRules(t *testing.T) {
	tr := &fakeTranslator{}
	p := newTestPipeline(t, tr, Unconfigured{})

	in := "the meeting went well .next visit in may"
	res := p.Process(context.Background(), in, false)

	if res.WasTranslated || res.WasAICorrected || res.Changes != 0 || res.Error != "" {
		t.Fatalf("unexpected flags %+v", res)
	}
	if res.ProcessedText != ApplyBasicRules(in) {
		t.Fatalf("expected basic-rules output, got %q", res.ProcessedText)
	}
	if len(tr.calls) != 0 {
		t.Fatal("translator must not run for latin text")
	}
}

func TestProcess_UseAIWithoutCredentialFallsBack(t *testing.T) {
	p := newTestPipeline(t, &fakeTranslator{}, Unconfigured{})
	if p.AIAvailable() {
		t.Fatal("unconfigured backend reported available")
	}

	res := p.Process(context.Background(), "hello world", true)
	if res.WasAICorrected || res.ProcessedText != "Hello world" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestProcess_TranslatesBeforeCorrecting(t *testing.T) {
	var order []string
	tr := &fakeTranslator{out: "translated text", log: &order}
	gc := &fakeGrammarClient{log: &order}
	p := newTestPipeline(t, tr, Configured{Client: gc})

	res := p.Process(context.Background(), "મીટિંગ સારી રહી", true)

	if !res.WasTranslated || !res.WasAICorrected || res.Changes != 3 {
		t.Fatalf("unexpected flags %+v", res)
	}
	if len(order) != 2 || order[0] != "translate" || order[1] != "correct" {
		t.Fatalf("unexpected call order %v", order)
	}
	if gc.received[0] != "translated text" {
		t.Fatalf("corrector got %q, want translation", gc.received[0])
	}
	if res.ProcessedText != "Corrected: translated text" {
		t.Fatalf("unexpected text %q", res.ProcessedText)
	}
}

func TestProcess_ForeignScriptWithoutAI(t *testing.T) {
	tr := &fakeTranslator{out: "site visit done.all good"}
	p := newTestPipeline(t, tr, Configured{Client: &fakeGrammarClient{}})

	res := p.Process(context.Background(), "સાઇટ", false)
	if !res.WasTranslated || res.WasAICorrected {
		t.Fatalf("unexpected flags %+v", res)
	}
	if res.ProcessedText != "Site visit done. All good" {
		t.Fatalf("unexpected text %q", res.ProcessedText)
	}
}

func TestProcess_ErrorsFallBackToOriginalText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		tr      *fakeTranslator
		backend CorrectorBackend
	}{
		{
			name:    "translation failure",
			in:      "મીટિંગ notes .here",
			tr:      &fakeTranslator{err: &ai.TranslationError{Message: "timeout"}},
			backend: Unconfigured{},
		},
		{
			name:    "model rate limited",
			in:      "notes .here",
			tr:      &fakeTranslator{},
			backend: Configured{Client: &fakeGrammarClient{err: &ai.RateLimitError{Message: "slow down"}}},
		},
		{
			name:    "model auth failure",
			in:      "notes .here",
			tr:      &fakeTranslator{},
			backend: Configured{Client: &fakeGrammarClient{err: &ai.AuthError{Message: "bad key"}}},
		},
		{
			name:    "unexpected failure",
			in:      "notes .here",
			tr:      &fakeTranslator{},
			backend: Configured{Client: &fakeGrammarClient{err: errors.New("boom")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(t, tt.tr, tt.backend)
			res := p.Process(context.Background(), tt.in, true)

			if res.Error == "" {
				t.Fatal("expected error to be reported")
			}
			if res.WasTranslated || res.WasAICorrected || res.Changes != 0 {
				t.Fatalf("flags must be cleared on error: %+v", res)
			}
			if res.ProcessedText != ApplyBasicRules(tt.in) {
				t.Fatalf("expected basic rules on original text, got %q", res.ProcessedText)
			}
		})
	}
}

func TestNewCorrectorBackend(t *testing.T) {
	if IsAvailable(NewCorrectorBackend(nil)) {
		t.Fatal("nil config must be unconfigured")
	}
	if _, ok := NewCorrectorBackend(nil).(Unconfigured); !ok {
		t.Fatal("expected Unconfigured")
	}
}

func TestCorrect_UnconfiguredBackend(t *testing.T) {
	if _, err := Correct(context.Background(), Unconfigured{}, "text"); !errors.Is(err, ErrCorrectorUnavailable) {
		t.Fatalf("expected ErrCorrectorUnavailable, got %v", err)
	}
	if _, err := Correct(context.Background(), Configured{}, "text"); !errors.Is(err, ErrCorrectorUnavailable) {
		t.Fatalf("expected ErrCorrectorUnavailable for nil client, got %v", err)
	}
}
