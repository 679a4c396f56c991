package textproc

import (
	"context"
	"errors"

	"github.com/johnquangdev/mom-service/pkg/ai"
	"github.com/johnquangdev/mom-service/pkg/config"
)

// ErrCorrectorUnavailable is returned when correction is asked of an
// Unconfigured backend
var ErrCorrectorUnavailable = errors.New("grammar corrector not configured")

// GrammarClient corrects text through an external language model
type GrammarClient interface {
	CorrectGrammar(ctx context.Context, text string) (*ai.Correction, error)
}

// CorrectorBackend is either Unconfigured or Configured. The set is closed:
// callers switch on the concrete type.
type CorrectorBackend interface {
	correctorBackend()
}

// Unconfigured means no model credential is present; only local rules apply
type Unconfigured struct{}

// Configured carries a ready model client
type Configured struct {
	Client GrammarClient
}

func (Unconfigured) correctorBackend() {}
func (Configured) correctorBackend()   {}

// NewCorrectorBackend picks the backend from config: without an API key the
// corrector is Unconfigured.
func NewCorrectorBackend(cfg *config.OpenAIConfig) CorrectorBackend {
	if cfg == nil || cfg.APIKey == "" {
		return Unconfigured{}
	}
	return Configured{Client: ai.NewOpenAIClient(cfg)}
}

// IsAvailable reports whether the backend can reach a model
func IsAvailable(b CorrectorBackend) bool {
	c, ok := b.(Configured)
	return ok && c.Client != nil
}

// Correct runs the model on a Configured backend
func Correct(ctx context.Context, b CorrectorBackend, text string) (*ai.Correction, error) {
	switch b := b.(type) {
	case Configured:
		if b.Client == nil {
			return nil, ErrCorrectorUnavailable
		}
		return b.Client.CorrectGrammar(ctx, text)
	default:
		return nil, ErrCorrectorUnavailable
	}
}
