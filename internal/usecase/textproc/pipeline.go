package textproc

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/mom-service/internal/domain/entities"
)

// Translator translates text between two language codes
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Pipeline runs script detection, translation and grammar correction
type Pipeline struct {
	detector   *ScriptDetector
	translator Translator
	corrector  CorrectorBackend
	sourceLang string
	targetLang string
	logger     *zap.Logger
}

// NewPipeline creates a text-processing pipeline
func NewPipeline(
	detector *ScriptDetector,
	translator Translator,
	corrector CorrectorBackend,
	sourceLang, targetLang string,
	logger *zap.Logger,
) *Pipeline {
	if corrector == nil {
		corrector = Unconfigured{}
	}
	return &Pipeline{
		detector:   detector,
		translator: translator,
		corrector:  corrector,
		sourceLang: sourceLang,
		targetLang: targetLang,
		logger:     logger,
	}
}

// AIAvailable reports whether model correction can run
func (p *Pipeline) AIAvailable() bool {
	return IsAvailable(p.corrector)
}

// Process translates text when it carries the foreign script, then corrects
// it with the model (when useAI and configured) or with the local rules.
// It never fails: on any error the local rules are applied to the original
// text and the error is reported in the result.
func (p *Pipeline) Process(ctx context.Context, text string, useAI bool) entities.ProcessingResult {
	result, err := p.process(ctx, text, useAI)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("⚠️ Text processing failed, using basic rules on original text", zap.Error(err))
		}
		return entities.ProcessingResult{
			ProcessedText: ApplyBasicRules(text),
			Error:         err.Error(),
		}
	}
	return result
}

func (p *Pipeline) process(ctx context.Context, text string, useAI bool) (result entities.ProcessingResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text processing panic: %v", r)
		}
	}()

	working := text

	if p.detector != nil && p.detector.ContainsForeignScript(text) {
		if p.translator == nil {
			return result, errors.New("foreign script detected but no translator configured")
		}
		if p.logger != nil {
			p.logger.Info("🌐 Foreign script detected, translating", zap.String("script", p.detector.Script()))
		}
		translated, err := p.translator.Translate(ctx, text, p.sourceLang, p.targetLang)
		if err != nil {
			return result, err
		}
		working = translated
		result.WasTranslated = true
	}

	switch b := p.corrector.(type) {
	case Configured:
		if !useAI || b.Client == nil {
			working = ApplyBasicRules(working)
			break
		}
		correction, err := Correct(ctx, b, working)
		if err != nil {
			return entities.ProcessingResult{}, err
		}
		working = correction.CorrectedText
		result.WasAICorrected = true
		result.Changes = correction.ChangeCount
		if p.logger != nil {
			p.logger.Info("✅ AI correction completed",
				zap.Int("changes", correction.ChangeCount),
				zap.Int("tokens", correction.TokensUsed))
		}
	case Unconfigured:
		if useAI && p.logger != nil {
			p.logger.Info("⚠️ AI correction not available, using basic rules")
		}
		working = ApplyBasicRules(working)
	default:
		working = ApplyBasicRules(working)
	}

	result.ProcessedText = working
	return result, nil
}
