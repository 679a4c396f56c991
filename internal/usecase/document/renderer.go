package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Renderer binds a TemplateContext into the template file
type Renderer struct {
	templatePath string
	engine       *Engine
	logger       *zap.Logger

	mu      sync.RWMutex
	caching bool
	cached  []byte
}

// NewRenderer creates a renderer for the template at templatePath
func NewRenderer(templatePath string, engine *Engine, logger *zap.Logger) *Renderer {
	return &Renderer{
		templatePath: templatePath,
		engine:       engine,
		logger:       logger,
	}
}

// TemplatePath returns the configured template location
func (r *Renderer) TemplatePath() string {
	return r.templatePath
}

// TemplateExists is a cheap probe for the template file
func (r *Renderer) TemplateExists() bool {
	info, err := os.Stat(r.templatePath)
	return err == nil && !info.IsDir()
}

// Render fills the template. It returns ErrTemplateMissing when the template
// file is absent.
func (r *Renderer) Render(tc TemplateContext) (*Rendered, error) {
	if !r.TemplateExists() {
		return nil, ErrTemplateMissing
	}
	tpl, err := r.template()
	if err != nil {
		return nil, err
	}

	out, err := r.engine.Render(tpl, tc.Values())
	if err != nil {
		return nil, fmt.Errorf("failed to generate word document: %w", err)
	}
	if r.logger != nil {
		r.logger.Debug("📄 Template rendered",
			zap.String("meeting_title", firstNonEmpty(tc.Title, tc.CompanyName, tc.TaskTitle)),
			zap.Int("attendees", len(tc.Attendees)),
			zap.Int("discussion_points", len(tc.DiscussionPoints)),
			zap.Int("images", out.ImagesEmbedded),
			zap.Int("images_skipped", out.ImagesSkipped))
	}
	return out, nil
}

func (r *Renderer) template() ([]byte, error) {
	r.mu.RLock()
	if r.cached != nil {
		b := r.cached
		r.mu.RUnlock()
		return b, nil
	}
	caching := r.caching
	r.mu.RUnlock()

	b, err := os.ReadFile(r.templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTemplateMissing
		}
		return nil, fmt.Errorf("read template: %w", err)
	}

	if caching {
		r.mu.Lock()
		r.cached = b
		r.mu.Unlock()
	}
	return b, nil
}

func (r *Renderer) invalidate() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}

// Watch caches the template in memory and drops the cache whenever the file
// changes on disk. It blocks until ctx is done.
func (r *Renderer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(r.templatePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create template directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch template directory: %w", err)
	}

	r.mu.Lock()
	r.caching = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.caching = false
		r.cached = nil
		r.mu.Unlock()
	}()

	target := filepath.Clean(r.templatePath)
	if r.logger != nil {
		r.logger.Info("👀 Watching MOM template", zap.String("template_path", target))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			r.invalidate()
			if r.logger != nil {
				r.logger.Info("🔄 MOM template changed", zap.String("op", event.Op.String()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if r.logger != nil {
				r.logger.Warn("⚠️ Template watcher error", zap.Error(err))
			}
		}
	}
}
