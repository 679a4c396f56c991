package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// PDFConverter turns a document on disk into a PDF next to it
type PDFConverter interface {
	ConvertToPDF(ctx context.Context, docPath string) (string, error)
}

// Artifacts are the files produced by one generation
type Artifacts struct {
	DocPath string
	// PdfPath is empty when conversion was skipped or failed
	PdfPath string
}

// Paths returns the non-empty artifact paths
func (a *Artifacts) Paths() []string {
	paths := []string{a.DocPath}
	if a.PdfPath != "" {
		paths = append(paths, a.PdfPath)
	}
	return paths
}

// Generator renders a document into the temp directory and converts it to PDF
type Generator struct {
	renderer  *Renderer
	converter PDFConverter
	tempDir   string
	logger    *zap.Logger
	now       func() time.Time
}

// NewGenerator creates a generator. converter may be nil to skip PDFs.
func NewGenerator(renderer *Renderer, converter PDFConverter, tempDir string, logger *zap.Logger) *Generator {
	return &Generator{
		renderer:  renderer,
		converter: converter,
		tempDir:   tempDir,
		logger:    logger,
		now:       time.Now,
	}
}

// TemplateExists reports whether generation can run at all
func (g *Generator) TemplateExists() bool {
	return g.renderer.TemplateExists()
}

// TemplatePath is the template file generation reads
func (g *Generator) TemplatePath() string {
	return g.renderer.TemplatePath()
}

// Generate renders tc to <tempDir>/<baseFileName>_<unixnano>.docx and tries a
// PDF conversion. A failed conversion only leaves PdfPath empty. Nothing is
// written when the template is missing.
func (g *Generator) Generate(ctx context.Context, tc TemplateContext, baseFileName string) (*Artifacts, error) {
	if !g.renderer.TemplateExists() {
		return nil, ErrTemplateMissing
	}

	rendered, err := g.renderer.Render(tc)
	if err != nil {
		return nil, err
	}

	docPath, err := g.writeUnique(baseFileName, rendered.Data)
	if err != nil {
		return nil, err
	}
	if g.logger != nil {
		g.logger.Info("✅ Word document generated", zap.String("doc_path", docPath))
	}

	artifacts := &Artifacts{DocPath: docPath}
	if g.converter == nil {
		return artifacts, nil
	}

	pdfPath, err := g.converter.ConvertToPDF(ctx, docPath)
	if err != nil {
		if g.logger != nil {
			g.logger.Warn("⚠️ PDF conversion skipped", zap.String("doc_path", docPath), zap.Error(err))
		}
		return artifacts, nil
	}
	artifacts.PdfPath = pdfPath
	if g.logger != nil {
		g.logger.Info("✅ PDF generated", zap.String("pdf_path", pdfPath))
	}
	return artifacts, nil
}

func (g *Generator) writeUnique(base string, data []byte) (string, error) {
	if err := os.MkdirAll(g.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp directory: %w", err)
	}

	stamp := g.now().UnixNano()
	for attempt := 0; attempt < 100; attempt++ {
		name := fmt.Sprintf("%s_%d.docx", base, stamp)
		if attempt > 0 {
			name = fmt.Sprintf("%s_%d_%d.docx", base, stamp, attempt)
		}
		path := filepath.Join(g.tempDir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create document file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write document file: %w", err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close document file: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("could not find a free file name for %s", base)
}
