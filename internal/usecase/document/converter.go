package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const probeTimeout = 10 * time.Second

// Converter transcodes documents to PDF with a headless office suite
type Converter struct {
	commands []string
	timeout  time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	resolved string

	// soffice refuses a second headless run on the same user profile
	runMu sync.Mutex
}

// NewConverter creates a converter probing commands in order
func NewConverter(commands []string, timeout time.Duration, logger *zap.Logger) *Converter {
	return &Converter{
		commands: commands,
		timeout:  timeout,
		logger:   logger,
	}
}

// Locate returns the first command that answers --version
func (c *Converter) Locate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resolved != "" {
		return c.resolved, nil
	}

	for _, name := range c.commands {
		name = strings.Trim(strings.TrimSpace(name), `"`)
		if name == "" {
			continue
		}
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err = exec.CommandContext(probeCtx, path, "--version").Run()
		cancel()
		if err != nil {
			continue
		}

		c.resolved = path
		if c.logger != nil {
			c.logger.Info("🖨️ PDF converter found", zap.String("command", path))
		}
		return path, nil
	}
	return "", ErrConverterNotFound
}

// ConvertToPDF writes a PDF next to docPath and returns its path
func (c *Converter) ConvertToPDF(ctx context.Context, docPath string) (string, error) {
	if _, err := os.Stat(docPath); err != nil {
		return "", &ConversionError{Command: "-", Err: fmt.Errorf("document file not found: %w", err)}
	}

	command, err := c.Locate(ctx)
	if err != nil {
		return "", err
	}

	c.runMu.Lock()
	defer c.runMu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outDir := filepath.Dir(docPath)
	cmd := exec.CommandContext(runCtx, command, "--headless", "--convert-to", "pdf", "--outdir", outDir, docPath)
	cmd.WaitDelay = 5 * time.Second
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s", c.timeout)
		}
		return "", &ConversionError{Command: command, Output: trimOutput(output), Err: err}
	}

	pdfPath := strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".pdf"
	if _, err := os.Stat(pdfPath); err != nil {
		return "", &ConversionError{
			Command: command,
			Output:  trimOutput(output),
			Err:     errors.New("converter finished without producing a pdf"),
		}
	}
	return pdfPath, nil
}

func trimOutput(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}
