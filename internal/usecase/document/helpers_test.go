package document

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// 1x1 transparent PNG
const pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func readPart(t *testing.T, docx []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("open docx: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func writeTemplate(t *testing.T, dir string, paragraphs ...string) string {
	t.Helper()
	data, err := BuildTemplate(paragraphs...)
	if err != nil {
		t.Fatalf("build template: %v", err)
	}
	path := filepath.Join(dir, "mom-template.docx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

// writeFakeConverter writes a shell script that answers --version and
// otherwise runs body with $5 = outdir and $6 = input file.
func writeFakeConverter(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake converter is a shell script")
	}
	path := filepath.Join(t.TempDir(), "fake-soffice")
	script := "#!/bin/sh\nif [ \"$1\" = \"--version\" ]; then echo 'FakeOffice 1.0'; exit 0; fi\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake converter: %v", err)
	}
	return path
}
