package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	defaultPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	defaultDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

	documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="` + nsR + `" xmlns:wp="` + nsWP + `"><w:body>`
	documentFooter = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`
)

// defaultTemplateParagraphs is the stock MOM layout using the current field names
var defaultTemplateParagraphs = []string{
	"{documentTitle}",
	"Meeting: {meetingTitle}",
	"Date: {meetingDate}",
	"Location: {meetingLocation}",
	"Attendees",
	"{#attendees}",
	"• {name}",
	"{/attendees}",
	"Discussion Points",
	"{#discussionPoints}",
	"{number}. {point}",
	"{/discussionPoints}",
	"{#hasImages}Site Photos{/hasImages}",
	"{#images}",
	"{%.}",
	"{/images}",
}

// BuildTemplate packages plain paragraphs into a minimal .docx, one run each
func BuildTemplate(paragraphs ...string) ([]byte, error) {
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(xmlEscaper.Replace(p))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	return packageDocument(body.String())
}

// DefaultTemplate returns the stock MOM template
func DefaultTemplate() ([]byte, error) {
	return BuildTemplate(defaultTemplateParagraphs...)
}

// WriteDefaultTemplate writes the stock template to path unless a file is
// already there. It reports whether a file was written.
func WriteDefaultTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := DefaultTemplate()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create template directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write template: %w", err)
	}
	return true, nil
}

func packageDocument(body string) ([]byte, error) {
	files := []struct {
		name string
		data string
	}{
		{contentTypesPart, defaultContentTypes},
		{"_rels/.rels", defaultPackageRels},
		{documentPart, documentHeader + body + documentFooter},
		{documentRelsPart, defaultDocumentRels},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(f.data)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
