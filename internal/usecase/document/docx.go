package document

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/johnquangdev/mom-service/internal/domain/entities"
)

const (
	documentPart     = "word/document.xml"
	documentRelsPart = "word/_rels/document.xml.rels"
	contentTypesPart = "[Content_Types].xml"

	imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	nsWP         = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsR          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	emuPerPixel = 9525

	// closes the current text run so a drawing or break can be placed
	runBreakOpen  = `</w:t></w:r><w:r>`
	runBreakClose = `</w:r><w:r><w:t xml:space="preserve">`
	lineBreak     = `</w:t><w:br/><w:t xml:space="preserve">`
)

var (
	paragraphPattern = regexp.MustCompile(`(?s)<w:p[ >].*?</w:p>`)
	textRunPattern   = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>|<w:t(?:\s[^>]*)?/>`)
	headerFooterPart = regexp.MustCompile(`^word/(header|footer)\d*\.xml$`)
	loopOpenTag      = regexp.MustCompile(`\{#([\w.]+)\}`)
	strayCloseTag    = regexp.MustCompile(`\{/([\w.]+)\}`)
	valueTag         = regexp.MustCompile(`\{(%?)([\w.]+)\}`)

	xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
)

// Engine fills .docx templates written with brace tags:
//
//	{field}            text value, "\n" becomes a line break
//	{#list}...{/list}  repeated per item; inline, or whole paragraphs when the
//	                   tags sit alone in their paragraphs
//	{.}                the current loop item
//	{%field}           base64 image (optionally a data URL)
//
// Images are only embedded in the main document part; image tags in headers
// and footers render empty.
type Engine struct {
	defaultWidth  int
	defaultHeight int
}

// NewEngine creates an engine with the default image display size in pixels
func NewEngine(defaultWidth, defaultHeight int) *Engine {
	if defaultWidth <= 0 {
		defaultWidth = 400
	}
	if defaultHeight <= 0 {
		defaultHeight = 300
	}
	return &Engine{defaultWidth: defaultWidth, defaultHeight: defaultHeight}
}

// Rendered is a filled document
type Rendered struct {
	Data           []byte
	ImagesEmbedded int
	ImagesSkipped  int
}

// Render fills template with data. The template is not modified.
func (e *Engine) Render(template []byte, data map[string]interface{}) (*Rendered, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("open template archive: %w", err)
	}

	parts := make(map[string][]byte, len(zr.File))
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open template part %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read template part %s: %w", f.Name, err)
		}
		parts[f.Name] = b
		names = append(names, f.Name)
	}

	doc, ok := parts[documentPart]
	if !ok {
		return nil, fmt.Errorf("template has no %s", documentPart)
	}

	media := &mediaSet{engine: e}
	body, err := (&xmlRenderer{media: media}).render(mergeTextRuns(string(doc)), []interface{}{data})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", documentPart, err)
	}
	if len(media.items) > 0 {
		body = ensureNamespaces(body)
	}
	parts[documentPart] = []byte(body)

	for _, name := range names {
		if !headerFooterPart.MatchString(name) {
			continue
		}
		out, err := (&xmlRenderer{}).render(mergeTextRuns(string(parts[name])), []interface{}{data})
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		parts[name] = []byte(out)
	}

	if len(media.items) > 0 {
		if _, ok := parts[documentRelsPart]; !ok {
			names = append(names, documentRelsPart)
		}
		parts[documentRelsPart] = addImageRelationships(parts[documentRelsPart], media.items)
		parts[contentTypesPart] = addImageContentTypes(parts[contentTypesPart], media.items)
		for _, item := range media.items {
			name := "word/" + item.target
			parts[name] = item.data
			names = append(names, name)
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("write part %s: %w", name, err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			return nil, fmt.Errorf("write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize document archive: %w", err)
	}

	return &Rendered{
		Data:           buf.Bytes(),
		ImagesEmbedded: len(media.items),
		ImagesSkipped:  media.skipped,
	}, nil
}

// mergeTextRuns moves the text of every paragraph holding a tag into its
// first <w:t>, since Word splits typed text across runs at will.
func mergeTextRuns(xml string) string {
	return paragraphPattern.ReplaceAllStringFunc(xml, func(p string) string {
		matches := textRunPattern.FindAllStringSubmatchIndex(p, -1)
		if len(matches) == 0 {
			return p
		}
		joined := paragraphTextFrom(p, matches)
		if !strings.Contains(joined, "{") {
			return p
		}

		var b strings.Builder
		last := 0
		for i, m := range matches {
			b.WriteString(p[last:m[0]])
			if i == 0 {
				b.WriteString(`<w:t xml:space="preserve">`)
				b.WriteString(joined)
				b.WriteString(`</w:t>`)
			}
			last = m[1]
		}
		b.WriteString(p[last:])
		return b.String()
	})
}

func paragraphText(p string) string {
	return paragraphTextFrom(p, textRunPattern.FindAllStringSubmatchIndex(p, -1))
}

func paragraphTextFrom(p string, matches [][]int) string {
	var text strings.Builder
	for _, m := range matches {
		if m[2] >= 0 {
			text.WriteString(p[m[2]:m[3]])
		}
	}
	return text.String()
}

type span struct {
	start, end int
}

// paragraphAt returns the bounds of the paragraph enclosing idx
func paragraphAt(xml string, idx int) (span, bool) {
	start := max(strings.LastIndex(xml[:idx], "<w:p>"), strings.LastIndex(xml[:idx], "<w:p "))
	if start < 0 || strings.Contains(xml[start:idx], "</w:p>") {
		return span{}, false
	}
	end := strings.Index(xml[idx:], "</w:p>")
	if end < 0 {
		return span{}, false
	}
	return span{start: start, end: idx + end + len("</w:p>")}, true
}

// markerRow returns the table row enclosing idx when tag is its only text
func markerRow(xml string, idx int, tag string) (span, bool) {
	start := max(strings.LastIndex(xml[:idx], "<w:tr>"), strings.LastIndex(xml[:idx], "<w:tr "))
	if start < 0 || strings.Contains(xml[start:idx], "</w:tr>") {
		return span{}, false
	}
	end := strings.Index(xml[idx:], "</w:tr>")
	if end < 0 {
		return span{}, false
	}
	row := span{start: start, end: idx + end + len("</w:tr>")}
	if strings.TrimSpace(paragraphText(xml[row.start:row.end])) != tag {
		return span{}, false
	}
	return row, true
}

func findLoopClose(xml, name string, from int) (int, int, error) {
	openTag := "{#" + name + "}"
	closeTag := "{/" + name + "}"
	depth := 1
	i := from
	for {
		nc := strings.Index(xml[i:], closeTag)
		if nc < 0 {
			return 0, 0, fmt.Errorf("unclosed loop %q", name)
		}
		if no := strings.Index(xml[i:], openTag); no >= 0 && no < nc {
			depth++
			i += no + len(openTag)
			continue
		}
		depth--
		if depth == 0 {
			return i + nc, i + nc + len(closeTag), nil
		}
		i += nc + len(closeTag)
	}
}

type xmlRenderer struct {
	media *mediaSet
}

func (r *xmlRenderer) render(xml string, scope []interface{}) (string, error) {
	loc := loopOpenTag.FindStringSubmatchIndex(xml)
	if loc == nil {
		return r.substitute(xml, scope)
	}

	name := xml[loc[2]:loc[3]]
	openStart, openEnd := loc[0], loc[1]
	closeStart, closeEnd, err := findLoopClose(xml, name, openEnd)
	if err != nil {
		return "", err
	}

	prefix, inner, suffix := xml[:openStart], xml[openEnd:closeStart], xml[closeEnd:]

	op, opOK := paragraphAt(xml, openStart)
	cp, cpOK := paragraphAt(xml, closeStart)
	if opOK && cpOK && op.start != cp.start {
		openAlone := strings.TrimSpace(paragraphText(xml[op.start:op.end])) == xml[openStart:openEnd]
		closeAlone := strings.TrimSpace(paragraphText(xml[cp.start:cp.end])) == xml[closeStart:closeEnd]
		prefix, suffix = xml[:op.start], xml[cp.end:]
		if openAlone && closeAlone {
			// Marker rows of a table are dropped with their tags; an empty
			// cell would be invalid
			if or, ok := markerRow(xml, openStart, xml[openStart:openEnd]); ok {
				if cr, ok := markerRow(xml, closeStart, xml[closeStart:closeEnd]); ok && or.end <= cr.start {
					op, cp = or, cr
					prefix, suffix = xml[:op.start], xml[cp.end:]
				}
			}
			inner = xml[op.end:cp.start]
		} else {
			inner = xml[op.start:openStart] + xml[openEnd:closeStart] + xml[closeEnd:cp.end]
		}
	}

	head, err := r.substitute(prefix, scope)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(head)
	for _, item := range sectionItems(lookup(scope, name)) {
		nested := append(scope[:len(scope):len(scope)], item)
		out, err := r.render(inner, nested)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}

	tail, err := r.render(suffix, scope)
	if err != nil {
		return "", err
	}
	b.WriteString(tail)
	return b.String(), nil
}

func (r *xmlRenderer) substitute(xml string, scope []interface{}) (string, error) {
	if m := strayCloseTag.FindStringSubmatch(xml); m != nil {
		return "", fmt.Errorf("loop %q closed but never opened", m[1])
	}

	return valueTag.ReplaceAllStringFunc(xml, func(tag string) string {
		m := valueTag.FindStringSubmatch(tag)
		value := lookup(scope, m[2])
		if m[1] == "%" {
			return r.image(value)
		}
		text := strings.ReplaceAll(xmlEscaper.Replace(stringify(value)), "\r", "")
		return strings.ReplaceAll(text, "\n", lineBreak)
	}), nil
}

func (r *xmlRenderer) image(value interface{}) string {
	if r.media == nil {
		return ""
	}
	img, ok := r.media.add(value)
	if !ok {
		return ""
	}
	return runBreakOpen + img.drawingXML() + runBreakClose
}

// lookup resolves name from the innermost scope outwards. "." is the current
// item; dotted names walk nested maps.
func lookup(scope []interface{}, name string) interface{} {
	if len(scope) == 0 {
		return nil
	}
	if name == "." {
		return scope[len(scope)-1]
	}

	keys := strings.Split(name, ".")
	for i := len(scope) - 1; i >= 0; i-- {
		m, ok := scope[i].(map[string]interface{})
		if !ok {
			continue
		}
		v, ok := m[keys[0]]
		if !ok {
			continue
		}
		for _, k := range keys[1:] {
			nested, ok := v.(map[string]interface{})
			if !ok {
				return nil
			}
			v = nested[k]
		}
		return v
	}
	return nil
}

// sectionItems returns what a {#name} section iterates over
func sectionItems(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	case []string:
		items := make([]interface{}, len(t))
		for i, s := range t {
			items[i] = s
		}
		return items
	case []map[string]interface{}:
		items := make([]interface{}, len(t))
		for i, m := range t {
			items[i] = m
		}
		return items
	case bool:
		if t {
			return []interface{}{t}
		}
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []interface{}{t}
	default:
		return []interface{}{t}
	}
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]interface{}, []interface{}:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func ensureNamespaces(doc string) string {
	i := strings.Index(doc, "<w:document")
	if i < 0 {
		return doc
	}
	end := strings.Index(doc[i:], ">")
	if end < 0 {
		return doc
	}
	root := doc[i : i+end]

	var add strings.Builder
	if !strings.Contains(root, "xmlns:wp=") {
		add.WriteString(` xmlns:wp="` + nsWP + `"`)
	}
	if !strings.Contains(root, "xmlns:r=") {
		add.WriteString(` xmlns:r="` + nsR + `"`)
	}
	if add.Len() == 0 {
		return doc
	}
	at := i + len("<w:document")
	return doc[:at] + add.String() + doc[at:]
}

type mediaItem struct {
	relID       string
	target      string
	ext         string
	contentType string
	data        []byte
	width       int
	height      int
	docPrID     int
}

type mediaSet struct {
	engine  *Engine
	items   []mediaItem
	skipped int
}

// add decodes an image value: a base64 string, or a map with "data" and
// optional "width"/"height" in pixels. Undecodable data is skipped.
func (m *mediaSet) add(value interface{}) (mediaItem, bool) {
	var raw string
	width, height := m.engine.defaultWidth, m.engine.defaultHeight

	switch t := value.(type) {
	case string:
		raw = t
	case map[string]interface{}:
		raw, _ = t["data"].(string)
		if w := toInt(t["width"]); w > 0 {
			width = w
		}
		if h := toInt(t["height"]); h > 0 {
			height = h
		}
	}
	if raw == "" {
		return mediaItem{}, false
	}

	data, err := DecodeImageData(raw)
	if err != nil {
		m.skipped++
		return mediaItem{}, false
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		m.skipped++
		return mediaItem{}, false
	}

	n := len(m.items) + 1
	ext := strings.TrimPrefix(mt.Extension(), ".")
	item := mediaItem{
		relID:       fmt.Sprintf("rIdMomImage%d", n),
		target:      fmt.Sprintf("media/mom_image%d.%s", n, ext),
		ext:         ext,
		contentType: strings.SplitN(mt.String(), ";", 2)[0],
		data:        data,
		width:       width,
		height:      height,
		docPrID:     1000 + n,
	}
	m.items = append(m.items, item)
	return item, true
}

// DecodeImageData strips an optional data-URL prefix and decodes base64
func DecodeImageData(raw string) ([]byte, error) {
	if strings.HasPrefix(raw, "data:") {
		if i := strings.Index(raw, ","); i >= 0 {
			raw = raw[i+1:]
		}
	}
	raw = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, raw)

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(raw, "="))
	}
	return data, err
}

// toInt reads a pixel size, capped at entities.MaxImageDimension. Values it
// cannot use come back as 0.
func toInt(v interface{}) int {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case float64:
		f = t
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if !(f >= 1) {
		return 0
	}
	if f > entities.MaxImageDimension {
		return entities.MaxImageDimension
	}
	return int(f)
}

func (i mediaItem) drawingXML() string {
	cx, cy := i.width*emuPerPixel, i.height*emuPerPixel
	return fmt.Sprintf(`<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/><wp:docPr id="%d" name="Picture %d"/>`+
		`<wp:cNvGraphicFramePr><a:graphicFrameLocks xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" noChangeAspect="1"/></wp:cNvGraphicFramePr>`+
		`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
		`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="%s"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`,
		cx, cy, i.docPrID, i.docPrID, i.docPrID, strings.TrimPrefix(i.target, "media/"), i.relID, cx, cy)
}

func addImageRelationships(rels []byte, items []mediaItem) []byte {
	s := string(rels)
	if s == "" {
		s = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="%s" Target="%s"/>`, item.relID, imageRelType, item.target)
	}

	i := strings.LastIndex(s, "</Relationships>")
	if i < 0 {
		return []byte(s + b.String())
	}
	return []byte(s[:i] + b.String() + s[i:])
}

func addImageContentTypes(types []byte, items []mediaItem) []byte {
	s := string(types)
	lower := strings.ToLower(s)

	var b strings.Builder
	seen := map[string]bool{}
	for _, item := range items {
		if seen[item.ext] || strings.Contains(lower, `extension="`+strings.ToLower(item.ext)+`"`) {
			continue
		}
		seen[item.ext] = true
		fmt.Fprintf(&b, `<Default Extension="%s" ContentType="%s"/>`, item.ext, item.contentType)
	}

	i := strings.LastIndex(s, "</Types>")
	if i < 0 {
		return []byte(s + b.String())
	}
	return []byte(s[:i] + b.String() + s[i:])
}
