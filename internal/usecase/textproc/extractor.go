package textproc

import (
	"regexp"
	"strings"
)

// GroupingMode selects how discussion points are cut out of text
type GroupingMode int

const (
	// LinePerPoint takes every numbered or bulleted line as one point and
	// drops lines that carry neither marker. Used for persisted records.
	LinePerPoint GroupingMode = iota

	// SpanUntilNextMarker starts a point at each numbered marker and keeps
	// every following line until the next marker. Text without markers
	// becomes a single point. Used for previews.
	SpanUntilNextMarker
)

func (m GroupingMode) String() string {
	switch m {
	case LinePerPoint:
		return "line-per-point"
	case SpanUntilNextMarker:
		return "span-until-next-marker"
	default:
		return "unknown"
	}
}

var (
	numberedLine = regexp.MustCompile(`^\s*\d+[.):\-]\s*(.+)`)
	bulletedLine = regexp.MustCompile(`^\s*[•\-*]\s*(.+)`)
	markerLine   = regexp.MustCompile(`^\s*\d+[.):\-]\s*(.*)$`)
)

// Extractor turns processed text into ordered discussion points
type Extractor struct {
	mode GroupingMode
}

// NewExtractor creates an extractor for the given grouping mode
func NewExtractor(mode GroupingMode) *Extractor {
	return &Extractor{mode: mode}
}

// Mode returns the extractor's grouping mode
func (e *Extractor) Mode() GroupingMode {
	return e.mode
}

// Extract returns the discussion points of text, never nil
func (e *Extractor) Extract(text string) []string {
	if e.mode == SpanUntilNextMarker {
		return extractSpans(text)
	}
	return extractLines(text)
}

// ExtractOrLines behaves like LinePerPoint extraction, but when no line
// carries a marker every non-blank line becomes a point. Documents use this
// so unformatted notes still render.
func ExtractOrLines(text string) []string {
	points := extractLines(text)
	if len(points) > 0 {
		return points
	}
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			points = append(points, trimmed)
		}
	}
	return points
}

func extractLines(text string) []string {
	points := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := numberedLine.FindStringSubmatch(line); m != nil {
			points = append(points, strings.TrimSpace(m[1]))
			continue
		}
		if m := bulletedLine.FindStringSubmatch(line); m != nil {
			points = append(points, strings.TrimSpace(m[1]))
		}
	}
	return points
}

func extractSpans(text string) []string {
	points := []string{}
	var current []string
	inPoint := false

	flush := func() {
		if !inPoint {
			return
		}
		if p := strings.TrimSpace(strings.Join(current, "\n")); p != "" {
			points = append(points, p)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if m := markerLine.FindStringSubmatch(line); m != nil {
			flush()
			inPoint = true
			current = append(current, m[1])
			continue
		}
		if inPoint {
			current = append(current, line)
		}
	}
	flush()

	if len(points) == 0 {
		if whole := strings.TrimSpace(text); whole != "" {
			points = append(points, whole)
		}
	}
	return points
}
