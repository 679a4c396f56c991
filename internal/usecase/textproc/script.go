package textproc

import (
	"fmt"
	"unicode"
)

// ScriptDetector reports whether text contains characters of one foreign script
type ScriptDetector struct {
	script string
	table  *unicode.RangeTable
}

// NewScriptDetector builds a detector for a Unicode script name such as
// "Gujarati" or "Devanagari".
func NewScriptDetector(script string) (*ScriptDetector, error) {
	table, ok := unicode.Scripts[script]
	if !ok {
		return nil, fmt.Errorf("unknown unicode script %q", script)
	}
	return &ScriptDetector{script: script, table: table}, nil
}

// Script returns the script name the detector looks for
func (d *ScriptDetector) Script() string {
	return d.script
}

// ContainsForeignScript reports whether any rune of text belongs to the script
func (d *ScriptDetector) ContainsForeignScript(text string) bool {
	for _, r := range text {
		if unicode.Is(d.table, r) {
			return true
		}
	}
	return false
}
