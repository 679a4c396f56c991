package textproc

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace   = regexp.MustCompile(`[ \t\f\v\r]+`)
	spaceBeforePunct  = regexp.MustCompile(` ([.,!?])`)
	punctBeforeWord   = regexp.MustCompile(`([.,!?])(\w)`)
	sentenceLowercase = regexp.MustCompile(`(^|[.!?] )\p{Ll}`)
)

// ApplyBasicRules is the local grammar cleanup used when the model is not
// available or fails. It works line by line so list structure survives:
// blank lines are dropped, whitespace inside a line collapses to one space,
// there is no space before .,!? and exactly one after, and the first letter
// of a line or of a sentence is upper-cased.
//
// ApplyBasicRules(ApplyBasicRules(s)) == ApplyBasicRules(s) for every s.
func ApplyBasicRules(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = horizontalSpace.ReplaceAllString(line, " ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = spaceBeforePunct.ReplaceAllString(line, "$1")
		line = punctBeforeWord.ReplaceAllString(line, "$1 $2")
		line = sentenceLowercase.ReplaceAllStringFunc(line, strings.ToUpper)
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
