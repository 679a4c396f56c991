package mom

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^\p{L}\p{N}_\-.]`)
)

// BaseFileName is the file stem for a company's minutes: MOM_<company>
func BaseFileName(companyName string) string {
	name := whitespaceRun.ReplaceAllString(strings.TrimSpace(companyName), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, ".")
	if name == "" {
		name = "document"
	}
	return "MOM_" + name
}

// DownloadFileName is the attachment name offered to the client
func DownloadFileName(companyName string, at time.Time) string {
	return fmt.Sprintf("%s_%d.docx", BaseFileName(companyName), at.UnixMilli())
}
