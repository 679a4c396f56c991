package document

import (
	"github.com/johnquangdev/mom-service/internal/domain/entities"
	"github.com/johnquangdev/mom-service/internal/usecase/textproc"
)

// DefaultDocumentTitle heads a document when none is given
const DefaultDocumentTitle = "Minutes of Meeting"

// TemplateContext is the canonical data bound into a MOM template
type TemplateContext struct {
	DocumentTitle    string
	Title            string
	Date             string
	Location         string
	CompanyName      string
	TaskTitle        string
	Attendees        []entities.Attendee
	DiscussionPoints []string
	RawContent       string
	ProcessedContent string
	Images           []entities.Image
}

// NewTemplateContext builds the context of a saved record. Discussion points
// are derived again from the processed text (raw text when empty).
func NewTemplateContext(record *entities.MeetingRecord, taskTitle string) TemplateContext {
	source := record.ProcessedContent
	if source == "" {
		source = record.RawContent
	}
	return TemplateContext{
		CompanyName:      record.CompanyName,
		Date:             record.FormattedVisitDate(),
		Location:         record.Location,
		TaskTitle:        taskTitle,
		Attendees:        append([]entities.Attendee(nil), record.Attendees...),
		DiscussionPoints: textproc.ExtractOrLines(source),
		RawContent:       record.RawContent,
		ProcessedContent: record.ProcessedContent,
		Images:           append([]entities.Image(nil), record.Images...),
	}
}

// Values flattens the context into template fields. Templates written for
// either naming scheme render the same data:
//
//	meetingTitle    <- projectName, companyName, task title
//	meetingDate     <- dateOfVisit, visitDate
//	meetingLocation <- siteLocation, location
func (c TemplateContext) Values() map[string]interface{} {
	title := firstNonEmpty(c.Title, c.CompanyName, c.TaskTitle)
	documentTitle := firstNonEmpty(c.DocumentTitle, DefaultDocumentTitle)

	attendees := make([]interface{}, 0, len(c.Attendees))
	for _, a := range c.Attendees {
		attendees = append(attendees, map[string]interface{}{"name": a.Name})
	}

	points := make([]interface{}, 0, len(c.DiscussionPoints))
	for i, p := range c.DiscussionPoints {
		points = append(points, map[string]interface{}{"point": p, "number": i + 1})
	}

	images := make([]interface{}, 0, len(c.Images))
	for _, img := range c.Images {
		images = append(images, map[string]interface{}{
			"data":   img.Data,
			"width":  img.Width,
			"height": img.Height,
		})
	}

	values := map[string]interface{}{
		"documentTitle":    documentTitle,
		"meetingTitle":     title,
		"meetingDate":      c.Date,
		"meetingLocation":  c.Location,
		"attendees":        attendees,
		"discussionPoints": points,
		"rawContent":       c.RawContent,
		"processedContent": c.ProcessedContent,
		"images":           images,
		"hasImages":        len(images) > 0,
		"taskTitle":        c.TaskTitle,
	}
	for alias, canonical := range legacyAliases {
		values[alias] = values[canonical]
	}
	// companyName is its own field in the legacy scheme
	values["companyName"] = firstNonEmpty(c.CompanyName, title)
	return values
}

// legacyAliases maps legacy template field names to canonical ones
var legacyAliases = map[string]string{
	"projectName":  "meetingTitle",
	"dateOfVisit":  "meetingDate",
	"visitDate":    "meetingDate",
	"siteLocation": "meetingLocation",
	"location":     "meetingLocation",
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
