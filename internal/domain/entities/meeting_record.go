package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// DefaultImageWidth and DefaultImageHeight are the display size used when an
	// image entry carries no dimensions.
	DefaultImageWidth  = 400
	DefaultImageHeight = 300
	// MaxImageDimension caps a requested width or height, in pixels
	MaxImageDimension = 4000

	visitDateLayout = "January 2, 2006"
)

// Attendee is one entry of a meeting's attendee list
type Attendee struct {
	Name string `json:"name"`
}

// Image is an embedded picture, base64 encoded, rendered in insertion order
type Image struct {
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MeetingRecord is one processed minutes-of-meeting submission
type MeetingRecord struct {
	ID               uuid.UUID                     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TaskID           uuid.UUID                     `gorm:"type:uuid;not null;index:idx_meeting_records_task_created,priority:1" json:"taskId"`
	CompanyName      string                        `gorm:"type:varchar(255);not null;index" json:"companyName"`
	VisitDate        time.Time                     `gorm:"type:date;not null;index" json:"visitDate"`
	Location         string                        `gorm:"type:varchar(255);not null" json:"location"`
	Attendees        datatypes.JSONSlice[Attendee] `gorm:"type:jsonb;not null;default:'[]'" json:"attendees"`
	DiscussionPoints datatypes.JSONSlice[string]   `gorm:"type:jsonb;not null;default:'[]'" json:"discussionPoints"`
	RawContent       string                        `gorm:"type:text;not null" json:"rawContent"`
	ProcessedContent string                        `gorm:"type:text;not null" json:"processedContent"`
	Images           datatypes.JSONSlice[Image]    `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	GeneratedDocPath *string                       `gorm:"type:text" json:"generatedDocPath,omitempty"`
	GeneratedPdfPath *string                       `gorm:"type:text" json:"generatedPdfPath,omitempty"`
	CreatedBy        uuid.UUID                     `gorm:"type:uuid;not null;index" json:"createdBy"`
	CreatedAt        time.Time                     `gorm:"autoCreateTime;index:idx_meeting_records_task_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt        time.Time                     `gorm:"autoUpdateTime" json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (MeetingRecord) TableName() string {
	return "meeting_records"
}

// NewMeetingRecord creates a record with a fresh id. Visit date is truncated
// to a calendar date.
func NewMeetingRecord(taskID, createdBy uuid.UUID, companyName string, visitDate time.Time, location string) *MeetingRecord {
	now := time.Now().UTC()
	return &MeetingRecord{
		ID:               uuid.New(),
		TaskID:           taskID,
		CompanyName:      companyName,
		VisitDate:        DateOnly(visitDate),
		Location:         location,
		Attendees:        datatypes.JSONSlice[Attendee]{},
		DiscussionPoints: datatypes.JSONSlice[string]{},
		Images:           datatypes.JSONSlice[Image]{},
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// MissingFields returns the names of required fields that are absent. A record
// with missing fields must not be persisted.
func (m *MeetingRecord) MissingFields() []string {
	var missing []string
	if m.TaskID == uuid.Nil {
		missing = append(missing, "taskId")
	}
	if strings.TrimSpace(m.CompanyName) == "" {
		missing = append(missing, "companyName")
	}
	if m.VisitDate.IsZero() {
		missing = append(missing, "visitDate")
	}
	if strings.TrimSpace(m.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(m.RawContent) == "" {
		missing = append(missing, "rawContent")
	}
	if strings.TrimSpace(m.ProcessedContent) == "" {
		missing = append(missing, "processedContent")
	}
	if m.CreatedBy == uuid.Nil {
		missing = append(missing, "createdBy")
	}
	return missing
}

// FormattedVisitDate renders the visit date the way documents show it
func (m *MeetingRecord) FormattedVisitDate() string {
	if m.VisitDate.IsZero() {
		return ""
	}
	return m.VisitDate.Format(visitDateLayout)
}

// ArtifactPaths returns the generated artifact paths currently recorded
func (m *MeetingRecord) ArtifactPaths() []string {
	var paths []string
	if m.GeneratedDocPath != nil && *m.GeneratedDocPath != "" {
		paths = append(paths, *m.GeneratedDocPath)
	}
	if m.GeneratedPdfPath != nil && *m.GeneratedPdfPath != "" {
		paths = append(paths, *m.GeneratedPdfPath)
	}
	return paths
}

// SetArtifacts records the paths of a successful generation. An empty pdfPath
// clears any previously recorded PDF, since stale artifacts are removed before
// regeneration.
func (m *MeetingRecord) SetArtifacts(docPath, pdfPath string) {
	m.GeneratedDocPath = &docPath
	if pdfPath == "" {
		m.GeneratedPdfPath = nil
		return
	}
	m.GeneratedPdfPath = &pdfPath
}

// HasArtifacts reports whether a document was generated before
func (m *MeetingRecord) HasArtifacts() bool {
	return m.GeneratedDocPath != nil && *m.GeneratedDocPath != ""
}

// DateOnly drops the clock and zone from t, keeping its calendar date
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
