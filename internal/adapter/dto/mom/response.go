package mom

import "time"

// AttendeeResponse is one attendee
type AttendeeResponse struct {
	Name string `json:"name"`
}

// ImageResponse is one embedded image
type ImageResponse struct {
	Data   string `json:"data"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MOMResponse is a saved meeting record
type MOMResponse struct {
	ID                 string             `json:"id"`
	TaskID             string             `json:"taskId"`
	CompanyName        string             `json:"companyName"`
	VisitDate          string             `json:"visitDate"`
	FormattedVisitDate string             `json:"formattedVisitDate"`
	Location           string             `json:"location"`
	Attendees          []AttendeeResponse `json:"attendees"`
	DiscussionPoints   []string           `json:"discussionPoints"`
	RawContent         string             `json:"rawContent"`
	ProcessedContent   string             `json:"processedContent"`
	Images             []ImageResponse    `json:"images"`
	GeneratedDocPath   *string            `json:"generatedDocPath,omitempty"`
	GeneratedPdfPath   *string            `json:"generatedPdfPath,omitempty"`
	CreatedBy          string             `json:"createdBy"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// PreviewResponse lists the discussion points found in a text
type PreviewResponse struct {
	DiscussionPoints []string `json:"discussionPoints"`
	Count            int      `json:"count"`
}

// TaskWithMOMsResponse is a task that has meeting records
type TaskWithMOMsResponse struct {
	TaskID    string    `json:"taskId"`
	Title     string    `json:"title,omitempty"`
	MOMCount  int64     `json:"momCount"`
	LastMOMAt time.Time `json:"lastMomAt"`
}

// RegenerateResponse describes regenerated artifacts
type RegenerateResponse struct {
	MomID        string `json:"momId"`
	DocPath      string `json:"docPath"`
	PdfPath      string `json:"pdfPath,omitempty"`
	DownloadName string `json:"downloadName"`
	ArchiveURL   string `json:"archiveUrl,omitempty"`
}

// DiagnosticsResponse is returned by GET /mom/test
type DiagnosticsResponse struct {
	Message        string   `json:"message"`
	TemplateExists bool     `json:"templateExists"`
	TemplatePath   string   `json:"templatePath"`
	AIAvailable    bool     `json:"aiAvailable"`
	Routes         []string `json:"routes"`
}
