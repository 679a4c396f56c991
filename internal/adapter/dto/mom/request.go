package mom

import "encoding/json"

// ProcessTextRequest is the body of POST /mom/process-text
type ProcessTextRequest struct {
	Text string `json:"text" validate:"required"`
	// UseAI defaults to true when omitted
	UseAI *bool `json:"useAI" swaggertype:"boolean" default:"true"`
}

// WantsAI reports the requested correction mode
func (r ProcessTextRequest) WantsAI() bool {
	return r.UseAI == nil || *r.UseAI
}

// PreviewRequest is the body of POST /mom/preview
type PreviewRequest struct {
	Text string `json:"text" validate:"required"`
}

// SaveMOMRequest is the body of POST /mom/save. Required-field checks live in
// the use case so every missing field is reported at once.
type SaveMOMRequest struct {
	TaskID           string            `json:"taskId"`
	CompanyName      string            `json:"companyName" validate:"max=255"`
	VisitDate        string            `json:"visitDate"`
	Location         string            `json:"location" validate:"max=255"`
	Attendees        []json.RawMessage `json:"attendees" swaggertype:"array,object"`
	RawContent       string            `json:"rawContent"`
	ProcessedContent string            `json:"processedContent"`
	Images           []json.RawMessage `json:"images" swaggertype:"array,object"`
	// CreatedBy defaults to the authenticated user
	CreatedBy string `json:"createdBy"`
}

// GenerateRequest is the body of POST /mom/generate-docx-from-template
type GenerateRequest struct {
	MomID string `json:"momId" validate:"required,uuid"`
}
