package entities

// ProcessingResult is the outcome of one text-processing run. It is returned
// to the caller and never persisted.
type ProcessingResult struct {
	ProcessedText  string `json:"processedText"`
	WasTranslated  bool   `json:"wasTranslated"`
	WasAICorrected bool   `json:"wasAICorrected"`
	Changes        int    `json:"changes"`
	Error          string `json:"error,omitempty"`
}
