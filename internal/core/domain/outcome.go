package domain

// Outcome pairs a classification label with a summary. It is transient:
// every outcome is translated into a folder assignment before being
// persisted, it is never stored on its own.
type Outcome struct {
	Classification string  `json:"classification"`
	Summary        string  `json:"summary"`
	Confidence     float64 `json:"confidence,omitempty"`
}
