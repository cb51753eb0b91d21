package domain

import "time"

// FileRecord is the persisted metadata row for one uploaded document.
// FolderID is a weak reference: the folder does not enumerate its members.
type FileRecord struct {
	ID             string    `json:"id"`
	Filename       string    `json:"filename"`
	MimeType       string    `json:"mime_type"`
	SizeBytes      int64     `json:"size_bytes"`
	StorageKey     string    `json:"storage_key"`
	Summary        string    `json:"summary,omitempty"`
	Classification string    `json:"classification,omitempty"`
	FolderID       *string   `json:"folder_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Folder is a named category bucket. Names are unique; creation happens
// lazily through get-or-create or explicitly through the folder API.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Well-known folder names produced by the categorization rules.
const (
	FolderPhotos       = "Photos"
	FolderVideos       = "Videos"
	FolderUnclassified = "Unclassified"
)

// Fixed summaries for the non-AI categorization outcomes.
const (
	SummaryImage            = "Categorized as Image"
	SummaryVideo            = "Categorized as Video"
	SummaryExtractionFailed = "Processing Error: Text extraction failed."
	SummaryEmptyDocument    = "Document is empty or contains no readable text."
	SummaryAIFailed         = "Processing Error: AI service call failed."
	SummaryNotAvailable     = "Summary not available."
)
