package domain

import "time"

// CategorizationTask is the queue payload for one fire-and-forget
// categorization request. FolderID carries the user's explicit target, if
// any. EnqueuedAt feeds the worker's queue-lag metric.
type CategorizationTask struct {
	FileID     string    `json:"file_id"`
	FolderID   *string   `json:"folder_id,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}
