package ports

import (
	"context"
	"io"
	"time"

	"github.com/docuintel/docuintel/internal/core/domain"
)

// FileUploader is the inbound contract for document upload orchestration.
// The returned record is persisted but not yet categorized; categorization
// runs asynchronously and the caller must not wait for it.
type FileUploader interface {
	Upload(ctx context.Context, filename, mimeType string, size int64, body io.Reader, folderID *string) (*domain.FileRecord, error)
}

// Categorizer is the inbound contract for asynchronous categorization.
// explicitFolderID, when non-nil, wins the folder assignment but never the
// summary.
type Categorizer interface {
	Categorize(ctx context.Context, fileID string, explicitFolderID *string) error
}

// FileService is the inbound read/delete surface for file records.
type FileService interface {
	Get(ctx context.Context, id string) (*domain.FileRecord, error)
	ListUnassigned(ctx context.Context) ([]domain.FileRecord, error)
	ListByFolder(ctx context.Context, folderID string) ([]domain.FileRecord, error)
	Delete(ctx context.Context, id string) error
	ViewURL(ctx context.Context, id string, expiry time.Duration) (string, error)
	Recategorize(ctx context.Context, id string) error
}

// FolderService is the inbound surface for folder management. Delete is the
// cascading, all-or-nothing variant: member bytes, member records, then the
// folder itself.
type FolderService interface {
	Resolve(ctx context.Context, name string) (*domain.Folder, error)
	Get(ctx context.Context, id string) (*domain.Folder, error)
	List(ctx context.Context) ([]domain.Folder, error)
	Delete(ctx context.Context, id string) error
}
