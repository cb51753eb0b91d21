package ports

import (
	"context"
	"io"
	"time"

	"github.com/docuintel/docuintel/internal/core/domain"
)

// FileRepository persists and reads file metadata. AssignFolder writes the
// folder reference, classification label and summary in one statement so the
// three never diverge.
type FileRepository interface {
	Create(ctx context.Context, file *domain.FileRecord) error
	GetByID(ctx context.Context, id string) (*domain.FileRecord, error)
	ListUnassigned(ctx context.Context) ([]domain.FileRecord, error)
	ListByFolder(ctx context.Context, folderID string) ([]domain.FileRecord, error)
	AssignFolder(ctx context.Context, fileID, folderID, classification, summary string) error
	Delete(ctx context.Context, id string) error
}

// FolderRepository persists folders. Create reports a name collision as
// domain.ErrFolderExists so callers can re-read instead of duplicating.
// DeleteCascade removes all member file rows and the folder row in a single
// transaction.
type FolderRepository interface {
	Create(ctx context.Context, folder *domain.Folder) error
	GetByID(ctx context.Context, id string) (*domain.Folder, error)
	GetByName(ctx context.Context, name string) (*domain.Folder, error)
	List(ctx context.Context) ([]domain.Folder, error)
	DeleteCascade(ctx context.Context, folderID string) error
}

// ObjectStore stores raw document bytes and issues time-limited read URLs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	PresignRead(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// TaskQueue publishes/consumes categorization tasks.
type TaskQueue interface {
	PublishCategorization(ctx context.Context, task domain.CategorizationTask) error
	SubscribeCategorization(ctx context.Context, handler func(context.Context, domain.CategorizationTask) error) error
}

// TextExtractor converts raw document bytes into plain text.
// Unsupported or corrupt input fails with domain.ErrExtraction.
type TextExtractor interface {
	Extract(ctx context.Context, filename, mimeType string, data []byte) (string, error)
}

// DocumentAI obtains a summary and a category label for a text blob.
// Degraded per-call results come back as outcome values; only a transport
// level failure is returned as an error.
type DocumentAI interface {
	SummarizeAndClassify(ctx context.Context, text string) (domain.Outcome, error)
}
