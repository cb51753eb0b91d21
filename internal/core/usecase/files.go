package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuintel/docuintel/internal/core/domain"
	"github.com/docuintel/docuintel/internal/core/ports"
)

// FileUseCase is the read/delete/re-trigger surface for file records.
type FileUseCase struct {
	files   ports.FileRepository
	storage ports.ObjectStore
	queue   ports.TaskQueue
	logger  *slog.Logger
}

func NewFileUseCase(
	files ports.FileRepository,
	storage ports.ObjectStore,
	queue ports.TaskQueue,
	logger *slog.Logger,
) *FileUseCase {
	return &FileUseCase{
		files:   files,
		storage: storage,
		queue:   queue,
		logger:  logger,
	}
}

func (uc *FileUseCase) Get(ctx context.Context, id string) (*domain.FileRecord, error) {
	return uc.files.GetByID(ctx, id)
}

func (uc *FileUseCase) ListUnassigned(ctx context.Context) ([]domain.FileRecord, error) {
	return uc.files.ListUnassigned(ctx)
}

func (uc *FileUseCase) ListByFolder(ctx context.Context, folderID string) ([]domain.FileRecord, error) {
	return uc.files.ListByFolder(ctx, folderID)
}

// Delete removes the stored bytes before the metadata row; a dangling row is
// recoverable, an orphaned object is not.
func (uc *FileUseCase) Delete(ctx context.Context, id string) error {
	file, err := uc.files.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}
	if err := uc.storage.Delete(ctx, file.StorageKey); err != nil {
		return fmt.Errorf("delete stored bytes: %w", err)
	}
	if err := uc.files.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete file metadata: %w", err)
	}
	uc.logger.Info("file deleted", "file_id", id, "filename", file.Filename)
	return nil
}

func (uc *FileUseCase) ViewURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	file, err := uc.files.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load file: %w", err)
	}
	url, err := uc.storage.PresignRead(ctx, file.StorageKey, expiry)
	if err != nil {
		return "", fmt.Errorf("presign read url: %w", err)
	}
	return url, nil
}

// Recategorize re-runs categorization for an already-stored file. The file's
// current folder, if any, is passed as the explicit target so the fresh AI
// summary lands without moving the file.
func (uc *FileUseCase) Recategorize(ctx context.Context, id string) error {
	file, err := uc.files.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}
	task := domain.CategorizationTask{
		FileID:     file.ID,
		FolderID:   file.FolderID,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := uc.queue.PublishCategorization(ctx, task); err != nil {
		return fmt.Errorf("publish categorization task: %w", err)
	}
	uc.logger.Info("categorization re-triggered", "file_id", file.ID, "filename", file.Filename)
	return nil
}
