package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuintel/docuintel/internal/core/domain"
	"github.com/docuintel/docuintel/internal/core/ports"
)

// UploadFileUseCase persists the uploaded bytes and metadata synchronously,
// then hands categorization off to the queue. The HTTP caller gets the fresh
// record back and never waits for categorization.
type UploadFileUseCase struct {
	files   ports.FileRepository
	folders ports.FolderRepository
	storage ports.ObjectStore
	queue   ports.TaskQueue
}

func NewUploadFileUseCase(
	files ports.FileRepository,
	folders ports.FolderRepository,
	storage ports.ObjectStore,
	queue ports.TaskQueue,
) *UploadFileUseCase {
	return &UploadFileUseCase{
		files:   files,
		folders: folders,
		storage: storage,
		queue:   queue,
	}
}

func (uc *UploadFileUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	size int64,
	body io.Reader,
	folderID *string,
) (*domain.FileRecord, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("filename is required"))
	}

	// Reject a bad explicit target now, while the caller is still listening.
	if folderID != nil {
		if _, err := uc.folders.GetByID(ctx, *folderID); err != nil {
			return nil, fmt.Errorf("validate target folder: %w", err)
		}
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Put(ctx, storageKey, body, size, mimeType); err != nil {
		return nil, fmt.Errorf("save to object store: %w", err)
	}

	file := &domain.FileRecord{
		ID:         id,
		Filename:   filename,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		FolderID:   nil,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.files.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("create file metadata: %w", err)
	}

	task := domain.CategorizationTask{
		FileID:     file.ID,
		FolderID:   folderID,
		EnqueuedAt: now,
	}
	if err := uc.queue.PublishCategorization(ctx, task); err != nil {
		return nil, fmt.Errorf("publish categorization task: %w", err)
	}

	return file, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
