package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuintel/docuintel/internal/core/domain"
	"github.com/docuintel/docuintel/internal/core/ports"
)

// FolderUseCase owns folder lifecycle: race-safe get-or-create resolution
// and the cascading all-or-nothing delete.
type FolderUseCase struct {
	folders ports.FolderRepository
	files   ports.FileRepository
	storage ports.ObjectStore
	logger  *slog.Logger
}

func NewFolderUseCase(
	folders ports.FolderRepository,
	files ports.FileRepository,
	storage ports.ObjectStore,
	logger *slog.Logger,
) *FolderUseCase {
	return &FolderUseCase{
		folders: folders,
		files:   files,
		storage: storage,
		logger:  logger,
	}
}

// Resolve looks a folder up by exact name, creating it when absent. Two
// concurrent resolutions of a brand-new name converge on one row: the loser
// of the insert race gets ErrFolderExists from the unique constraint and
// re-reads the winner's row.
func (uc *FolderUseCase) Resolve(ctx context.Context, name string) (*domain.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "resolve folder", fmt.Errorf("folder name is required"))
	}

	folder, err := uc.folders.GetByName(ctx, name)
	if err == nil {
		return folder, nil
	}
	if !domain.IsKind(err, domain.ErrFolderNotFound) {
		return nil, fmt.Errorf("lookup folder by name: %w", err)
	}

	created := &domain.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err = uc.folders.Create(ctx, created)
	if err == nil {
		uc.logger.Info("folder created", "folder_id", created.ID, "name", created.Name)
		return created, nil
	}
	if domain.IsKind(err, domain.ErrFolderExists) {
		return uc.folders.GetByName(ctx, name)
	}
	return nil, fmt.Errorf("create folder: %w", err)
}

func (uc *FolderUseCase) Get(ctx context.Context, id string) (*domain.Folder, error) {
	return uc.folders.GetByID(ctx, id)
}

func (uc *FolderUseCase) List(ctx context.Context) ([]domain.Folder, error) {
	return uc.folders.List(ctx)
}

// Delete removes a folder and everything in it. Object-store deletes run
// first; any failure there aborts before metadata is touched, so a folder
// never ends up referencing files whose rows are gone or vice versa. The
// metadata deletes ride a single transaction in the repository.
func (uc *FolderUseCase) Delete(ctx context.Context, folderID string) error {
	if _, err := uc.folders.GetByID(ctx, folderID); err != nil {
		return fmt.Errorf("load folder: %w", err)
	}

	members, err := uc.files.ListByFolder(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list folder members: %w", err)
	}

	for _, file := range members {
		if err := uc.storage.Delete(ctx, file.StorageKey); err != nil {
			return fmt.Errorf("delete stored bytes for %s: %w", file.ID, err)
		}
	}

	if err := uc.folders.DeleteCascade(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder metadata: %w", err)
	}

	uc.logger.Info("folder deleted", "folder_id", folderID, "member_files", len(members))
	return nil
}
