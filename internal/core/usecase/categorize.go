package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/docuintel/docuintel/internal/core/domain"
	"github.com/docuintel/docuintel/internal/core/ports"
)

// CategorizeUseCase moves a file from "uploaded" to "categorized":
// fast-path assignment for image/video types, text extraction plus AI
// summarization/classification for everything else. Every terminal write
// goes through assign so the folder reference, classification label and
// summary land together.
type CategorizeUseCase struct {
	files     ports.FileRepository
	folders   ports.FolderService
	storage   ports.ObjectStore
	extractor ports.TextExtractor
	ai        ports.DocumentAI
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[string]*sync.Mutex
}

func NewCategorizeUseCase(
	files ports.FileRepository,
	folders ports.FolderService,
	storage ports.ObjectStore,
	extractor ports.TextExtractor,
	ai ports.DocumentAI,
	logger *slog.Logger,
) *CategorizeUseCase {
	return &CategorizeUseCase{
		files:     files,
		folders:   folders,
		storage:   storage,
		extractor: extractor,
		ai:        ai,
		logger:    logger,
		inFlight:  make(map[string]*sync.Mutex),
	}
}

// Categorize runs asynchronously relative to whoever triggered it; errors are
// for the worker's log and metrics, no upload caller ever sees them.
// Categorizations of the same file id are serialized to avoid lost updates.
func (uc *CategorizeUseCase) Categorize(ctx context.Context, fileID string, explicitFolderID *string) error {
	unlock := uc.lockFile(fileID)
	defer unlock()

	file, err := uc.files.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("load file metadata: %w", err)
	}

	if name, summary, ok := contentTypeShortcut(file.MimeType); ok {
		return uc.assign(ctx, file, name, summary)
	}

	text, extractErr := uc.extractText(ctx, file)
	if extractErr != nil {
		// A store failure means the attempt is abandoned in the "not yet
		// categorized" state; only extractor failures route to Unclassified.
		if !domain.IsKind(extractErr, domain.ErrExtraction) {
			return extractErr
		}
		uc.logger.Error("text extraction failed", "file_id", file.ID, "filename", file.Filename, "error", extractErr)
		return uc.assign(ctx, file, domain.FolderUnclassified, domain.SummaryExtractionFailed)
	}
	if strings.TrimSpace(text) == "" {
		uc.logger.Warn("extracted text is empty", "file_id", file.ID, "filename", file.Filename)
		return uc.assign(ctx, file, domain.FolderUnclassified, domain.SummaryEmptyDocument)
	}

	outcome, err := uc.ai.SummarizeAndClassify(ctx, text)
	if err != nil {
		uc.logger.Error("ai service call failed", "file_id", file.ID, "filename", file.Filename, "error", err)
		return uc.assign(ctx, file, domain.FolderUnclassified, domain.SummaryAIFailed)
	}

	// An explicit target folder wins the assignment but never the summary.
	if explicitFolderID != nil {
		target, err := uc.folders.Get(ctx, *explicitFolderID)
		if err != nil {
			return fmt.Errorf("resolve explicit folder %s: %w", *explicitFolderID, err)
		}
		return uc.assign(ctx, file, target.Name, outcome.Summary)
	}
	return uc.assign(ctx, file, outcome.Classification, outcome.Summary)
}

// assign resolves the target folder by name (get-or-create) and commits the
// outcome in a single repository update.
func (uc *CategorizeUseCase) assign(ctx context.Context, file *domain.FileRecord, folderName, summary string) error {
	folder, err := uc.folders.Resolve(ctx, folderName)
	if err != nil {
		return fmt.Errorf("resolve folder %q: %w", folderName, err)
	}
	if err := uc.files.AssignFolder(ctx, file.ID, folder.ID, folder.Name, summary); err != nil {
		return fmt.Errorf("assign file %s to folder %q: %w", file.ID, folder.Name, err)
	}
	uc.logger.Info("file categorized", "file_id", file.ID, "filename", file.Filename, "folder", folder.Name)
	return nil
}

func (uc *CategorizeUseCase) extractText(ctx context.Context, file *domain.FileRecord) (string, error) {
	reader, err := uc.storage.Get(ctx, file.StorageKey)
	if err != nil {
		return "", fmt.Errorf("download stored bytes: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read stored bytes: %w", err)
	}
	return uc.extractor.Extract(ctx, file.Filename, file.MimeType, raw)
}

func (uc *CategorizeUseCase) lockFile(fileID string) func() {
	uc.mu.Lock()
	lock, ok := uc.inFlight[fileID]
	if !ok {
		lock = &sync.Mutex{}
		uc.inFlight[fileID] = lock
	}
	uc.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func contentTypeShortcut(mimeType string) (folder, summary string, ok bool) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return domain.FolderPhotos, domain.SummaryImage, true
	case strings.HasPrefix(mimeType, "video/"):
		return domain.FolderVideos, domain.SummaryVideo, true
	default:
		return "", "", false
	}
}
