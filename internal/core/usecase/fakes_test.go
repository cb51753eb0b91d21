package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/docuintel/docuintel/internal/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type assignCall struct {
	fileID         string
	folderID       string
	classification string
	summary        string
}

type fileRepoFake struct {
	file       *domain.FileRecord
	files      []domain.FileRecord
	getErr     error
	createErr  error
	assignErr  error
	listErr    error
	deleteErr  error
	created    []*domain.FileRecord
	assigns    []assignCall
	deletedIDs []string
}

func (f *fileRepoFake) Create(_ context.Context, file *domain.FileRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, file)
	return nil
}

func (f *fileRepoFake) GetByID(_ context.Context, id string) (*domain.FileRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyFile := *f.file
	return &copyFile, nil
}

func (f *fileRepoFake) ListUnassigned(context.Context) ([]domain.FileRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.files, nil
}

func (f *fileRepoFake) ListByFolder(context.Context, string) ([]domain.FileRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.files, nil
}

func (f *fileRepoFake) AssignFolder(_ context.Context, fileID, folderID, classification, summary string) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigns = append(f.assigns, assignCall{
		fileID:         fileID,
		folderID:       folderID,
		classification: classification,
		summary:        summary,
	})
	return nil
}

func (f *fileRepoFake) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type folderRepoFake struct {
	byName     map[string]*domain.Folder
	byID       map[string]*domain.Folder
	createErr  error
	getErr     error
	cascadeErr error
	created    []*domain.Folder
	cascaded   []string
}

func (f *folderRepoFake) Create(_ context.Context, folder *domain.Folder) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, folder)
	return nil
}

func (f *folderRepoFake) GetByID(_ context.Context, id string) (*domain.Folder, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	folder, ok := f.byID[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrFolderNotFound, "get folder", errors.New("id="+id))
	}
	return folder, nil
}

func (f *folderRepoFake) GetByName(_ context.Context, name string) (*domain.Folder, error) {
	folder, ok := f.byName[name]
	if !ok {
		return nil, domain.WrapError(domain.ErrFolderNotFound, "get folder by name", errors.New("name="+name))
	}
	return folder, nil
}

func (f *folderRepoFake) List(context.Context) ([]domain.Folder, error) {
	folders := make([]domain.Folder, 0, len(f.byID))
	for _, folder := range f.byID {
		folders = append(folders, *folder)
	}
	return folders, nil
}

func (f *folderRepoFake) DeleteCascade(_ context.Context, folderID string) error {
	if f.cascadeErr != nil {
		return f.cascadeErr
	}
	f.cascaded = append(f.cascaded, folderID)
	return nil
}

// folderServiceFake resolves folder names to deterministic ids so assignment
// assertions stay readable.
type folderServiceFake struct {
	resolveErr error
	getErr     error
	known      map[string]*domain.Folder
	resolved   []string
}

func (f *folderServiceFake) Resolve(_ context.Context, name string) (*domain.Folder, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	f.resolved = append(f.resolved, name)
	return &domain.Folder{ID: "folder-" + name, Name: name}, nil
}

func (f *folderServiceFake) Get(_ context.Context, id string) (*domain.Folder, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	folder, ok := f.known[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrFolderNotFound, "get folder", errors.New("id="+id))
	}
	return folder, nil
}

func (f *folderServiceFake) List(context.Context) ([]domain.Folder, error) { return nil, nil }

func (f *folderServiceFake) Delete(context.Context, string) error { return nil }

type storeFake struct {
	data       []byte
	putErr     error
	getErr     error
	deleteErr  error
	presignErr error
	presignURL string
	putKeys    []string
	deleted    []string
}

func (f *storeFake) Put(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	return nil
}

func (f *storeFake) Get(_ context.Context, _ string) (io.ReadCloser, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func (f *storeFake) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *storeFake) PresignRead(_ context.Context, _ string, _ time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return f.presignURL, nil
}

type extractorFake struct {
	text  string
	err   error
	calls int
}

func (f *extractorFake) Extract(_ context.Context, _, _ string, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type aiFake struct {
	outcome domain.Outcome
	err     error
	calls   int
}

func (f *aiFake) SummarizeAndClassify(_ context.Context, _ string) (domain.Outcome, error) {
	f.calls++
	if f.err != nil {
		return domain.Outcome{}, f.err
	}
	return f.outcome, nil
}

type queueFake struct {
	publishErr error
	published  []domain.CategorizationTask
}

func (f *queueFake) PublishCategorization(_ context.Context, task domain.CategorizationTask) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, task)
	return nil
}

func (f *queueFake) SubscribeCategorization(context.Context, func(context.Context, domain.CategorizationTask) error) error {
	return nil
}
