package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/docuintel/docuintel/internal/core/domain"
)

func TestFileDeleteRemovesObjectThenRow(t *testing.T) {
	files := &fileRepoFake{file: &domain.FileRecord{ID: "file-1", StorageKey: "key-1"}}
	store := &storeFake{}
	uc := NewFileUseCase(files, store, &queueFake{}, discardLogger())

	if err := uc.Delete(context.Background(), "file-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "key-1" {
		t.Fatalf("expected object delete for key-1, got %v", store.deleted)
	}
	if len(files.deletedIDs) != 1 || files.deletedIDs[0] != "file-1" {
		t.Fatalf("expected row delete for file-1, got %v", files.deletedIDs)
	}
}

func TestFileDeleteKeepsRowWhenObjectDeleteFails(t *testing.T) {
	files := &fileRepoFake{file: &domain.FileRecord{ID: "file-1", StorageKey: "key-1"}}
	store := &storeFake{deleteErr: errors.New("store down")}
	uc := NewFileUseCase(files, store, &queueFake{}, discardLogger())

	if err := uc.Delete(context.Background(), "file-1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(files.deletedIDs) != 0 {
		t.Fatalf("row must survive a failed object delete, got %v", files.deletedIDs)
	}
}

func TestFileViewURL(t *testing.T) {
	files := &fileRepoFake{file: &domain.FileRecord{ID: "file-1", StorageKey: "key-1"}}
	store := &storeFake{presignURL: "https://store.local/key-1?sig=abc"}
	uc := NewFileUseCase(files, store, &queueFake{}, discardLogger())

	url, err := uc.ViewURL(context.Background(), "file-1", 15*time.Minute)
	if err != nil {
		t.Fatalf("ViewURL() error = %v", err)
	}
	if url != "https://store.local/key-1?sig=abc" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestFileViewURLMissingFile(t *testing.T) {
	files := &fileRepoFake{getErr: domain.WrapError(domain.ErrFileNotFound, "get file by id", errors.New("id=x"))}
	uc := NewFileUseCase(files, &storeFake{}, &queueFake{}, discardLogger())

	if _, err := uc.ViewURL(context.Background(), "x", time.Minute); !domain.IsKind(err, domain.ErrFileNotFound) {
		t.Fatalf("expected file-not-found, got %v", err)
	}
}

func TestRecategorizeKeepsCurrentFolder(t *testing.T) {
	folderID := "folder-3"
	files := &fileRepoFake{file: &domain.FileRecord{ID: "file-1", FolderID: &folderID}}
	queue := &queueFake{}
	uc := NewFileUseCase(files, &storeFake{}, queue, discardLogger())

	if err := uc.Recategorize(context.Background(), "file-1"); err != nil {
		t.Fatalf("Recategorize() error = %v", err)
	}
	if len(queue.published) != 1 {
		t.Fatalf("expected 1 published task, got %d", len(queue.published))
	}
	task := queue.published[0]
	if task.FolderID == nil || *task.FolderID != "folder-3" {
		t.Fatalf("current folder must ride the task, got %+v", task)
	}
	if task.EnqueuedAt.IsZero() {
		t.Fatalf("expected enqueue timestamp")
	}
}

func TestRecategorizeUnassignedFile(t *testing.T) {
	files := &fileRepoFake{file: &domain.FileRecord{ID: "file-1"}}
	queue := &queueFake{}
	uc := NewFileUseCase(files, &storeFake{}, queue, discardLogger())

	if err := uc.Recategorize(context.Background(), "file-1"); err != nil {
		t.Fatalf("Recategorize() error = %v", err)
	}
	if queue.published[0].FolderID != nil {
		t.Fatalf("unassigned file must re-run without an explicit target")
	}
}
