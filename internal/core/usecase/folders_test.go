package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/docuintel/docuintel/internal/core/domain"
)

func TestResolveReturnsExistingFolder(t *testing.T) {
	existing := &domain.Folder{ID: "folder-1", Name: "Invoices"}
	folders := &folderRepoFake{byName: map[string]*domain.Folder{"Invoices": existing}}
	uc := NewFolderUseCase(folders, &fileRepoFake{}, &storeFake{}, discardLogger())

	got, err := uc.Resolve(context.Background(), "Invoices")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.ID != "folder-1" {
		t.Fatalf("expected existing folder, got %+v", got)
	}
	if len(folders.created) != 0 {
		t.Fatalf("no creation expected, got %d", len(folders.created))
	}
}

func TestResolveCreatesMissingFolder(t *testing.T) {
	folders := &folderRepoFake{byName: map[string]*domain.Folder{}}
	uc := NewFolderUseCase(folders, &fileRepoFake{}, &storeFake{}, discardLogger())

	got, err := uc.Resolve(context.Background(), "  Receipts ")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Name != "Receipts" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(folders.created) != 1 {
		t.Fatalf("expected 1 creation, got %d", len(folders.created))
	}
}

func TestResolveLosesInsertRaceAndReReads(t *testing.T) {
	winner := &domain.Folder{ID: "folder-9", Name: "Receipts"}
	folders := &folderRepoFake{
		byName:    map[string]*domain.Folder{},
		createErr: domain.WrapError(domain.ErrFolderExists, "insert folder", errors.New("name=Receipts")),
	}
	uc := NewFolderUseCase(folders, &fileRepoFake{}, &storeFake{}, discardLogger())

	// The winner's row appears between our failed lookup and the re-read.
	folders.byName["Receipts"] = winner

	got, err := uc.Resolve(context.Background(), "Receipts")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.ID != "folder-9" {
		t.Fatalf("loser must converge on the winner's row, got %+v", got)
	}
}

func TestResolveRejectsBlankName(t *testing.T) {
	uc := NewFolderUseCase(&folderRepoFake{}, &fileRepoFake{}, &storeFake{}, discardLogger())

	if _, err := uc.Resolve(context.Background(), "   "); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid-input, got %v", err)
	}
}

func TestDeleteCascadesAfterObjectDeletes(t *testing.T) {
	folders := &folderRepoFake{byID: map[string]*domain.Folder{
		"folder-1": {ID: "folder-1", Name: "Invoices"},
	}}
	files := &fileRepoFake{files: []domain.FileRecord{
		{ID: "file-1", StorageKey: "key-1"},
		{ID: "file-2", StorageKey: "key-2"},
	}}
	store := &storeFake{}
	uc := NewFolderUseCase(folders, files, store, discardLogger())

	if err := uc.Delete(context.Background(), "folder-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.deleted) != 2 {
		t.Fatalf("expected 2 object deletes, got %v", store.deleted)
	}
	if len(folders.cascaded) != 1 || folders.cascaded[0] != "folder-1" {
		t.Fatalf("expected metadata cascade for folder-1, got %v", folders.cascaded)
	}
}

func TestDeleteAbortsWhenObjectDeleteFails(t *testing.T) {
	folders := &folderRepoFake{byID: map[string]*domain.Folder{
		"folder-1": {ID: "folder-1", Name: "Invoices"},
	}}
	files := &fileRepoFake{files: []domain.FileRecord{{ID: "file-1", StorageKey: "key-1"}}}
	store := &storeFake{deleteErr: errors.New("store down")}
	uc := NewFolderUseCase(folders, files, store, discardLogger())

	if err := uc.Delete(context.Background(), "folder-1"); err == nil {
		t.Fatalf("expected error")
	}
	if len(folders.cascaded) != 0 {
		t.Fatalf("metadata must survive an aborted delete, got %v", folders.cascaded)
	}
}

func TestDeleteUnknownFolder(t *testing.T) {
	uc := NewFolderUseCase(&folderRepoFake{byID: map[string]*domain.Folder{}}, &fileRepoFake{}, &storeFake{}, discardLogger())

	if err := uc.Delete(context.Background(), "missing"); !domain.IsKind(err, domain.ErrFolderNotFound) {
		t.Fatalf("expected folder-not-found, got %v", err)
	}
}
