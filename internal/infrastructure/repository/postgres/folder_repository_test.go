package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docuintel/docuintel/internal/core/domain"
)

func newFolderRepoWithMock(t *testing.T) (*FolderRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &FolderRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestFolderCreateMapsUniqueViolation(t *testing.T) {
	repo, mock, done := newFolderRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO folders").
		WithArgs("folder-1", "Invoices", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "folders_name_key"})

	err := repo.Create(context.Background(), &domain.Folder{
		ID: "folder-1", Name: "Invoices", CreatedAt: time.Now().UTC(),
	})
	if !domain.IsKind(err, domain.ErrFolderExists) {
		t.Fatalf("expected ErrFolderExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFolderCreatePassesThroughOtherErrors(t *testing.T) {
	repo, mock, done := newFolderRepoWithMock(t)
	defer done()

	mock.ExpectExec("INSERT INTO folders").
		WithArgs("folder-1", "Invoices", sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &domain.Folder{
		ID: "folder-1", Name: "Invoices", CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if domain.IsKind(err, domain.ErrFolderExists) {
		t.Fatalf("plain failures must not look like a name collision: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFolderGetByNameReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newFolderRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, name, created_at FROM folders WHERE name").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteCascadeRunsInOneTransaction(t *testing.T) {
	repo, mock, done := newFolderRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM files WHERE folder_id").
		WithArgs("folder-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM folders WHERE id").
		WithArgs("folder-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteCascade(context.Background(), "folder-1"); err != nil {
		t.Fatalf("DeleteCascade() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteCascadeRollsBackWhenFolderMissing(t *testing.T) {
	repo, mock, done := newFolderRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM files WHERE folder_id").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM folders WHERE id").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFolderListCollectsRows(t *testing.T) {
	repo, mock, done := newFolderRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, name, created_at FROM folders ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("folder-1", "Invoices", now).
			AddRow("folder-2", "Photos", now))

	folders, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(folders) != 2 || folders[0].Name != "Invoices" {
		t.Fatalf("unexpected folders: %+v", folders)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
