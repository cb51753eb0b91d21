package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docuintel/docuintel/internal/core/domain"
)

const uniqueViolationCode = "23505"

type FolderRepository struct {
	db *sql.DB
}

func NewFolderRepository(db *sql.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// Create reports a name collision as domain.ErrFolderExists so the resolver
// can re-read the winning row instead of failing.
func (r *FolderRepository) Create(ctx context.Context, folder *domain.Folder) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO folders (id, name, created_at) VALUES ($1, $2, $3)
`, folder.ID, folder.Name, folder.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.WrapError(domain.ErrFolderExists, "insert folder", fmt.Errorf("name=%q", folder.Name))
		}
		return fmt.Errorf("insert folder: %w", err)
	}
	return nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at FROM folders WHERE id = $1
`, id)
	return scanFolder(row, fmt.Sprintf("id=%s", id))
}

func (r *FolderRepository) GetByName(ctx context.Context, name string) (*domain.Folder, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at FROM folders WHERE name = $1
`, name)
	return scanFolder(row, fmt.Sprintf("name=%q", name))
}

func (r *FolderRepository) List(ctx context.Context) ([]domain.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_at FROM folders ORDER BY name
`)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer rows.Close()

	folders := []domain.Folder{}
	for rows.Next() {
		var folder domain.Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan folder row: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder rows: %w", err)
	}
	return folders, nil
}

// DeleteCascade removes the member file rows and the folder row in one
// transaction: either all metadata goes or none of it does.
func (r *FolderRepository) DeleteCascade(ctx context.Context, folderID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE folder_id = $1`, folderID); err != nil {
		return fmt.Errorf("delete member files: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, folderID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete folder rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrFolderNotFound, "delete folder", fmt.Errorf("id=%s", folderID))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cascade tx: %w", err)
	}
	return nil
}

func scanFolder(row *sql.Row, ref string) (*domain.Folder, error) {
	var folder domain.Folder
	err := row.Scan(&folder.ID, &folder.Name, &folder.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrFolderNotFound, "get folder", errors.New(ref))
		}
		return nil, fmt.Errorf("scan folder: %w", err)
	}
	return &folder, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
