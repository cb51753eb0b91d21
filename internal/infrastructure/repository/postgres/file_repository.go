package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/docuintel/docuintel/internal/core/domain"
)

type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

const fileColumns = `id, filename, mime_type, size_bytes, storage_key, summary, classification, folder_id, created_at, updated_at`

func (r *FileRepository) Create(ctx context.Context, file *domain.FileRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO files (
	id, filename, mime_type, size_bytes, storage_key, summary, classification, folder_id, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
		file.ID, file.Filename, file.MimeType, file.SizeBytes, file.StorageKey,
		file.Summary, file.Classification, file.FolderID, file.CreatedAt, file.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id string) (*domain.FileRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+fileColumns+`
FROM files
WHERE id = $1
`, id)

	file, err := scanFile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrFileNotFound, "get file by id", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return file, nil
}

func (r *FileRepository) ListUnassigned(ctx context.Context) ([]domain.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+fileColumns+`
FROM files
WHERE folder_id IS NULL
ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("query unassigned files: %w", err)
	}
	defer rows.Close()
	return collectFiles(rows)
}

func (r *FileRepository) ListByFolder(ctx context.Context, folderID string) ([]domain.FileRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+fileColumns+`
FROM files
WHERE folder_id = $1
ORDER BY created_at DESC
`, folderID)
	if err != nil {
		return nil, fmt.Errorf("query files by folder: %w", err)
	}
	defer rows.Close()
	return collectFiles(rows)
}

// AssignFolder commits a categorization outcome: folder reference,
// classification label and summary move together in one statement.
func (r *FileRepository) AssignFolder(ctx context.Context, fileID, folderID, classification, summary string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE files
SET folder_id = $2, classification = $3, summary = $4, updated_at = $5
WHERE id = $1
`, fileID, folderID, classification, summary, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("assign folder: %w", err)
	}
	return requireRow(result, domain.ErrFileNotFound, "assign folder", fileID)
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return requireRow(result, domain.ErrFileNotFound, "delete file", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (*domain.FileRecord, error) {
	var file domain.FileRecord
	var folderID sql.NullString

	err := row.Scan(
		&file.ID, &file.Filename, &file.MimeType, &file.SizeBytes, &file.StorageKey,
		&file.Summary, &file.Classification, &folderID, &file.CreatedAt, &file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if folderID.Valid {
		file.FolderID = &folderID.String
	}
	return &file, nil
}

func collectFiles(rows *sql.Rows) ([]domain.FileRecord, error) {
	files := []domain.FileRecord{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		files = append(files, *file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file rows: %w", err)
	}
	return files, nil
}

func requireRow(result sql.Result, kind error, operation, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", operation, err)
	}
	if affected == 0 {
		return domain.WrapError(kind, operation, fmt.Errorf("id=%s", id))
	}
	return nil
}
