package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ezra/internal/models"

	"github.com/jackc/pgx/v5"
)

// PostgresDocumentStore persists documents in the documents table.
type PostgresDocumentStore struct {
	db *DB
}

func NewPostgresDocumentStore(db *DB) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db}
}

func (s *PostgresDocumentStore) Put(ctx context.Context, doc models.Document) error {
	validation, err := marshalNullable(doc.Validation)
	if err != nil {
		return fmt.Errorf("encode validation: %w", err)
	}
	_, err = s.db.Pool.Exec(ctx, `
INSERT INTO documents (document_id, original_name, stored_filename, size_bytes, mime_type, upload_time,
                       project_name, organization, description, status, extracted_text, validation, error)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11,''), $12, NULLIF($13,''))
ON CONFLICT (document_id)
DO UPDATE SET
  status = EXCLUDED.status,
  extracted_text = EXCLUDED.extracted_text,
  validation = EXCLUDED.validation,
  error = EXCLUDED.error`,
		doc.ID, doc.OriginalName, doc.StoredFilename, doc.Size, doc.MimeType, doc.UploadTime,
		doc.ProjectName, doc.Organization, doc.Description, doc.Status, doc.ExtractedText, validation, doc.Error,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (s *PostgresDocumentStore) Get(ctx context.Context, id string) (models.Document, error) {
	var (
		doc        models.Document
		validation []byte
	)
	err := s.db.Pool.QueryRow(ctx, `
SELECT document_id, original_name, stored_filename, size_bytes, mime_type, upload_time,
       project_name, organization, description, status, COALESCE(extracted_text,''), validation, COALESCE(error,'')
FROM documents WHERE document_id=$1`, id).
		Scan(&doc.ID, &doc.OriginalName, &doc.StoredFilename, &doc.Size, &doc.MimeType, &doc.UploadTime,
			&doc.ProjectName, &doc.Organization, &doc.Description, &doc.Status, &doc.ExtractedText, &validation, &doc.Error)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Document{}, ErrNotFound
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("get document: %w", err)
	}
	if len(validation) > 0 {
		doc.Validation = &models.Validation{}
		if err := json.Unmarshal(validation, doc.Validation); err != nil {
			return models.Document{}, fmt.Errorf("decode validation: %w", err)
		}
	}
	return doc, nil
}

// PostgresReportStore persists reports in the reports table. Update runs
// inside a transaction with SELECT ... FOR UPDATE so concurrent mutators of
// the same record serialize.
type PostgresReportStore struct {
	db *DB
}

func NewPostgresReportStore(db *DB) *PostgresReportStore {
	return &PostgresReportStore{db: db}
}

func (s *PostgresReportStore) Create(ctx context.Context, r models.Report) error {
	content, err := marshalNullable(r.Content)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	_, err = s.db.Pool.Exec(ctx, `
INSERT INTO reports (report_id, document_id, project_name, organization, status, progress,
                     created_at, completed_at, content, html_content, error)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10,''), NULLIF($11,''))`,
		r.ID, r.DocumentID, r.ProjectName, r.Organization, r.Status, r.Progress,
		r.CreatedAt, r.CompletedAt, content, r.HTMLContent, r.Error,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *PostgresReportStore) Get(ctx context.Context, id string) (models.Report, error) {
	r, err := scanReport(s.db.Pool.QueryRow(ctx, selectReport+` WHERE report_id=$1`, id))
	if err != nil {
		return models.Report{}, err
	}
	return r, nil
}

func (s *PostgresReportStore) Update(ctx context.Context, id string, fn func(*models.Report) error) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin report update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	r, err := scanReport(tx.QueryRow(ctx, selectReport+` WHERE report_id=$1 FOR UPDATE`, id))
	if err != nil {
		return err
	}
	if err := fn(&r); err != nil {
		return err
	}
	content, err := marshalNullable(r.Content)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	if _, err := tx.Exec(ctx, `
UPDATE reports SET status=$2, progress=$3, completed_at=$4, content=$5,
                   html_content=NULLIF($6,''), error=NULLIF($7,'')
WHERE report_id=$1`,
		r.ID, r.Status, r.Progress, r.CompletedAt, content, r.HTMLContent, r.Error,
	); err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *PostgresReportStore) List(ctx context.Context, offset, limit int) ([]models.Report, int, error) {
	var total int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}
	rows, err := s.db.Pool.Query(ctx, selectReport+` ORDER BY created_at DESC, report_id DESC OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]models.Report, 0, limit)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reports: %w", err)
	}
	return out, total, nil
}

const selectReport = `
SELECT report_id, document_id, project_name, organization, status, progress,
       created_at, completed_at, content, COALESCE(html_content,''), COALESCE(error,'')
FROM reports`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (models.Report, error) {
	var (
		r       models.Report
		content []byte
	)
	err := row.Scan(&r.ID, &r.DocumentID, &r.ProjectName, &r.Organization, &r.Status, &r.Progress,
		&r.CreatedAt, &r.CompletedAt, &content, &r.HTMLContent, &r.Error)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Report{}, ErrNotFound
	}
	if err != nil {
		return models.Report{}, fmt.Errorf("scan report: %w", err)
	}
	if len(content) > 0 {
		r.Content = &models.ReportData{}
		if err := json.Unmarshal(content, r.Content); err != nil {
			return models.Report{}, fmt.Errorf("decode report content: %w", err)
		}
	}
	return r, nil
}

func marshalNullable(v any) ([]byte, error) {
	switch x := v.(type) {
	case *models.Validation:
		if x == nil {
			return nil, nil
		}
	case *models.ReportData:
		if x == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
