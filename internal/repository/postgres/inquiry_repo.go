package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reliableteam-site/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const inquirySchema = `
CREATE TABLE IF NOT EXISTS inquiries (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL,
	email        TEXT NOT NULL,
	company      TEXT NOT NULL,
	requirements TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'new',
	source       TEXT NOT NULL DEFAULT 'web',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_inquiries_status ON inquiries (status);`

const inquiryColumns = `id, name, email, company, requirements, status, source, created_at, updated_at`

type inquiryRepo struct {
	db *pgxpool.Pool
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *pgxpool.Pool) domain.InquiryRepository {
	return &inquiryRepo{db: db}
}

// EnsureSchema creates the inquiries table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, inquirySchema); err != nil {
		return fmt.Errorf("failed to create inquiries schema: %w", err)
	}
	return nil
}

// Create inserts a new inquiry
func (r *inquiryRepo) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	query := `
		INSERT INTO inquiries (` + inquiryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		inquiry.ID, inquiry.Name, inquiry.Email, inquiry.Company,
		inquiry.Requirements, string(inquiry.Status), inquiry.Source,
		inquiry.CreatedAt, inquiry.UpdatedAt,
	)
	return err
}

// List returns inquiries newest first, optionally restricted to some statuses
func (r *inquiryRepo) List(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries`
	args := []interface{}{}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		query += fmt.Sprintf(" WHERE status = ANY($%d)", len(args))
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inquiries []domain.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		inquiries = append(inquiries, *inq)
	}
	return inquiries, rows.Err()
}

// UpdateStatus sets the follow-up status and returns the updated row
func (r *inquiryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
	query := `
		UPDATE inquiries SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + inquiryColumns

	inq, err := scanInquiry(r.db.QueryRow(ctx, query, id, string(status), time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inq, nil
}

func scanInquiry(row pgx.Row) (*domain.Inquiry, error) {
	var inq domain.Inquiry
	var status string
	err := row.Scan(
		&inq.ID, &inq.Name, &inq.Email, &inq.Company,
		&inq.Requirements, &status, &inq.Source,
		&inq.CreatedAt, &inq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inq.Status = domain.InquiryStatus(status)
	return &inq, nil
}
