package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "transport-backend/internal/config"
	intdb "transport-backend/internal/db"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"

	"github.com/google/uuid"
)

const inquiryColumns = `id, name, email, phone, subject, message, status, created_at`

type InquiryRepository struct {
	DB *sql.DB
}

func (r InquiryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r InquiryRepository) Create(ctx context.Context, in *models.ContactInquiry) error {
	if in == nil {
		return fmt.Errorf("inquiry is nil")
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = utils.NowUTC()
	}
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO contact_inquiries (`+inquiryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		in.ID,
		in.Name,
		in.Email,
		intdb.NullString(in.Phone),
		in.Subject,
		in.Message,
		in.Status,
		in.CreatedAt,
	)
	return err
}

// List returns inquiries newest first.
func (r InquiryRepository) List(ctx context.Context) ([]models.ContactInquiry, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+inquiryColumns+` FROM contact_inquiries ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ContactInquiry{}
	for rows.Next() {
		in, err := scanInquiry(rows)
		if err != nil {
			return out, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r InquiryRepository) GetByID(ctx context.Context, id string) (models.ContactInquiry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.ContactInquiry{}, sql.ErrNoRows
	}
	return scanInquiry(r.db().QueryRowContext(ctx,
		`SELECT `+inquiryColumns+` FROM contact_inquiries WHERE id = ? LIMIT 1`, id))
}

// UpdateStatus reports false when no inquiry has the given id.
func (r InquiryRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	res, err := r.db().ExecContext(ctx,
		`UPDATE contact_inquiries SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanInquiry(sc rowScanner) (models.ContactInquiry, error) {
	var (
		in    models.ContactInquiry
		phone sql.NullString
	)
	if err := sc.Scan(
		&in.ID,
		&in.Name,
		&in.Email,
		&phone,
		&in.Subject,
		&in.Message,
		&in.Status,
		&in.CreatedAt,
	); err != nil {
		return models.ContactInquiry{}, err
	}
	in.Phone = intdb.StringPtr(phone)
	return in, nil
}
