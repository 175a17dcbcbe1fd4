package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "transport-backend/internal/config"
	"transport-backend/internal/domain"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/metrics"
	"transport-backend/internal/repositories"
	"transport-backend/internal/utils"

	"go.uber.org/zap"
)

type InquiryService struct {
	Repo      repositories.InquiryRepository
	DB        *sql.DB
	RequestID string
	Actor     string
}

func (s InquiryService) repo() repositories.InquiryRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	if s.DB != nil {
		return repositories.InquiryRepository{DB: s.DB}
	}
	return repositories.InquiryRepository{DB: intconfig.DB}
}

// Submit validates and stores a contact inquiry with status "new".
func (s InquiryService) Submit(ctx context.Context, in models.ContactInquiryInput) (models.ContactInquiry, error) {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
	if in.Phone != nil {
		p := strings.TrimSpace(*in.Phone)
		if p == "" {
			in.Phone = nil
		} else {
			in.Phone = &p
		}
	}

	if v := structViolations(in); len(v) > 0 {
		return models.ContactInquiry{}, domain.ValidationError{Violations: v}
	}

	inquiry := models.ContactInquiry{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
		Status:  string(domain.InquiryNew),
	}
	if err := s.repo().Create(ctx, &inquiry); err != nil {
		return models.ContactInquiry{}, domain.InternalError{Err: err}
	}

	metrics.ContactInquiries.Inc()
	utils.LogEvent(s.RequestID, "contact", "submit", "contact inquiry received",
		zap.String("inquiry_id", inquiry.ID),
		zap.String("subject", inquiry.Subject),
	)
	return inquiry, nil
}

func (s InquiryService) List(ctx context.Context) ([]models.ContactInquiry, error) {
	out, err := s.repo().List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s InquiryService) UpdateStatus(ctx context.Context, id, rawStatus string) (models.ContactInquiry, error) {
	if strings.TrimSpace(rawStatus) == "" {
		return models.ContactInquiry{}, domain.ValidationError{
			Msg:        "Status is required",
			Violations: []domain.FieldViolation{{Field: "status", Message: "is required"}},
		}
	}
	status, err := domain.ParseInquiryStatus(rawStatus)
	if err != nil {
		return models.ContactInquiry{}, err
	}

	ok, err := s.repo().UpdateStatus(ctx, id, string(status))
	if err != nil {
		return models.ContactInquiry{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.ContactInquiry{}, domain.NotFoundError{Resource: "Inquiry"}
	}

	out, err := s.repo().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ContactInquiry{}, domain.NotFoundError{Resource: "Inquiry", Err: err}
		}
		return models.ContactInquiry{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "contact", "update_status", "inquiry status updated",
		zap.String("inquiry_id", out.ID),
		zap.String("status", out.Status),
		zap.String("actor", s.Actor),
	)
	return out, nil
}
