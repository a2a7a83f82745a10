package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"reliableteam-site/internal/domain"
	"reliableteam-site/pkg/apperror"
	"reliableteam-site/pkg/logger"
	"reliableteam-site/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxListLimit = 500

type inquiryUsecase struct {
	repo     domain.InquiryRepository
	notifier domain.InquiryNotifier
	validate *validator.Validate
	now      func() time.Time
}

// NewInquiryUsecase wires the inquiry flow. notifier may be nil.
func NewInquiryUsecase(repo domain.InquiryRepository, notifier domain.InquiryNotifier, validate *validator.Validate) domain.InquiryUsecase {
	return &inquiryUsecase{
		repo:     repo,
		notifier: notifier,
		validate: validate,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates the request, stores it and tells staff. A failed staff
// e-mail does not fail the submission since the inquiry is already stored.
func (u *inquiryUsecase) Submit(ctx context.Context, req *domain.CreateInquiryRequest, source string) (*domain.Inquiry, error) {
	clean := domain.CreateInquiryRequest{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Company:      strings.TrimSpace(req.Company),
		Requirements: strings.TrimSpace(req.Requirements),
	}

	if err := u.validate.Struct(&clean); err != nil {
		msg := strings.Join(validation.FormatValidationErrors(err), "; ")
		if validation.HasTag(err, "required") {
			return nil, apperror.New(http.StatusBadRequest, msg, domain.ErrMissingFields)
		}
		return nil, apperror.BadRequest(msg)
	}

	if source == "" {
		source = "api"
	}

	now := u.now()
	inquiry := &domain.Inquiry{
		ID:           uuid.New(),
		Name:         clean.Name,
		Email:        clean.Email,
		Company:      clean.Company,
		Requirements: clean.Requirements,
		Status:       domain.InquiryStatusNew,
		Source:       source,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.repo.Create(ctx, inquiry); err != nil {
		return nil, fmt.Errorf("failed to store inquiry: %w", err)
	}

	logger.Log.Info("Inquiry received", "inquiry_id", inquiry.ID, "company", inquiry.Company, "source", source)

	if u.notifier != nil && u.notifier.IsConfigured() {
		if err := u.notifier.NotifyNewInquiry(ctx, inquiry); err != nil {
			logger.Log.Error("Failed to notify staff about inquiry", "inquiry_id", inquiry.ID, "error", err)
		}
	}

	return inquiry, nil
}

func (u *inquiryUsecase) List(ctx context.Context, filter domain.InquiryFilter) ([]domain.Inquiry, error) {
	for _, s := range filter.Statuses {
		if !s.Valid() {
			return nil, apperror.New(http.StatusBadRequest, fmt.Sprintf("Unknown status %q", s), domain.ErrInvalidStatus)
		}
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	inquiries, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	if inquiries == nil {
		inquiries = []domain.Inquiry{}
	}
	return inquiries, nil
}

func (u *inquiryUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
	if !status.Valid() {
		return nil, apperror.New(http.StatusBadRequest, fmt.Sprintf("Unknown status %q", status), domain.ErrInvalidStatus)
	}

	inquiry, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Inquiry not found")
		}
		return nil, fmt.Errorf("failed to update inquiry status: %w", err)
	}
	return inquiry, nil
}
