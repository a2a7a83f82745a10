package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidStatus = errors.New("invalid inquiry status")
	ErrMissingFields = errors.New("missing required inquiry fields")
)

// InquiryStatus tracks how far staff have followed up on a lead.
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusClosed    InquiryStatus = "closed"
)

// Valid reports whether s is one of the known statuses.
func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry is a lead submitted through the contact form.
type Inquiry struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Company      string        `json:"company"`
	Requirements string        `json:"requirements"`
	Status       InquiryStatus `json:"status"`
	Source       string        `json:"source"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CreateInquiryRequest is the body of POST /api/inquiries. It binds from JSON
// or from an HTML form post.
type CreateInquiryRequest struct {
	Name         string `json:"name" form:"name" validate:"required,max=120,valid_name,no_emoji"`
	Email        string `json:"email" form:"email" validate:"required,email,max=254"`
	Company      string `json:"company" form:"company" validate:"required,max=200"`
	Requirements string `json:"requirements" form:"requirements" validate:"required,max=5000"`
}

// InquiryFilter narrows the staff inquiry list.
type InquiryFilter struct {
	Statuses []InquiryStatus
	Limit    int
}

// InquiryExport is a rendered export file.
type InquiryExport struct {
	Filename    string
	ContentType string
	Data        []byte
}

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *Inquiry) error
	List(ctx context.Context, filter InquiryFilter) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status InquiryStatus) (*Inquiry, error)
}

// InquiryNotifier tells staff about a new lead.
type InquiryNotifier interface {
	IsConfigured() bool
	NotifyNewInquiry(ctx context.Context, inquiry *Inquiry) error
}

type InquiryUsecase interface {
	// Submit validates and stores a public inquiry, then notifies staff
	Submit(ctx context.Context, req *CreateInquiryRequest, source string) (*Inquiry, error)
	List(ctx context.Context, filter InquiryFilter) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status InquiryStatus) (*Inquiry, error)
	Export(ctx context.Context, filter InquiryFilter, format string) (*InquiryExport, error)
}
