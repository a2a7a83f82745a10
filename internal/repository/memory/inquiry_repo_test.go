package memory

import (
	"context"
	"testing"
	"time"

	"reliableteam-site/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo domain.InquiryRepository, name string, status domain.InquiryStatus, at time.Time) domain.Inquiry {
	t.Helper()
	inq := domain.Inquiry{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@x.com",
		Company:      "Acme",
		Requirements: "Need a prompt engineer",
		Status:       status,
		Source:       "web",
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	require.NoError(t, repo.Create(context.Background(), &inq))
	return inq
}

func TestInquiryRepoList(t *testing.T) {
	repo, err := NewInquiryRepository()
	require.NoError(t, err)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed(t, repo, "old", domain.InquiryStatusClosed, base)
	seed(t, repo, "mid", domain.InquiryStatusNew, base.Add(time.Hour))
	seed(t, repo, "new", domain.InquiryStatusContacted, base.Add(2*time.Hour))

	t.Run("newest first", func(t *testing.T) {
		all, err := repo.List(context.Background(), domain.InquiryFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].Name, all[1].Name, all[2].Name})
	})

	t.Run("status filter and limit", func(t *testing.T) {
		got, err := repo.List(context.Background(), domain.InquiryFilter{
			Statuses: []domain.InquiryStatus{domain.InquiryStatusNew, domain.InquiryStatusClosed},
			Limit:    1,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "mid", got[0].Name)
	})
}

func TestInquiryRepoUpdateStatus(t *testing.T) {
	repo, err := NewInquiryRepository()
	require.NoError(t, err)

	inq := seed(t, repo, "jane", domain.InquiryStatusNew, time.Now().UTC())

	updated, err := repo.UpdateStatus(context.Background(), inq.ID, domain.InquiryStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusContacted, updated.Status)

	contacted, err := repo.List(context.Background(), domain.InquiryFilter{
		Statuses: []domain.InquiryStatus{domain.InquiryStatusContacted},
	})
	require.NoError(t, err)
	require.Len(t, contacted, 1)
	assert.Equal(t, inq.ID, contacted[0].ID)

	_, err = repo.UpdateStatus(context.Background(), uuid.New(), domain.InquiryStatusClosed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
