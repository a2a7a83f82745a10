package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/inquiryform"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ inquiryform.Submitter = (*Client)(nil)

func TestCreateInquiry(t *testing.T) {
	var got inquiryform.Draft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/inquiries", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Inquiry received","data":{"id":"x"}}`))
	}))
	defer srv.Close()

	draft := inquiryform.Draft{Name: "Jane", Email: "jane@x.com", Company: "Acme", Requirements: "RAG"}
	env, err := New(srv.URL+"/").Create(context.Background(), draft)

	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, draft, got)
}

func TestCreateInquiryFailures(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false,"message":"Rate limit exceeded."}`))
		}))
		defer srv.Close()

		err := New(srv.URL).CreateInquiry(context.Background(), inquiryform.Draft{})
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
		assert.Contains(t, err.Error(), "Rate limit exceeded.")
	})

	t.Run("2xx with undecodable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>proxy page</html>`))
		}))
		defer srv.Close()

		err := New(srv.URL).CreateInquiry(context.Background(), inquiryform.Draft{})
		assert.ErrorContains(t, err, "decode response")
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := New(url).CreateInquiry(context.Background(), inquiryform.Draft{})
		assert.Error(t, err)
	})
}

func TestListInquiries(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer staff-token", r.Header.Get("Authorization"))
		assert.Equal(t, []string{"new", "contacted"}, r.URL.Query()["status"])
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []domain.Inquiry{{ID: id, Name: "Jane", Status: domain.InquiryStatusNew}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("staff-token"))
	assert.True(t, c.HasToken())

	got, err := c.ListInquiries(context.Background(),
		[]domain.InquiryStatus{domain.InquiryStatusNew, domain.InquiryStatusContacted}, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/inquiries/"+id.String()+"/status", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    domain.Inquiry{ID: id, Status: domain.InquiryStatus(body["status"])},
		})
	}))
	defer srv.Close()

	got, err := New(srv.URL, WithToken("t")).UpdateStatus(context.Background(), id, domain.InquiryStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusClosed, got.Status)
}
