package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"reliableteam-site/config"
	"reliableteam-site/internal/delivery/http/web"
	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/repository/memory"
	"reliableteam-site/internal/site"
	"reliableteam-site/internal/usecase"
	"reliableteam-site/pkg/auth"
	"reliableteam-site/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	repo, err := memory.NewInquiryRepository()
	require.NoError(t, err)

	content, err := site.Load()
	require.NoError(t, err)
	page, err := web.NewPage(content, "")
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		InquiryUC: usecase.NewInquiryUsecase(repo, nil, validation.New()),
		HealthUC:  usecase.NewHealthUsecase(nil),
		Page:      page,
		Config: &config.Config{
			FrontendURL:               "http://localhost:8080",
			AdminJWTSecret:            testSecret,
			RateLimitWindowSeconds:    60,
			RateLimitGlobalThreshold:  100000,
			RateLimitInquiryThreshold: 100000,
		},
	})
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, err := auth.IssueStaffToken(testSecret, "staff-1", "talent@reliableteam.ai", time.Hour)
	require.NoError(t, err)
	return token
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(r, req)
}

func postForm(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/inquiries", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(r, req)
}

func staffGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	return do(r, req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	// empty lists are dropped by omitempty
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

const validInquiry = `{"name":"Ada Lovelace","email":"ada@example.com","company":"Analytical Co","requirements":"RAG developer"}`

func TestCreateInquiryJSON(t *testing.T) {
	r := newTestRouter(t)

	w := postJSON(r, validInquiry)
	require.Equal(t, http.StatusCreated, w.Code)

	var inquiry domain.Inquiry
	env := decode(t, w, &inquiry)
	assert.True(t, env.Success)
	assert.Equal(t, "Ada Lovelace", inquiry.Name)
	assert.Equal(t, domain.InquiryStatusNew, inquiry.Status)
	assert.Equal(t, "api", inquiry.Source)
	assert.NotEmpty(t, inquiry.ID)
}

func TestCreateInquiryJSONRejects(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing company", `{"name":"Ada","email":"ada@example.com","requirements":"x"}`},
		{"whitespace only", `{"name":"  ","email":"ada@example.com","company":"Co","requirements":"x"}`},
		{"bad email", `{"name":"Ada","email":"not-an-email","company":"Co","requirements":"x"}`},
		{"malformed body", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			env := decode(t, w, nil)
			assert.False(t, env.Success)
		})
	}
}

func TestCreateInquiryFormPost(t *testing.T) {
	r := newTestRouter(t)

	t.Run("success redirects to the contact section", func(t *testing.T) {
		w := postForm(r, url.Values{
			"name":         {"Grace Hopper"},
			"email":        {"grace@example.com"},
			"company":      {"Navy"},
			"requirements": {"LLM QA pod"},
		})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/?inquiry=success#contact", w.Header().Get("Location"))
	})

	t.Run("missing field keeps the draft", func(t *testing.T) {
		w := postForm(r, url.Values{
			"name":  {"Grace Hopper"},
			"email": {"grace@example.com"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Missing Information")
		assert.Contains(t, body, "Please fill in all fields.")
		assert.Contains(t, body, `value="Grace Hopper"`)
	})

	t.Run("invalid email reports a failure", func(t *testing.T) {
		w := postForm(r, url.Values{
			"name":         {"Grace Hopper"},
			"email":        {"nope"},
			"company":      {"Navy"},
			"requirements": {"LLM QA pod"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Failed to submit inquiry. Please try again.")
	})

	w := staffGet(t, r, "/api/inquiries")
	var inquiries []domain.Inquiry
	decode(t, w, &inquiries)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "web", inquiries[0].Source)
}

func TestLandingPage(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="services"`)
	assert.Contains(t, w.Body.String(), "Submit Inquiry")
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))

	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	w = do(r, req)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, httptest.NewRequest(http.MethodGet, "/?inquiry=success", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Success!")
	assert.NotEqual(t, etag, w.Header().Get("ETag"))
}

func TestStaffRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/api/inquiries", "/api/inquiries/export"} {
		w := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestListAndUpdateInquiries(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(r, validInquiry).Code)

	w := staffGet(t, r, "/api/inquiries?status=new&limit=10")
	require.Equal(t, http.StatusOK, w.Code)
	var inquiries []domain.Inquiry
	decode(t, w, &inquiries)
	require.Len(t, inquiries, 1)
	id := inquiries[0].ID.String()

	w = staffGet(t, r, "/api/inquiries?status=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = staffGet(t, r, "/api/inquiries?limit=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	patch := func(id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/inquiries/"+id+"/status", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+staffToken(t))
		return do(r, req)
	}

	w = patch(id, `{"status":"contacted"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Inquiry
	decode(t, w, &updated)
	assert.Equal(t, domain.InquiryStatusContacted, updated.Status)

	assert.Equal(t, http.StatusBadRequest, patch(id, `{"status":"archived"}`).Code)
	assert.Equal(t, http.StatusBadRequest, patch("not-a-uuid", `{"status":"closed"}`).Code)
	assert.Equal(t, http.StatusNotFound, patch("00000000-0000-0000-0000-000000000001", `{"status":"closed"}`).Code)

	w = staffGet(t, r, "/api/inquiries?status=new,closed")
	inquiries = nil
	decode(t, w, &inquiries)
	assert.Empty(t, inquiries)
}

func TestExportInquiries(t *testing.T) {
	r := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postJSON(r, validInquiry).Code)

	w := staffGet(t, r, "/api/inquiries/export")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	w = staffGet(t, r, "/api/inquiries/export?format=csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Lovelace")

	w = staffGet(t, r, "/api/inquiries/export?format=pdf")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "System operational", env.Message)
}
