package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"reliableteam-site/config"
	"reliableteam-site/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       "587",
		SMTPUsername:   "login",
		SMTPPassword:   "secret",
		SMTPFromEmail:  "noreply@reliableteam.ai",
		InquiryEmailTo: "talent@reliableteam.ai",
	}
}

func TestNotifyNewInquiry(t *testing.T) {
	svc := NewEmailService(testConfig())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, string(msg)
		return nil
	}

	inq := &domain.Inquiry{
		ID:           uuid.New(),
		Name:         "Jane",
		Email:        "jane@x.com",
		Company:      "Acme",
		Requirements: "Need a <b>prompt</b> engineer",
		Source:       "web",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, svc.NotifyNewInquiry(context.Background(), inq))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@reliableteam.ai", gotFrom)
	assert.Equal(t, []string{"talent@reliableteam.ai"}, gotTo)
	assert.Contains(t, gotMsg, "Reply-To: jane@x.com\r\n")
	assert.Contains(t, gotMsg, "Subject: New inquiry: Acme (Jane)\r\n")
	assert.Contains(t, gotMsg, "&lt;b&gt;prompt&lt;/b&gt;", "requirements are HTML-escaped")
	assert.True(t, strings.Contains(gotMsg, inq.ID.String()))
}

func TestNotifyNewInquirySendFailure(t *testing.T) {
	svc := NewEmailService(testConfig())
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := svc.NotifyNewInquiry(context.Background(), &domain.Inquiry{ID: uuid.New()})
	assert.ErrorContains(t, err, "connection refused")
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewEmailService(testConfig()).IsConfigured())

	cfg := testConfig()
	cfg.SMTPPassword = ""
	assert.False(t, NewEmailService(cfg).IsConfigured())
}
