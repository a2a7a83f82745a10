// Package api is the HTTP client for the inquiry endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/inquiryform"

	"github.com/google/uuid"
)

const inquiriesPath = "/api/inquiries"

// Envelope mirrors the server's JSON response wrapper.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent to staff endpoints.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasToken reports whether staff endpoints can be called.
func (c *Client) HasToken() bool { return c.token != "" }

// CreateInquiry posts the draft. It satisfies inquiryform.Submitter.
func (c *Client) CreateInquiry(ctx context.Context, draft inquiryform.Draft) error {
	_, err := c.Create(ctx, draft)
	return err
}

// Create posts the draft and returns the decoded response envelope.
func (c *Client) Create(ctx context.Context, draft inquiryform.Draft) (*Envelope, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+inquiriesPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// ListInquiries fetches the staff inquiry list, newest first.
func (c *Client) ListInquiries(ctx context.Context, statuses []domain.InquiryStatus, limit int) ([]domain.Inquiry, error) {
	q := url.Values{}
	for _, s := range statuses {
		q.Add("status", string(s))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	target := c.baseURL + inquiriesPath
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	env, err := c.do(c.authorize(req))
	if err != nil {
		return nil, err
	}

	var out []domain.Inquiry
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return nil, fmt.Errorf("decode inquiries: %w", err)
		}
	}
	return out, nil
}

// UpdateStatus changes the follow-up status of one inquiry.
func (c *Client) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+inquiriesPath+"/"+id.String()+"/status", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(c.authorize(req))
	if err != nil {
		return nil, err
	}
	var out domain.Inquiry
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return nil, fmt.Errorf("decode inquiry: %w", err)
	}
	return &out, nil
}

func (c *Client) authorize(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req
}

func (c *Client) do(req *http.Request) (*Envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &env, nil
}
