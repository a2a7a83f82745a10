// Package web serves the server-rendered landing page and reports form
// outcomes with the same notifications the terminal client shows.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"reliableteam-site/internal/inquiryform"
	"reliableteam-site/internal/site"
	"reliableteam-site/pkg/logger"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Outcome query values appended to the redirect after an HTML form post.
const (
	OutcomeSuccess = "success"
	OutcomeMissing = "missing"
	OutcomeError   = "error"
)

var outcomes = map[string]inquiryform.Notification{
	OutcomeSuccess: inquiryform.SubmitSucceeded,
	OutcomeMissing: inquiryform.MissingInformation,
	OutcomeError:   inquiryform.SubmitFailed,
}

type view struct {
	*site.Content
	Draft       inquiryform.Draft
	Notice      *inquiryform.Notification
	SubmitLabel string
}

// Page renders the landing page. With a template dir set, templates and
// content.yaml found there are re-read on every request.
type Page struct {
	content *site.Content
	tmpl    *template.Template
	dir     string
}

func NewPage(content *site.Content, templateDir string) (*Page, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse embedded templates: %w", err)
	}
	return &Page{content: content, tmpl: tmpl, dir: templateDir}, nil
}

func (p *Page) load() (*template.Template, *site.Content, error) {
	if p.dir == "" {
		return p.tmpl, p.content, nil
	}
	tmpl, err := template.ParseGlob(filepath.Join(p.dir, "*.html"))
	if err != nil {
		return nil, nil, fmt.Errorf("parse templates from %s: %w", p.dir, err)
	}
	content := p.content
	contentPath := filepath.Join(p.dir, "content.yaml")
	if _, statErr := os.Stat(contentPath); statErr == nil {
		if content, err = site.LoadFile(contentPath); err != nil {
			return nil, nil, err
		}
	}
	return tmpl, content, nil
}

func (p *Page) render(draft inquiryform.Draft, notice *inquiryform.Notification) ([]byte, error) {
	tmpl, content, err := p.load()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "index", view{
		Content:     content,
		Draft:       draft,
		Notice:      notice,
		SubmitLabel: inquiryform.LabelIdle,
	})
	if err != nil {
		return nil, fmt.Errorf("render landing page: %w", err)
	}
	return buf.Bytes(), nil
}

// Index godoc
// @Summary      Landing page
// @Description  Server-rendered marketing page. The inquiry query parameter selects the form notification.
// @Tags         web
// @Produce      html
// @Param        inquiry  query  string  false  "Form outcome"  Enums(success, missing, error)
// @Success      200  {string}  string  "HTML page"
// @Success      304  {string}  string  "Not modified"
// @Router       / [get]
func (p *Page) Index(c *gin.Context) {
	var notice *inquiryform.Notification
	if n, ok := outcomes[c.Query("inquiry")]; ok {
		notice = &n
	}

	body, err := p.render(inquiryform.Draft{}, notice)
	if err != nil {
		logger.Log.Error("Landing page render failed", "error", err)
		c.String(http.StatusInternalServerError, "Page temporarily unavailable")
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

// Redirect sends the browser back to the contact section with an outcome.
func (p *Page) Redirect(c *gin.Context, outcome string) {
	c.Redirect(http.StatusSeeOther, "/?inquiry="+outcome+"#contact")
}

// RenderForm re-renders the page after a failed form post so the visitor
// keeps what they typed.
func (p *Page) RenderForm(c *gin.Context, status int, draft inquiryform.Draft, notice inquiryform.Notification) {
	body, err := p.render(draft, &notice)
	if err != nil {
		logger.Log.Error("Landing page render failed", "error", err)
		c.String(http.StatusInternalServerError, "Page temporarily unavailable")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, "text/html; charset=utf-8", body)
}

// IsFormPost reports whether the request is a browser form submission rather
// than an API call.
func IsFormPost(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return true
	}
	return false
}
