package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"reliableteam-site/internal/delivery/http/response"
	"reliableteam-site/internal/delivery/http/web"
	"reliableteam-site/internal/domain"
	"reliableteam-site/internal/inquiryform"
	"reliableteam-site/pkg/apperror"
	"reliableteam-site/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InquiryHandler struct {
	inquiryUC domain.InquiryUsecase
	page      *web.Page
}

type UpdateStatusRequest struct {
	Status domain.InquiryStatus `json:"status"`
}

// NewInquiryHandler registers the public submit route and the staff routes.
// page may be nil, in which case form posts get JSON responses too.
func NewInquiryHandler(public, staff *gin.RouterGroup, inquiryUC domain.InquiryUsecase, page *web.Page, submitLimit gin.HandlerFunc) {
	handler := &InquiryHandler{
		inquiryUC: inquiryUC,
		page:      page,
	}

	public.POST("/inquiries", submitLimit, handler.CreateInquiry)

	inquiries := staff.Group("/inquiries")
	{
		inquiries.GET("", handler.ListInquiries)
		inquiries.GET("/export", handler.ExportInquiries)
		inquiries.PATCH("/:id/status", handler.UpdateStatus)
	}
}

// CreateInquiry godoc
// @Summary      Submit an inquiry
// @Description  Public lead form. Accepts JSON or an HTML form post; form posts are answered with a redirect or a re-rendered page.
// @Tags         inquiries
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        inquiry  body      domain.CreateInquiryRequest  true  "Inquiry"
// @Success      201      {object}  response.Response{data=domain.Inquiry}
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /inquiries [post]
func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	formPost := h.page != nil && web.IsFormPost(c)

	var req domain.CreateInquiryRequest
	if err := c.ShouldBind(&req); err != nil {
		if formPost {
			h.page.RenderForm(c, http.StatusBadRequest, draftFrom(req), inquiryform.SubmitFailed)
			return
		}
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	source := "api"
	if formPost {
		source = "web"
	}

	inquiry, err := h.inquiryUC.Submit(c.Request.Context(), &req, source)
	if err != nil {
		if formPost {
			h.renderFailure(c, req, err)
			return
		}
		c.Error(err)
		return
	}

	if formPost {
		h.page.Redirect(c, web.OutcomeSuccess)
		return
	}
	response.Success(c, http.StatusCreated, "Inquiry received", inquiry)
}

func (h *InquiryHandler) renderFailure(c *gin.Context, req domain.CreateInquiryRequest, err error) {
	status := http.StatusInternalServerError
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status = appErr.Code
	} else {
		logger.Log.Error("Inquiry submission failed", "request_id", response.RequestID(c), "error", err)
	}

	notice := inquiryform.SubmitFailed
	if errors.Is(err, domain.ErrMissingFields) {
		notice = inquiryform.MissingInformation
	}
	h.page.RenderForm(c, status, draftFrom(req), notice)
}

func draftFrom(req domain.CreateInquiryRequest) inquiryform.Draft {
	return inquiryform.Draft{
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		Requirements: req.Requirements,
	}
}

// ListInquiries godoc
// @Summary      List inquiries
// @Description  Newest first. Repeat status or pass a comma separated list to filter.
// @Tags         inquiries
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     []string  false  "Status filter (new, contacted, closed)"  collectionFormat(multi)
// @Param        limit   query     int       false  "Maximum rows (default and cap 500)"
// @Success      200     {object}  response.Response{data=[]domain.Inquiry}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Router       /inquiries [get]
func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	inquiries, err := h.inquiryUC.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Inquiries retrieved", inquiries)
}

// ExportInquiries godoc
// @Summary      Export inquiries to Excel/CSV
// @Tags         inquiries
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Security     BearerAuth
// @Param        status  query     []string  false  "Status filter"  collectionFormat(multi)
// @Param        format  query     string    false  "Export format (xlsx, csv). Default: xlsx"
// @Success      200     {file}    file
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Router       /inquiries/export [get]
func (h *InquiryHandler) ExportInquiries(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	export, err := h.inquiryUC.Export(c.Request.Context(), filter, c.DefaultQuery("format", "xlsx"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.Filename)
	c.Data(http.StatusOK, export.ContentType, export.Data)
}

// UpdateStatus godoc
// @Summary      Update inquiry status
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Inquiry ID"
// @Param        request  body      UpdateStatusRequest  true  "New status"
// @Success      200      {object}  response.Response{data=domain.Inquiry}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /inquiries/{id}/status [patch]
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid inquiry ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	inquiry, err := h.inquiryUC.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Inquiry status updated", inquiry)
}

func parseFilter(c *gin.Context) (domain.InquiryFilter, error) {
	var filter domain.InquiryFilter
	for _, raw := range c.QueryArray("status") {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, domain.InquiryStatus(s))
			}
		}
	}
	if limit := c.Query("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			return filter, apperror.BadRequest("limit must be a non-negative integer")
		}
		filter.Limit = v
	}
	return filter, nil
}
