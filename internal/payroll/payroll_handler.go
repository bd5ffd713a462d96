package payroll

import (
	"errors"
	"io"
	"net/http"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// bindOptionalMonth accepts an empty body as "current month".
func bindOptionalMonth(c *gin.Context) (string, bool) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeServiceError(c, apperror.MapValidationError(err))
		return "", false
	}
	return req.Month, true
}

func (h *Handler) Generate(c *gin.Context) {
	month, ok := bindOptionalMonth(c)
	if !ok {
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), c.Param("employeeId"), month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GenerateAll(c *gin.Context) {
	month, ok := bindOptionalMonth(c)
	if !ok {
		return
	}

	resp, err := h.service.GenerateAll(c.Request.Context(), month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByEmployee(c *gin.Context) {
	resp, err := h.service.ListByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Latest(c *gin.Context) {
	resp, err := h.service.ListLatest(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) View(c *gin.Context) {
	resp, err := h.service.View(c.Request.Context(), middleware.ActorFromContext(c), c.Param("payslipId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) PDF(c *gin.Context) {
	doc, err := h.service.RenderPDF(c.Request.Context(), c.Param("payslipId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, doc.ContentType, doc.Filename, doc.Data)
}

func (h *Handler) HTML(c *gin.Context) {
	out, err := h.service.RenderHTML(c.Request.Context(), middleware.ActorFromContext(c), c.Param("payslipId"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Inline(c, "text/html; charset=utf-8", out)
}

func (h *Handler) Email(c *gin.Context) {
	var req EmailPayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Email(c.Request.Context(), c.Param("payslipId"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Register(c *gin.Context) {
	doc, err := h.service.ExportRegister(c.Request.Context(), c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Attachment(c, doc.ContentType, doc.Filename, doc.Data)
}
