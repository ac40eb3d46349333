package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Aashish23092/payslip-filler/dto"
	"github.com/Aashish23092/payslip-filler/service"
	"github.com/Aashish23092/payslip-filler/utils/numeral"
)

type PayrollHandler struct {
	payrollService *service.PayrollService
	maxFileSize    int64
}

func NewPayrollHandler(payrollService *service.PayrollService, maxFileSize int64) *PayrollHandler {
	return &PayrollHandler{
		payrollService: payrollService,
		maxFileSize:    maxFileSize,
	}
}

// Placeholders handles POST /payroll/placeholders
func (h *PayrollHandler) Placeholders(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	req, ok := h.bindUpload(c, false)
	if !ok {
		return
	}

	workDir, err := os.MkdirTemp("", "payslip-*")
	if err != nil {
		h.sendError(c, err)
		return
	}
	defer os.RemoveAll(workDir)

	reportPath, err := h.save(c, req.Report, workDir, "report")
	if err != nil {
		h.sendError(c, err)
		return
	}

	facts, placeholders, err := h.payrollService.Placeholders(c.Request.Context(), reportPath)
	if err != nil {
		h.sendError(c, err)
		return
	}

	logger.Info().Str("period", facts.Period.String()).Msg("Placeholders computed")
	c.JSON(http.StatusOK, dto.PlaceholdersResponse{
		Period:       facts.Period,
		Placeholders: placeholders,
		ProcessedAt:  time.Now().Format(time.RFC3339),
	})
}

// Fill handles POST /payroll/fill and returns the filled template.
func (h *PayrollHandler) Fill(c *gin.Context) {
	logger := zerolog.Ctx(c.Request.Context())

	req, ok := h.bindUpload(c, true)
	if !ok {
		return
	}

	workDir, err := os.MkdirTemp("", "payslip-*")
	if err != nil {
		h.sendError(c, err)
		return
	}
	defer os.RemoveAll(workDir)

	reportPath, err := h.save(c, req.Report, workDir, "report")
	if err != nil {
		h.sendError(c, err)
		return
	}
	templatePath, err := h.save(c, req.Template, workDir, "template")
	if err != nil {
		h.sendError(c, err)
		return
	}

	result, err := h.payrollService.Fill(c.Request.Context(), dto.FillRequest{
		ReportPath:   reportPath,
		TemplatePath: templatePath,
		OutputPath:   filepath.Join(workDir, "filled"+filepath.Ext(templatePath)),
	})
	if err != nil {
		h.sendError(c, err)
		return
	}

	logger.Info().
		Str("run_id", result.RunID).
		Int("replacements", result.Replacements).
		Msg("Template filled")
	c.Header("X-Run-Id", result.RunID)
	c.FileAttachment(result.OutputPath, "filled-"+filepath.Base(req.Template.Filename))
}

func (h *PayrollHandler) bindUpload(c *gin.Context, needTemplate bool) (*dto.UploadRequest, bool) {
	var req dto.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.sendStatus(c, http.StatusBadRequest, "BAD_REQUEST", "report file is required", "")
		return nil, false
	}
	if !needTemplate {
		req.Template = nil
	}

	if err := req.Validate(needTemplate); err != nil {
		h.sendStatus(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), "")
		return nil, false
	}
	for _, fh := range []*multipart.FileHeader{req.Report, req.Template} {
		if fh != nil && h.maxFileSize > 0 && fh.Size > h.maxFileSize {
			h.sendStatus(c, http.StatusBadRequest, "BAD_REQUEST",
				fmt.Sprintf("file %s exceeds %d bytes", fh.Filename, h.maxFileSize), "")
			return nil, false
		}
	}
	return &req, true
}

// save stores an upload as dir/name plus the upload's extension.
func (h *PayrollHandler) save(c *gin.Context, fh *multipart.FileHeader, dir, name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fh.Filename)))
	path := filepath.Join(dir, name+ext)
	if err := c.SaveUploadedFile(fh, path); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return path, nil
}

// sendError maps service errors to a structured error response
func (h *PayrollHandler) sendError(c *gin.Context, err error) {
	var reportErr *dto.ReportError
	switch {
	case errors.Is(err, dto.ErrUnsupportedFormat):
		h.sendStatus(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", err.Error(), "")
	case errors.As(err, &reportErr):
		h.sendStatus(c, http.StatusUnprocessableEntity, "INVALID_REPORT", err.Error(), reportErr.Field.String())
	case errors.Is(err, dto.ErrParse), errors.Is(err, dto.ErrNotFound), errors.Is(err, dto.ErrInvalidAmount),
		errors.Is(err, numeral.ErrOutOfRange):
		h.sendStatus(c, http.StatusUnprocessableEntity, "INVALID_REPORT", err.Error(), "")
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Request failed")
		h.sendStatus(c, http.StatusInternalServerError, "FILL_FAILED", err.Error(), "")
	}
}

func (h *PayrollHandler) sendStatus(c *gin.Context, statusCode int, code, message, field string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
		Field:   field,
	})
}
