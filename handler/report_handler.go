package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Aashish23092/cibil-report-parser/dto"
	"github.com/Aashish23092/cibil-report-parser/models"
	"github.com/Aashish23092/cibil-report-parser/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReportService is the part of service.ReportService the handlers use.
type ReportService interface {
	IngestUpload(ctx context.Context, fileHeader *multipart.FileHeader) (*service.IngestResult, error)
	ListReports(ctx context.Context) ([]dto.ReportListItem, error)
	GetReport(ctx context.Context, id uint) (*service.ReportView, error)
	GetScore(ctx context.Context, id uint) (*models.ScoreSummary, error)
	GetAccounts(ctx context.Context, id uint) (*service.AccountsView, error)
	GetEnquiries(ctx context.Context, id uint) (*service.EnquiriesView, error)
	DeleteReport(ctx context.Context, id uint) error
}

type ReportHandler struct {
	reportService  ReportService
	maxUploadBytes int64
	logger         *logrus.Logger
}

func NewReportHandler(reportService ReportService, maxUploadBytes int64, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// RegisterRoutes mounts the report endpoints on rg.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse", h.ParseReport)
	rg.GET("/reports", h.ListReports)
	rg.GET("/reports/:id", h.GetReport)
	rg.GET("/reports/:id/score", h.GetScore)
	rg.GET("/reports/:id/accounts", h.GetAccounts)
	rg.GET("/reports/:id/enquiries", h.GetEnquiries)
	rg.DELETE("/reports/:id", h.DeleteReport)
}

// ParseReport handles POST /parse
func (h *ReportHandler) ParseReport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "file missing", err)
		return
	}

	request := &dto.ParseReportRequest{File: fileHeader}
	if err := request.Validate(h.maxUploadBytes); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.reportService.IngestUpload(c.Request.Context(), fileHeader)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dto.ErrNoPageText) {
			status = http.StatusUnprocessableEntity
		}
		h.sendError(c, status, "Parsing failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.ParseReportResponse{
		Status:   "success",
		ReportID: result.ReportID,
		Message:  fmt.Sprintf("Report parsed and saved. report_id = %d", result.ReportID),
		Data:     result.Report,
		Quality:  result.Quality,
	})
}

// ListReports handles GET /reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportService.ListReports(c.Request.Context())
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to list reports", err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// GetReport handles GET /reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id)
	if err != nil {
		h.sendLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetScore handles GET /reports/:id/score
func (h *ReportHandler) GetScore(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	score, err := h.reportService.GetScore(c.Request.Context(), id)
	if err != nil {
		h.sendLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// GetAccounts handles GET /reports/:id/accounts
func (h *ReportHandler) GetAccounts(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	accounts, err := h.reportService.GetAccounts(c.Request.Context(), id)
	if err != nil {
		h.sendLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// GetEnquiries handles GET /reports/:id/enquiries
func (h *ReportHandler) GetEnquiries(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	enquiries, err := h.reportService.GetEnquiries(c.Request.Context(), id)
	if err != nil {
		h.sendLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, enquiries)
}

// DeleteReport handles DELETE /reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), id); err != nil {
		h.sendLookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteReportResponse{Status: "deleted", ReportID: id})
}

func (h *ReportHandler) bindID(c *gin.Context) (uint, bool) {
	var params dto.ReportIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		h.sendError(c, http.StatusBadRequest, "invalid report id", err)
		return 0, false
	}
	return params.ID, true
}

func (h *ReportHandler) sendLookupError(c *gin.Context, err error) {
	if errors.Is(err, dto.ErrReportNotFound) {
		h.sendError(c, http.StatusNotFound, "Report not found", err)
		return
	}
	h.sendError(c, http.StatusInternalServerError, "Failed to load report", err)
}

// sendError sends a structured error response
func (h *ReportHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		entry := h.logger.WithError(err).WithFields(logrus.Fields{
			"path":   c.FullPath(),
			"status": statusCode,
		})
		if statusCode >= http.StatusInternalServerError {
			entry.Error(message)
		} else {
			entry.Warn(message)
		}
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   errorCode(statusCode),
		Message: errorMsg,
		Code:    statusCode,
	})
}

func errorCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusUnprocessableEntity:
		return "NO_TEXT_EXTRACTED"
	default:
		return "INTERNAL_ERROR"
	}
}
