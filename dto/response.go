package dto

import (
	"errors"
	"time"
)

var (
	ErrNoPageText      = errors.New("no text could be extracted from the document")
	ErrReportNotFound  = errors.New("report not found")
	ErrInvalidFileType = errors.New("invalid file type. Supported: PDF")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ParseReportResponse struct {
	Status   string            `json:"status"`
	ReportID uint              `json:"report_id"`
	Message  string            `json:"message"`
	Data     CreditReport      `json:"data"`
	Quality  ExtractionQuality `json:"quality"`
}

type ReportListItem struct {
	ID            uint      `json:"id"`
	ControlNumber *string   `json:"control_number"`
	ReportDate    *string   `json:"report_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CibilScore    *int      `json:"cibil_score"`
	FullName      *string   `json:"full_name"`
}

type AccountsSummary struct {
	TotalOpen       int     `json:"total_open"`
	TotalClosed     int     `json:"total_closed"`
	TotalOverdue    float64 `json:"total_overdue"`
	TotalBalance    float64 `json:"total_balance"`
	AccountsWithDPD int     `json:"accounts_with_dpd"`
}

type DeleteReportResponse struct {
	Status   string `json:"status"`
	ReportID uint   `json:"report_id"`
}
