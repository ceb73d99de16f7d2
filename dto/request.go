package dto

import (
	"fmt"
	"mime/multipart"
	"strings"
)

// ParseReportRequest is the multipart upload accepted by POST /parse.
type ParseReportRequest struct {
	File *multipart.FileHeader
}

// Validate performs basic validation on the request
func (r *ParseReportRequest) Validate(maxBytes int64) error {
	if r.File == nil {
		return fmt.Errorf("file is required")
	}
	if !strings.HasSuffix(strings.ToLower(r.File.Filename), ".pdf") {
		return ErrInvalidFileType
	}
	if maxBytes > 0 && r.File.Size > maxBytes {
		return fmt.Errorf("file exceeds the %d byte upload limit", maxBytes)
	}
	return nil
}

// ReportIDParams binds the :id path segment.
type ReportIDParams struct {
	ID uint `uri:"id" binding:"required,min=1"`
}
