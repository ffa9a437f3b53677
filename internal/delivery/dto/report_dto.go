package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateReportRequest struct {
	PatientName string `json:"patient_name" validate:"required,min=2"`
	Details     string `json:"details" validate:"required"`
}

// Response DTOs

type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientName string    `json:"patient_name"`
	Details     string    `json:"details"`
	CreatedBy   uuid.UUID `json:"created_by"`
	AuthorName  string    `json:"author_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
}

type ReportExportResponse struct {
	PatientID   uuid.UUID `json:"patient_id"`
	FileName    string    `json:"file_name"`
	DownloadURL string    `json:"download_url"`
}
