package converter

import (
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

// ReportToResponse converts a Report entity to ReportResponse DTO
func ReportToResponse(report *entity.Report) *dto.ReportResponse {
	if report == nil {
		return nil
	}

	response := &dto.ReportResponse{
		ID:          report.ID,
		PatientName: report.PatientName,
		Details:     report.Details,
		CreatedBy:   report.CreatedBy,
		CreatedAt:   report.CreatedAt,
	}

	if report.Author.ID != uuid.Nil {
		response.AuthorName = report.Author.FullName
	}

	return response
}

// ReportsToResponses converts a slice of Report entities to response DTOs
func ReportsToResponses(reports []entity.Report) []dto.ReportResponse {
	responses := make([]dto.ReportResponse, len(reports))
	for i, report := range reports {
		resp := ReportToResponse(&report)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
