package usecase

import (
	"context"
	"errors"
	"fmt"

	"patient-appointment-service/internal/converter"
	"patient-appointment-service/internal/delivery/dto"
	"patient-appointment-service/internal/delivery/http/middleware"
	"patient-appointment-service/internal/domain/entity"
	"patient-appointment-service/internal/domain/repository"
	"patient-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	CreateReport(ctx context.Context, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	GetAllReports(ctx context.Context) (*dto.ReportListResponse, error)
	ExportPatientReport(ctx context.Context, patientID uuid.UUID) (*dto.ReportExportResponse, error)
}

type reportUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	reportRepo   repository.ReportRepository
	auditService service.AuditService
	pdfService   *service.PDFService
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reportRepo repository.ReportRepository,
	auditService service.AuditService,
	pdfService *service.PDFService,
) ReportUsecase {
	return &reportUsecase{
		db:           db,
		log:          log,
		reportRepo:   reportRepo,
		auditService: auditService,
		pdfService:   pdfService,
	}
}

// CreateReport stores a free-text clinical note. The subject is a plain name
// string and is not checked against the user table.
func (u *reportUsecase) CreateReport(ctx context.Context, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	report := &entity.Report{
		PatientName: req.PatientName,
		Details:     req.Details,
		CreatedBy:   userID,
	}

	if err := u.reportRepo.Create(tx, report); err != nil {
		u.log.Warnf("Failed to create report: %+v", err)
		return nil, err
	}

	if err := u.auditService.Log(tx, &userID, entity.AuditActionReportCreate, entity.JSON{
		"report_id":    report.ID.String(),
		"patient_name": report.PatientName,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ReportToResponse(report), nil
}

// GetAllReports returns every stored report. Access is restricted to doctor
// and admin roles at the routing layer.
func (u *reportUsecase) GetAllReports(ctx context.Context) (*dto.ReportListResponse, error) {
	reports, err := u.reportRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list reports: %+v", err)
		return nil, err
	}

	return &dto.ReportListResponse{
		Reports: converter.ReportsToResponses(reports),
		Total:   len(reports),
	}, nil
}

// ExportPatientReport renders the patient report PDF and returns a download
// reference. Doctor-only at the routing layer.
func (u *reportUsecase) ExportPatientReport(ctx context.Context, patientID uuid.UUID) (*dto.ReportExportResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	fileName, err := u.pdfService.GeneratePatientReport(patientID)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.Log(u.db.WithContext(ctx), &userID, entity.AuditActionReportExport, entity.JSON{
		"patient_id": patientID.String(),
		"file_name":  fileName,
	}); err != nil {
		return nil, err
	}

	return &dto.ReportExportResponse{
		PatientID:   patientID,
		FileName:    fileName,
		DownloadURL: fmt.Sprintf("/exports/%s", fileName),
	}, nil
}
