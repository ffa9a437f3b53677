package repository

import (
	"patient-appointment-service/internal/domain/entity"
	domainRepo "patient-appointment-service/internal/domain/repository"

	"gorm.io/gorm"
)

type reportRepository struct{}

func NewReportRepository() domainRepo.ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) Create(db *gorm.DB, report *entity.Report) error {
	return db.Create(report).Error
}

func (r *reportRepository) FindAll(db *gorm.DB) ([]entity.Report, error) {
	var reports []entity.Report
	err := db.Preload("Author").Order("created_at DESC").Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
