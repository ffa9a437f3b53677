package repository

import (
	"patient-appointment-service/internal/domain/entity"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(db *gorm.DB, report *entity.Report) error
	FindAll(db *gorm.DB) ([]entity.Report, error)
}
