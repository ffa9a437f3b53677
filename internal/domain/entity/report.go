package entity

import (
	"time"

	"github.com/google/uuid"
)

// Report represents a free-text clinical note. PatientName is not a foreign
// key into users; the subject is identified by name only, matching the
// intake form.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientName string    `gorm:"type:varchar(255);not null;index" json:"patient_name"`
	Details     string    `gorm:"type:text;not null" json:"details"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Author User `gorm:"foreignKey:CreatedBy" json:"author,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}
