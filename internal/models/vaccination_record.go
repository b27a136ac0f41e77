package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VaccinationRecord is a vaccination event that occurred, is pending, or was
// cancelled. Records are never deleted; cancellation is a status transition.
type VaccinationRecord struct {
	ID                uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	RoosterID         uint64            `gorm:"index;not null" json:"rooster_id"`
	VaccineTypeID     uint64            `gorm:"index;not null" json:"vaccine_type_id"`
	ApplicationDate   Date              `gorm:"not null" json:"application_date"`
	VeterinarianName  string            `gorm:"size:100" json:"veterinarian_name,omitempty"`
	ClinicName        string            `gorm:"size:100" json:"clinic_name,omitempty"`
	MedicationName    string            `gorm:"size:100" json:"medication_name,omitempty"`
	DoseApplied       string            `gorm:"size:50" json:"dose_applied,omitempty"`
	BatchNumber       string            `gorm:"size:50" json:"batch_number,omitempty"`
	ApplicationMethod ApplicationMethod `gorm:"size:20" json:"application_method,omitempty"`
	RoosterWeightKg   *decimal.Decimal  `gorm:"type:decimal(5,2)" json:"rooster_weight_kg,omitempty"`
	Cost              *decimal.Decimal  `gorm:"type:decimal(10,2)" json:"cost,omitempty"`
	CertificateNumber string            `gorm:"size:50" json:"certificate_number,omitempty"`
	NextDoseDate      *Date             `json:"next_dose_date,omitempty"`
	ImmunityStatus    ImmunityStatus    `gorm:"size:30;default:'pendiente'" json:"immunity_status"`
	AdverseReaction   AdverseReaction   `gorm:"size:30;default:'ninguna'" json:"adverse_reaction"`
	Observations      string            `gorm:"type:text" json:"observations,omitempty"`
	Tags              string            `gorm:"size:255" json:"tags,omitempty"`
	Status            RecordStatus      `gorm:"size:20;default:'aplicada'" json:"status"`
	UserID            uint64            `gorm:"index;not null" json:"user_id"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	// Relation
	VaccineType VaccineType `gorm:"foreignKey:VaccineTypeID" json:"-"`
}
