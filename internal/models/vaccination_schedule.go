package models

import (
	"fmt"
	"time"
)

// VaccinationSchedule is a planned future vaccination. Expired but
// uncompleted schedules are kept to drive overdue alerts.
//
// ActiveKey is "<rooster_id>:<vaccine_type_id>" while the schedule is active
// and NULL once completed; its unique index makes the database enforce the
// single-active-schedule-per-pair invariant (MySQL unique indexes ignore
// NULLs).
type VaccinationSchedule struct {
	ID                  uint64           `gorm:"primaryKey;autoIncrement" json:"id"`
	RoosterID           uint64           `gorm:"index;not null" json:"rooster_id"`
	VaccineTypeID       uint64           `gorm:"index;not null" json:"vaccine_type_id"`
	ScheduledDate       Date             `gorm:"not null;index" json:"scheduled_date"`
	IsReminderSent      bool             `gorm:"default:false" json:"is_reminder_sent"`
	Priority            SchedulePriority `gorm:"size:20;default:'normal'" json:"priority"`
	IsCompleted         bool             `gorm:"default:false" json:"is_completed"`
	CompletedAt         *time.Time       `json:"completed_at,omitempty"`
	VaccinationRecordID *uint64          `json:"vaccination_record_id,omitempty"`
	Notes               string           `gorm:"type:text" json:"notes,omitempty"`
	ActiveKey           *string          `gorm:"size:64;uniqueIndex" json:"-"`
	CreatedAt           time.Time        `json:"created_at"`

	// Relations
	VaccineType       VaccineType        `gorm:"foreignKey:VaccineTypeID" json:"-"`
	VaccinationRecord *VaccinationRecord `gorm:"foreignKey:VaccinationRecordID" json:"-"`
}

// ScheduleActiveKey builds the uniqueness key for an active schedule.
func ScheduleActiveKey(roosterID, vaccineTypeID uint64) string {
	return fmt.Sprintf("%d:%d", roosterID, vaccineTypeID)
}
