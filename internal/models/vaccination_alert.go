package models

import (
	"fmt"
	"time"
)

// VaccinationAlert is a derived reminder on a schedule. Dismissed alerts are
// retained for audit and never revived.
//
// LiveKey is "<rooster_id>:<vaccine_type_id>:<scheduled_date>" while the
// alert is live and NULL once dismissed, so the single-live-alert-per-tuple
// invariant lives in a unique index rather than application code.
type VaccinationAlert struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoosterID     uint64    `gorm:"index;not null" json:"rooster_id"`
	VaccineTypeID uint64    `gorm:"index;not null" json:"vaccine_type_id"`
	AlertType     AlertType `gorm:"size:20;not null" json:"alert_type"`
	ScheduledDate Date      `gorm:"not null" json:"scheduled_date"`
	DaysRemaining int       `json:"days_remaining"`
	IsSeen        bool      `gorm:"default:false" json:"is_seen"`
	IsDismissed   bool      `gorm:"default:false" json:"is_dismissed"`
	LiveKey       *string   `gorm:"size:80;uniqueIndex" json:"-"`
	CreatedAt     time.Time `json:"created_at"`

	// Relation
	VaccineType VaccineType `gorm:"foreignKey:VaccineTypeID" json:"-"`
}

// AlertLiveKey builds the uniqueness key for a live (non-dismissed) alert.
func AlertLiveKey(roosterID, vaccineTypeID uint64, scheduledDate Date) string {
	return fmt.Sprintf("%d:%d:%s", roosterID, vaccineTypeID, scheduledDate)
}
