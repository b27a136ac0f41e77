package models

import (
	"regexp"
	"time"
)

// colorCodeRe validates hex color codes like #1A2B3C.
var colorCodeRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// VaccineType is the catalogue entry for an administrable vaccine.
type VaccineType struct {
	ID                     uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                   string            `gorm:"size:100;uniqueIndex;not null" json:"name"`
	DiseaseName            string            `gorm:"size:100;not null" json:"disease_name"`
	Description            string            `gorm:"type:text" json:"description,omitempty"`
	ApplicationMethod      ApplicationMethod `gorm:"size:20;not null" json:"application_method"`
	StandardDose           string            `gorm:"size:20" json:"standard_dose,omitempty"`
	ProtectionDurationDays *int              `json:"protection_duration_days,omitempty"`
	MinimumAgeDays         *int              `json:"minimum_age_days,omitempty"`
	IsMandatory            bool              `gorm:"default:false" json:"is_mandatory"`
	ColorCode              string            `gorm:"size:7" json:"color_code,omitempty"`
	IsActive               bool              `gorm:"default:true" json:"is_active"`
	CreatedAt              time.Time         `json:"created_at"`
}

// ValidColorCode reports whether s is a #RRGGBB hex color.
func ValidColorCode(s string) bool {
	return colorCodeRe.MatchString(s)
}
