package services

import (
	"errors"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VaccineTypeService manages the vaccine catalogue.
type VaccineTypeService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewVaccineTypeService creates a VaccineTypeService.
func NewVaccineTypeService(db *gorm.DB, logger *zap.Logger) *VaccineTypeService {
	return &VaccineTypeService{db: db, logger: logger}
}

// CreateVaccineTypeInput carries the attributes for a new catalogue entry.
type CreateVaccineTypeInput struct {
	Name                   string
	DiseaseName            string
	Description            string
	ApplicationMethod      models.ApplicationMethod
	StandardDose           string
	ProtectionDurationDays *int
	MinimumAgeDays         *int
	IsMandatory            bool
	ColorCode              string
}

func (in *CreateVaccineTypeInput) validate() error {
	if len(in.Name) < 1 || len(in.Name) > 100 {
		return invalid("name", "must be between 1 and 100 characters")
	}
	if len(in.DiseaseName) < 1 || len(in.DiseaseName) > 100 {
		return invalid("disease_name", "must be between 1 and 100 characters")
	}
	if !in.ApplicationMethod.Valid() {
		return invalidf("application_method", "must be one of: %s", models.PermittedApplicationMethods())
	}
	if len(in.StandardDose) > 20 {
		return invalid("standard_dose", "must be at most 20 characters")
	}
	if in.ProtectionDurationDays != nil && *in.ProtectionDurationDays <= 0 {
		return invalid("protection_duration_days", "must be greater than 0")
	}
	if in.MinimumAgeDays != nil && *in.MinimumAgeDays < 0 {
		return invalid("minimum_age_days", "must not be negative")
	}
	if in.ColorCode != "" && !models.ValidColorCode(in.ColorCode) {
		return invalid("color_code", "must match #RRGGBB")
	}
	return nil
}

// Create registers a new vaccine type. The name is globally unique; a
// duplicate surfaces as Conflict.
func (s *VaccineTypeService) Create(in CreateVaccineTypeInput) (*models.VaccineType, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	vt := models.VaccineType{
		Name:                   in.Name,
		DiseaseName:            in.DiseaseName,
		Description:            in.Description,
		ApplicationMethod:      in.ApplicationMethod,
		StandardDose:           in.StandardDose,
		ProtectionDurationDays: in.ProtectionDurationDays,
		MinimumAgeDays:         in.MinimumAgeDays,
		IsMandatory:            in.IsMandatory,
		ColorCode:              in.ColorCode,
		IsActive:               true,
	}

	if err := s.db.Create(&vt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("vaccine type name already exists")
		}
		return nil, err
	}
	return &vt, nil
}

// UpdateVaccineTypeInput is the patch for an existing catalogue entry. Nil
// fields are left untouched.
type UpdateVaccineTypeInput struct {
	Name                   *string
	DiseaseName            *string
	Description            *string
	ApplicationMethod      *models.ApplicationMethod
	StandardDose           *string
	ProtectionDurationDays *int
	MinimumAgeDays         *int
	IsMandatory            *bool
	ColorCode              *string
	IsActive               *bool
}

// Update patches a vaccine type.
func (s *VaccineTypeService) Update(id uint64, in UpdateVaccineTypeInput) (*models.VaccineType, error) {
	var vt models.VaccineType
	if err := s.db.First(&vt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("vaccine type", id)
		}
		return nil, err
	}

	if in.Name != nil {
		if len(*in.Name) < 1 || len(*in.Name) > 100 {
			return nil, invalid("name", "must be between 1 and 100 characters")
		}
		vt.Name = *in.Name
	}
	if in.DiseaseName != nil {
		if len(*in.DiseaseName) < 1 || len(*in.DiseaseName) > 100 {
			return nil, invalid("disease_name", "must be between 1 and 100 characters")
		}
		vt.DiseaseName = *in.DiseaseName
	}
	if in.Description != nil {
		vt.Description = *in.Description
	}
	if in.ApplicationMethod != nil {
		if !in.ApplicationMethod.Valid() {
			return nil, invalidf("application_method", "must be one of: %s", models.PermittedApplicationMethods())
		}
		vt.ApplicationMethod = *in.ApplicationMethod
	}
	if in.StandardDose != nil {
		if len(*in.StandardDose) > 20 {
			return nil, invalid("standard_dose", "must be at most 20 characters")
		}
		vt.StandardDose = *in.StandardDose
	}
	if in.ProtectionDurationDays != nil {
		if *in.ProtectionDurationDays <= 0 {
			return nil, invalid("protection_duration_days", "must be greater than 0")
		}
		vt.ProtectionDurationDays = in.ProtectionDurationDays
	}
	if in.MinimumAgeDays != nil {
		if *in.MinimumAgeDays < 0 {
			return nil, invalid("minimum_age_days", "must not be negative")
		}
		vt.MinimumAgeDays = in.MinimumAgeDays
	}
	if in.IsMandatory != nil {
		vt.IsMandatory = *in.IsMandatory
	}
	if in.ColorCode != nil {
		if *in.ColorCode != "" && !models.ValidColorCode(*in.ColorCode) {
			return nil, invalid("color_code", "must match #RRGGBB")
		}
		vt.ColorCode = *in.ColorCode
	}
	if in.IsActive != nil {
		vt.IsActive = *in.IsActive
	}

	if err := s.db.Save(&vt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("vaccine type name already exists")
		}
		return nil, err
	}
	return &vt, nil
}

// List returns the catalogue, excluding inactive entries unless asked.
func (s *VaccineTypeService) List(includeInactive bool) ([]models.VaccineType, error) {
	query := s.db.Order("name asc")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	var types []models.VaccineType
	if err := query.Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// Get fetches one vaccine type by id.
func (s *VaccineTypeService) Get(id uint64) (*models.VaccineType, error) {
	var vt models.VaccineType
	if err := s.db.First(&vt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("vaccine type", id)
		}
		return nil, err
	}
	return &vt, nil
}

// Deactivate soft-deletes a vaccine type by flipping is_active. Historical
// records and schedules keep referencing it; only new ones are refused.
func (s *VaccineTypeService) Deactivate(id uint64) (*models.VaccineType, error) {
	var vt models.VaccineType
	if err := s.db.First(&vt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("vaccine type", id)
		}
		return nil, err
	}
	if !vt.IsActive {
		return &vt, nil
	}
	vt.IsActive = false
	if err := s.db.Save(&vt).Error; err != nil {
		return nil, err
	}
	s.logger.Info("vaccine type deactivated", zap.Uint64("vaccine_type_id", id), zap.String("name", vt.Name))
	return &vt, nil
}
