package services

import (
	"errors"
	"time"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var maxRoosterWeightKg = decimal.RequireFromString("999.99")

// RecordService manages vaccination records. Records are append-mostly: only
// a small mutable subset of fields may change after creation, and a record is
// cancelled, never deleted.
type RecordService struct {
	db        *gorm.DB
	logger    *zap.Logger
	schedules *ScheduleService
}

// NewRecordService creates a RecordService.
func NewRecordService(db *gorm.DB, logger *zap.Logger, schedules *ScheduleService) *RecordService {
	return &RecordService{db: db, logger: logger, schedules: schedules}
}

// CreateRecordInput carries the attributes for a new vaccination record.
type CreateRecordInput struct {
	RoosterID         uint64
	VaccineTypeID     uint64
	ApplicationDate   models.Date
	VeterinarianName  string
	ClinicName        string
	MedicationName    string
	DoseApplied       string
	BatchNumber       string
	ApplicationMethod models.ApplicationMethod
	RoosterWeightKg   *decimal.Decimal
	Cost              *decimal.Decimal
	CertificateNumber string
	NextDoseDate      *models.Date
	ImmunityStatus    models.ImmunityStatus
	AdverseReaction   models.AdverseReaction
	Observations      string
	Tags              string
	Status            models.RecordStatus
}

func (in *CreateRecordInput) applyDefaults() {
	if in.Status == "" {
		in.Status = models.RecordAplicada
	}
	if in.ImmunityStatus == "" {
		in.ImmunityStatus = models.ImmunityPendiente
	}
	if in.AdverseReaction == "" {
		in.AdverseReaction = models.ReactionNinguna
	}
}

func (in *CreateRecordInput) validate(today models.Date) error {
	if in.RoosterID == 0 {
		return invalid("rooster_id", "must be a positive integer")
	}
	if in.ApplicationDate.IsZero() {
		return invalid("application_date", "is required")
	}
	if !in.Status.Valid() {
		return invalidf("status", "must be one of: %s", models.PermittedRecordStatuses())
	}
	if in.Status == models.RecordAplicada && in.ApplicationDate.DaysUntil(today) > 0 {
		return invalid("application_date", "must not be in the future for an applied record")
	}
	if in.ApplicationMethod != "" && !in.ApplicationMethod.Valid() {
		return invalidf("application_method", "must be one of: %s", models.PermittedApplicationMethods())
	}
	if !in.ImmunityStatus.Valid() {
		return invalidf("immunity_status", "must be one of: %s", models.PermittedImmunityStatuses())
	}
	if !in.AdverseReaction.Valid() {
		return invalidf("adverse_reaction", "must be one of: %s", models.PermittedAdverseReactions())
	}
	if in.RoosterWeightKg != nil {
		if in.RoosterWeightKg.IsNegative() || in.RoosterWeightKg.GreaterThan(maxRoosterWeightKg) {
			return invalid("rooster_weight_kg", "must be between 0 and 999.99")
		}
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return invalid("cost", "must not be negative")
	}
	if in.NextDoseDate != nil && in.NextDoseDate.DaysUntil(in.ApplicationDate) <= 0 {
		return invalid("next_dose_date", "must be after application_date")
	}
	if len(in.Tags) > 255 {
		return invalid("tags", "must be at most 255 characters")
	}
	return nil
}

// Create records a vaccination event for an actor. An applied record on a
// vaccine type with a protection window also derives the follow-up schedule
// within the same transaction.
func (s *RecordService) Create(in CreateRecordInput, userID uint64) (*models.VaccinationRecord, error) {
	in.applyDefaults()
	if userID == 0 {
		return nil, invalid("user_id", "must be a positive integer")
	}
	if err := in.validate(models.DateOf(time.Now())); err != nil {
		return nil, err
	}

	var record models.VaccinationRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		vt, err := s.activeVaccineType(tx, in.VaccineTypeID)
		if err != nil {
			return err
		}

		record = models.VaccinationRecord{
			RoosterID:         in.RoosterID,
			VaccineTypeID:     in.VaccineTypeID,
			ApplicationDate:   in.ApplicationDate,
			VeterinarianName:  in.VeterinarianName,
			ClinicName:        in.ClinicName,
			MedicationName:    in.MedicationName,
			DoseApplied:       in.DoseApplied,
			BatchNumber:       in.BatchNumber,
			ApplicationMethod: in.ApplicationMethod,
			RoosterWeightKg:   in.RoosterWeightKg,
			Cost:              in.Cost,
			CertificateNumber: in.CertificateNumber,
			NextDoseDate:      in.NextDoseDate,
			ImmunityStatus:    in.ImmunityStatus,
			AdverseReaction:   in.AdverseReaction,
			Observations:      in.Observations,
			Tags:              in.Tags,
			Status:            in.Status,
			UserID:            userID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if record.Status == models.RecordAplicada {
			return s.schedules.EnsureFollowUp(tx, &record, vt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateRecordInput is the mutable subset of a record. Everything else is
// frozen at creation.
type UpdateRecordInput struct {
	ImmunityStatus  *models.ImmunityStatus
	AdverseReaction *models.AdverseReaction
	Observations    *string
	NextDoseDate    *models.Date
	Status          *models.RecordStatus
}

// Update patches the mutable subset of a record.
func (s *RecordService) Update(id uint64, in UpdateRecordInput) (*models.VaccinationRecord, error) {
	var record models.VaccinationRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("vaccination record", id)
			}
			return err
		}

		if in.ImmunityStatus != nil {
			if !in.ImmunityStatus.Valid() {
				return invalidf("immunity_status", "must be one of: %s", models.PermittedImmunityStatuses())
			}
			record.ImmunityStatus = *in.ImmunityStatus
		}
		if in.AdverseReaction != nil {
			if !in.AdverseReaction.Valid() {
				return invalidf("adverse_reaction", "must be one of: %s", models.PermittedAdverseReactions())
			}
			record.AdverseReaction = *in.AdverseReaction
		}
		if in.Observations != nil {
			record.Observations = *in.Observations
		}
		if in.NextDoseDate != nil {
			if in.NextDoseDate.DaysUntil(record.ApplicationDate) <= 0 {
				return invalid("next_dose_date", "must be after application_date")
			}
			record.NextDoseDate = in.NextDoseDate
		}
		if in.Status != nil {
			if !in.Status.Valid() {
				return invalidf("status", "must be one of: %s", models.PermittedRecordStatuses())
			}
			if *in.Status == models.RecordAplicada &&
				record.ApplicationDate.DaysUntil(models.DateOf(time.Now())) > 0 {
				return invalid("application_date", "must not be in the future for an applied record")
			}
			record.Status = *in.Status
		}

		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Get fetches one record by id.
func (s *RecordService) Get(id uint64) (*models.VaccinationRecord, error) {
	var record models.VaccinationRecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("vaccination record", id)
		}
		return nil, err
	}
	return &record, nil
}

// RecordFilter selects records by rooster, vaccine type, status and
// application-date window.
type RecordFilter struct {
	RoosterID     *uint64
	VaccineTypeID *uint64
	Status        *models.RecordStatus
	From          *models.Date
	To            *models.Date
}

// List returns the vaccination history matching the filter, newest first.
func (s *RecordService) List(filter RecordFilter) ([]models.VaccinationRecord, error) {
	query := s.db.Order("application_date desc")
	if filter.RoosterID != nil {
		query = query.Where("rooster_id = ?", *filter.RoosterID)
	}
	if filter.VaccineTypeID != nil {
		query = query.Where("vaccine_type_id = ?", *filter.VaccineTypeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("application_date >= ?", filter.From.Time)
	}
	if filter.To != nil {
		query = query.Where("application_date <= ?", filter.To.Time)
	}
	var records []models.VaccinationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// QuickCreate emits one applied record per (rooster, vaccine type) pair in a
// single all-or-nothing transaction. It does not dedupe against existing
// records for the same date; that is the caller's call.
func (s *RecordService) QuickCreate(roosterIDs, vaccineTypeIDs []uint64, applicationDate models.Date, userID uint64) ([]models.VaccinationRecord, error) {
	if userID == 0 {
		return nil, invalid("user_id", "must be a positive integer")
	}
	if len(roosterIDs) == 0 {
		return nil, invalid("rooster_ids", "must not be empty")
	}
	if len(vaccineTypeIDs) == 0 {
		return nil, invalid("vaccine_type_ids", "must not be empty")
	}
	for _, id := range roosterIDs {
		if id == 0 {
			return nil, invalid("rooster_ids", "must all be positive integers")
		}
	}
	today := models.DateOf(time.Now())
	if applicationDate.IsZero() {
		return nil, invalid("application_date", "is required")
	}
	if applicationDate.DaysUntil(today) > 0 {
		return nil, invalid("application_date", "must not be in the future for an applied record")
	}

	var records []models.VaccinationRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, vtID := range vaccineTypeIDs {
			vt, err := s.activeVaccineType(tx, vtID)
			if err != nil {
				return err
			}
			for _, roosterID := range roosterIDs {
				record := models.VaccinationRecord{
					RoosterID:       roosterID,
					VaccineTypeID:   vtID,
					ApplicationDate: applicationDate,
					ImmunityStatus:  models.ImmunityPendiente,
					AdverseReaction: models.ReactionNinguna,
					Status:          models.RecordAplicada,
					UserID:          userID,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
				if err := s.schedules.EnsureFollowUp(tx, &record, vt); err != nil {
					return err
				}
				records = append(records, record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quick vaccination applied",
		zap.Int("roosters", len(roosterIDs)),
		zap.Int("vaccine_types", len(vaccineTypeIDs)),
		zap.Int("records", len(records)))
	return records, nil
}

// activeVaccineType loads a vaccine type and refuses inactive ones for new
// references.
func (s *RecordService) activeVaccineType(tx *gorm.DB, id uint64) (*models.VaccineType, error) {
	var vt models.VaccineType
	if err := tx.First(&vt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("vaccine type", id)
		}
		return nil, err
	}
	if !vt.IsActive {
		return nil, invalid("vaccine_type_id", "vaccine type is inactive")
	}
	return &vt, nil
}
