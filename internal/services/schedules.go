package services

import (
	"errors"
	"time"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScheduleService manages planned vaccinations and derives follow-up
// schedules from completed ones.
type ScheduleService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewScheduleService creates a ScheduleService.
func NewScheduleService(db *gorm.DB, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{db: db, logger: logger}
}

// CreateScheduleInput carries the attributes for a manually created schedule.
type CreateScheduleInput struct {
	RoosterID     uint64
	VaccineTypeID uint64
	ScheduledDate models.Date
	Priority      models.SchedulePriority
	Notes         string
}

// Create plans a future vaccination. At most one active schedule may exist
// per (rooster, vaccine type); the unique index on active_key turns a second
// attempt into Conflict.
func (s *ScheduleService) Create(in CreateScheduleInput) (*models.VaccinationSchedule, error) {
	if in.RoosterID == 0 {
		return nil, invalid("rooster_id", "must be a positive integer")
	}
	today := models.DateOf(time.Now())
	if in.ScheduledDate.DaysUntil(today) <= 0 {
		return nil, invalid("scheduled_date", "must be after today")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityNormal
	}
	if !in.Priority.Valid() {
		return nil, invalidf("priority", "must be one of: %s", models.PermittedSchedulePriorities())
	}

	var schedule models.VaccinationSchedule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var vt models.VaccineType
		if err := tx.First(&vt, in.VaccineTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("vaccine type", in.VaccineTypeID)
			}
			return err
		}
		if !vt.IsActive {
			return invalid("vaccine_type_id", "vaccine type is inactive")
		}

		key := models.ScheduleActiveKey(in.RoosterID, in.VaccineTypeID)
		schedule = models.VaccinationSchedule{
			RoosterID:     in.RoosterID,
			VaccineTypeID: in.VaccineTypeID,
			ScheduledDate: in.ScheduledDate,
			Priority:      in.Priority,
			Notes:         in.Notes,
			ActiveKey:     &key,
		}
		if err := tx.Create(&schedule).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("an active schedule already exists for this rooster and vaccine type")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ScheduleFilter selects schedules by rooster, completion state and date
// window.
type ScheduleFilter struct {
	RoosterID *uint64
	Completed *bool
	From      *models.Date
	To        *models.Date
}

// List returns schedules matching the filter, soonest first.
func (s *ScheduleService) List(filter ScheduleFilter) ([]models.VaccinationSchedule, error) {
	query := s.db.Order("scheduled_date asc")
	if filter.RoosterID != nil {
		query = query.Where("rooster_id = ?", *filter.RoosterID)
	}
	if filter.Completed != nil {
		query = query.Where("is_completed = ?", *filter.Completed)
	}
	if filter.From != nil {
		query = query.Where("scheduled_date >= ?", filter.From.Time)
	}
	if filter.To != nil {
		query = query.Where("scheduled_date <= ?", filter.To.Time)
	}
	var schedules []models.VaccinationSchedule
	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Complete links a schedule to the record that fulfilled it and, when the
// vaccine type carries a protection window, derives the follow-up schedule
// inside the same transaction.
func (s *ScheduleService) Complete(scheduleID, recordID uint64) (*models.VaccinationSchedule, error) {
	var schedule models.VaccinationSchedule
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&schedule, scheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("schedule", scheduleID)
			}
			return err
		}
		if schedule.IsCompleted {
			return &IllegalTransitionError{From: "completed", To: "completed"}
		}

		var record models.VaccinationRecord
		if err := tx.First(&record, recordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("vaccination record", recordID)
			}
			return err
		}
		if record.RoosterID != schedule.RoosterID {
			return &MismatchError{Field: "rooster_id"}
		}
		if record.VaccineTypeID != schedule.VaccineTypeID {
			return &MismatchError{Field: "vaccine_type_id"}
		}

		now := time.Now()
		schedule.IsCompleted = true
		schedule.CompletedAt = &now
		schedule.VaccinationRecordID = &record.ID
		schedule.ActiveKey = nil
		if err := tx.Save(&schedule).Error; err != nil {
			return err
		}

		var vt models.VaccineType
		if err := tx.First(&vt, schedule.VaccineTypeID).Error; err != nil {
			return err
		}
		return s.EnsureFollowUp(tx, &record, &vt)
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// EnsureFollowUp inserts the next schedule for a record whose vaccine type
// has a protection window. An explicit next_dose_date on the record
// overrides application_date + protection days. Collisions with an existing
// active schedule are logged, never surfaced: the single-active invariant
// wins.
func (s *ScheduleService) EnsureFollowUp(tx *gorm.DB, record *models.VaccinationRecord, vt *models.VaccineType) error {
	if vt.ProtectionDurationDays == nil {
		return nil
	}

	due := record.ApplicationDate.AddDays(*vt.ProtectionDurationDays)
	if record.NextDoseDate != nil {
		due = *record.NextDoseDate
	}

	key := models.ScheduleActiveKey(record.RoosterID, record.VaccineTypeID)
	var existing models.VaccinationSchedule
	err := tx.Where("active_key = ?", key).First(&existing).Error
	switch {
	case err == nil:
		diff := existing.ScheduledDate.DaysUntil(due)
		if diff >= -1 && diff <= 1 {
			// Close enough to the computed date: reuse it.
			s.logger.Debug("follow-up schedule reused",
				zap.Uint64("schedule_id", existing.ID),
				zap.String("scheduled_date", existing.ScheduledDate.String()))
			return nil
		}
		s.logger.Info("follow-up schedule skipped, active schedule exists",
			zap.Uint64("rooster_id", record.RoosterID),
			zap.Uint64("vaccine_type_id", record.VaccineTypeID),
			zap.String("existing_date", existing.ScheduledDate.String()),
			zap.String("computed_date", due.String()))
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	followUp := models.VaccinationSchedule{
		RoosterID:     record.RoosterID,
		VaccineTypeID: record.VaccineTypeID,
		ScheduledDate: due,
		Priority:      models.PriorityNormal,
		ActiveKey:     &key,
	}
	if err := tx.Create(&followUp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent writer inserted the pair's schedule first.
			s.logger.Info("follow-up schedule lost insert race",
				zap.Uint64("rooster_id", record.RoosterID),
				zap.Uint64("vaccine_type_id", record.VaccineTypeID))
			return nil
		}
		return err
	}

	s.logger.Info("follow-up schedule created",
		zap.Uint64("schedule_id", followUp.ID),
		zap.Uint64("rooster_id", record.RoosterID),
		zap.Uint64("vaccine_type_id", record.VaccineTypeID),
		zap.String("scheduled_date", due.String()))
	return nil
}
