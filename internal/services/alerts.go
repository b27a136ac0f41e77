package services

import (
	"errors"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sweepLockName = "alert-sweep"

// AlertService derives and manages vaccination alerts. The sweep is
// idempotent: running it any number of times with the same today and
// schedule set yields the same set of live alerts.
type AlertService struct {
	db        *gorm.DB
	logger    *zap.Logger
	notifier  Notifier
	batchSize int
}

// NewAlertService creates an AlertService. batchSize caps how many schedules
// a single sweep transaction covers and must be at most 1000.
func NewAlertService(db *gorm.DB, logger *zap.Logger, notifier Notifier, batchSize int) *AlertService {
	if batchSize < 1 || batchSize > 1000 {
		batchSize = 1000
	}
	return &AlertService{db: db, logger: logger, notifier: notifier, batchSize: batchSize}
}

// bandFor classifies a schedule by its signed distance in days from today.
// A schedule more than a week out gets no alert.
func bandFor(delta int) (models.AlertType, bool) {
	switch {
	case delta > 7:
		return "", false
	case delta > 0:
		return models.AlertProxima, true
	case delta == 0:
		return models.AlertRecordatorio, true
	case delta >= -3:
		return models.AlertVencida, true
	default:
		return models.AlertUrgente, true
	}
}

// urgencyRank orders alert types from least to most urgent so the sweep can
// tell an escalation from a refresh.
func urgencyRank(t models.AlertType) int {
	switch t {
	case models.AlertProxima:
		return 0
	case models.AlertRecordatorio:
		return 1
	case models.AlertVencida:
		return 2
	case models.AlertUrgente:
		return 3
	}
	return -1
}

// SweepResult summarizes one alert derivation pass.
type SweepResult struct {
	Scanned   int  `json:"scanned"`
	Created   int  `json:"created"`
	Updated   int  `json:"updated"`
	Escalated int  `json:"escalated"`
	Skipped   bool `json:"skipped"`
}

// Sweep walks every active schedule and upserts its alert for the given
// today. Overlapping sweeps are serialized with a named advisory lock; a
// sweep that cannot take the lock reports Skipped instead of racing.
func (s *AlertService) Sweep(today models.Date) (SweepResult, error) {
	result := SweepResult{}

	if locked, err := s.acquireLock(); err != nil {
		return result, err
	} else if !locked {
		s.logger.Warn("alert sweep already running, skipping")
		result.Skipped = true
		return result, nil
	}
	defer s.releaseLock()

	var cursor uint64
	for {
		var batch []models.VaccinationSchedule
		err := s.db.
			Where("is_completed = ? AND id > ?", false, cursor).
			Order("id asc").
			Limit(s.batchSize).
			Find(&batch).Error
		if err != nil {
			return result, err
		}
		if len(batch) == 0 {
			break
		}

		err = s.db.Transaction(func(tx *gorm.DB) error {
			for i := range batch {
				if err := s.sweepSchedule(tx, &batch[i], today, &result); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return result, err
		}

		result.Scanned += len(batch)
		cursor = batch[len(batch)-1].ID
		if len(batch) < s.batchSize {
			break
		}
	}

	s.logger.Info("alert sweep finished",
		zap.String("today", today.String()),
		zap.Int("scanned", result.Scanned),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("escalated", result.Escalated))
	return result, nil
}

func (s *AlertService) sweepSchedule(tx *gorm.DB, schedule *models.VaccinationSchedule, today models.Date, result *SweepResult) error {
	delta := schedule.ScheduledDate.DaysUntil(today)
	alertType, emit := bandFor(delta)
	if !emit {
		return nil
	}

	// The urgent band forces the schedule priority up. Priority never moves
	// back down, not even if the alert is later dismissed.
	if alertType == models.AlertUrgente && !schedule.Priority.AtLeast(models.PriorityUrgente) {
		schedule.Priority = models.PriorityUrgente
		if err := tx.Model(schedule).Update("priority", models.PriorityUrgente).Error; err != nil {
			return err
		}
		result.Escalated++
	}

	key := models.AlertLiveKey(schedule.RoosterID, schedule.VaccineTypeID, schedule.ScheduledDate)

	var alert models.VaccinationAlert
	err := tx.Where("live_key = ?", key).First(&alert).Error
	switch {
	case err == nil:
		if alert.AlertType == alertType && alert.DaysRemaining == delta {
			return nil
		}
		escalated := urgencyRank(alertType) > urgencyRank(alert.AlertType)
		alert.AlertType = alertType
		alert.DaysRemaining = delta
		if err := tx.Model(&alert).Updates(map[string]interface{}{
			"alert_type":     alertType,
			"days_remaining": delta,
		}).Error; err != nil {
			return err
		}
		result.Updated++
		if escalated {
			s.notifier.Notify(AlertEvent{AlertID: alert.ID, AlertType: alert.AlertType, ScheduledDate: alert.ScheduledDate})
		}
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	// Dismissed alerts stay dismissed; the sweep never revives the tuple.
	var dismissed int64
	err = tx.Model(&models.VaccinationAlert{}).
		Where("rooster_id = ? AND vaccine_type_id = ? AND scheduled_date = ? AND is_dismissed = ?",
			schedule.RoosterID, schedule.VaccineTypeID, schedule.ScheduledDate.Time, true).
		Count(&dismissed).Error
	if err != nil {
		return err
	}
	if dismissed > 0 {
		return nil
	}

	alert = models.VaccinationAlert{
		RoosterID:     schedule.RoosterID,
		VaccineTypeID: schedule.VaccineTypeID,
		AlertType:     alertType,
		ScheduledDate: schedule.ScheduledDate,
		DaysRemaining: delta,
		LiveKey:       &key,
	}
	if err := tx.Create(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another sweep got there first; its alert stands.
			return nil
		}
		return err
	}
	result.Created++
	s.notifier.Notify(AlertEvent{AlertID: alert.ID, AlertType: alert.AlertType, ScheduledDate: alert.ScheduledDate})
	return nil
}

// acquireLock takes the sweep's named advisory lock on MySQL. Other dialects
// (the in-memory test database) fall back to running unlocked.
func (s *AlertService) acquireLock() (bool, error) {
	if s.db.Dialector.Name() != "mysql" {
		return true, nil
	}
	var got int
	if err := s.db.Raw("SELECT GET_LOCK(?, 0)", sweepLockName).Scan(&got).Error; err != nil {
		return false, err
	}
	return got == 1, nil
}

func (s *AlertService) releaseLock() {
	if s.db.Dialector.Name() != "mysql" {
		return
	}
	if err := s.db.Exec("SELECT RELEASE_LOCK(?)", sweepLockName).Error; err != nil {
		s.logger.Error("failed to release sweep lock", zap.Error(err))
	}
}

// AlertFilter selects alerts by rooster and type. Dismissed alerts are kept
// for audit but hidden unless asked for.
type AlertFilter struct {
	RoosterID        *uint64
	AlertType        *models.AlertType
	IncludeDismissed bool
}

// List returns alerts matching the filter, most overdue first.
func (s *AlertService) List(filter AlertFilter) ([]models.VaccinationAlert, error) {
	query := s.db.Order("days_remaining asc")
	if filter.RoosterID != nil {
		query = query.Where("rooster_id = ?", *filter.RoosterID)
	}
	if filter.AlertType != nil {
		query = query.Where("alert_type = ?", *filter.AlertType)
	}
	if !filter.IncludeDismissed {
		query = query.Where("is_dismissed = ?", false)
	}
	var alerts []models.VaccinationAlert
	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkSeen flags an alert as surfaced to the user. Marking twice is a no-op.
func (s *AlertService) MarkSeen(id uint64) (*models.VaccinationAlert, error) {
	var alert models.VaccinationAlert
	if err := s.db.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("alert", id)
		}
		return nil, err
	}
	if alert.IsSeen {
		return &alert, nil
	}
	alert.IsSeen = true
	if err := s.db.Model(&alert).Update("is_seen", true).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// Dismiss retires an alert. The row is kept for audit and the sweep will not
// emit a replacement for the same (rooster, vaccine type, date) tuple.
func (s *AlertService) Dismiss(id uint64) (*models.VaccinationAlert, error) {
	var alert models.VaccinationAlert
	if err := s.db.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("alert", id)
		}
		return nil, err
	}
	if alert.IsDismissed {
		return &alert, nil
	}
	alert.IsDismissed = true
	alert.LiveKey = nil
	if err := s.db.Model(&alert).Updates(map[string]interface{}{
		"is_dismissed": true,
		"live_key":     nil,
	}).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}
