package services

import (
	"testing"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		delta     int
		alertType models.AlertType
		emit      bool
	}{
		{8, "", false},
		{30, "", false},
		{7, models.AlertProxima, true},
		{1, models.AlertProxima, true},
		{0, models.AlertRecordatorio, true},
		{-1, models.AlertVencida, true},
		{-3, models.AlertVencida, true},
		{-4, models.AlertUrgente, true},
		{-30, models.AlertUrgente, true},
	}
	for _, tc := range tests {
		alertType, emit := bandFor(tc.delta)
		assert.Equal(t, tc.emit, emit, "delta %d", tc.delta)
		assert.Equal(t, tc.alertType, alertType, "delta %d", tc.delta)
	}
}

func TestSweepEmitsOverdueAlert(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	// Follow-up landed on 2025-04-01; one day past due.
	result, err := env.alerts.Sweep(models.NewDate(2025, 4, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.False(t, result.Skipped)

	alerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertVencida, alerts[0].AlertType)
	assert.Equal(t, -1, alerts[0].DaysRemaining)
	assert.Equal(t, "2025-04-01", alerts[0].ScheduledDate.String())
}

func TestSweepEscalatesToUrgente(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	_, err := env.alerts.Sweep(models.NewDate(2025, 4, 2))
	require.NoError(t, err)

	result, err := env.alerts.Sweep(models.NewDate(2025, 4, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Escalated)

	alerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertUrgente, alerts[0].AlertType)
	assert.Equal(t, -9, alerts[0].DaysRemaining)

	// The urgent band drags the schedule priority up with it.
	var schedule models.VaccinationSchedule
	require.NoError(t, env.db.Where("is_completed = ?", false).First(&schedule).Error)
	assert.Equal(t, models.PriorityUrgente, schedule.Priority)
}

func TestSweepIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))
	// Due 2025-04-01 (vencida) and 2025-04-05 (proxima), both in band.
	env.mustCreateRecord(t, 2, vt.ID, models.NewDate(2025, 1, 5))

	today := models.NewDate(2025, 4, 2)
	first, err := env.alerts.Sweep(today)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Created)

	firstAlerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, firstAlerts, 2)

	second, err := env.alerts.Sweep(today)
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Zero(t, second.Updated)

	secondAlerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	assert.Equal(t, len(firstAlerts), len(secondAlerts))
	for i := range firstAlerts {
		assert.Equal(t, firstAlerts[i].ID, secondAlerts[i].ID)
		assert.Equal(t, firstAlerts[i].AlertType, secondAlerts[i].AlertType)
		assert.Equal(t, firstAlerts[i].DaysRemaining, secondAlerts[i].DaysRemaining)
	}
}

func TestSweepNeverDowngradesUrgency(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	days := []models.Date{
		models.NewDate(2025, 3, 27), // proxima
		models.NewDate(2025, 4, 1),  // recordatorio
		models.NewDate(2025, 4, 3),  // vencida
		models.NewDate(2025, 4, 20), // urgente
	}
	lastRank := -1
	for _, today := range days {
		_, err := env.alerts.Sweep(today)
		require.NoError(t, err)

		alerts, err := env.alerts.List(AlertFilter{})
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		rank := urgencyRank(alerts[0].AlertType)
		assert.GreaterOrEqual(t, rank, lastRank, "today %s", today)
		lastRank = rank
	}
}

func TestSweepIgnoresFarFutureSchedules(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	result, err := env.alerts.Sweep(models.NewDate(2025, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Scanned)
	assert.Zero(t, result.Created)

	alerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestSweepSkipsCompletedSchedules(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	today := models.NewDate(2025, 4, 2)
	_, err := env.alerts.Sweep(today)
	require.NoError(t, err)

	// Booster applied and the overdue schedule completed.
	var schedule models.VaccinationSchedule
	require.NoError(t, env.db.Where("is_completed = ?", false).First(&schedule).Error)
	booster := env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 4, 10))
	_, err = env.schedule.Complete(schedule.ID, booster.ID)
	require.NoError(t, err)

	// The old alert survives but the next sweep emits nothing for the
	// completed schedule; the new follow-up is months out.
	result, err := env.alerts.Sweep(models.NewDate(2025, 4, 11))
	require.NoError(t, err)
	assert.Zero(t, result.Created)
	assert.Zero(t, result.Updated)

	alerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "2025-04-01", alerts[0].ScheduledDate.String())
}

func TestDismissedAlertIsNeverRevived(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	today := models.NewDate(2025, 4, 2)
	_, err := env.alerts.Sweep(today)
	require.NoError(t, err)

	alerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	dismissed, err := env.alerts.Dismiss(alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, dismissed.IsDismissed)

	result, err := env.alerts.Sweep(models.NewDate(2025, 4, 10))
	require.NoError(t, err)
	assert.Zero(t, result.Created)

	live, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	assert.Empty(t, live)

	// Kept for audit.
	all, err := env.alerts.List(AlertFilter{IncludeDismissed: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRescheduleCountsAsNewTuple(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	today := models.NewDate(2025, 4, 2)
	_, err := env.alerts.Sweep(today)
	require.NoError(t, err)

	alerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	_, err = env.alerts.Dismiss(alerts[0].ID)
	require.NoError(t, err)

	// Pushing the schedule out changes the tuple; a fresh alert may fire.
	var schedule models.VaccinationSchedule
	require.NoError(t, env.db.Where("is_completed = ?", false).First(&schedule).Error)
	require.NoError(t, env.db.Model(&schedule).
		Update("scheduled_date", models.NewDate(2025, 4, 15).Time).Error)

	result, err := env.alerts.Sweep(models.NewDate(2025, 4, 16))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	live, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "2025-04-15", live[0].ScheduledDate.String())
}

func TestSweepNotifiesOnCreateAndEscalation(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))

	_, err := env.alerts.Sweep(models.NewDate(2025, 4, 2))
	require.NoError(t, err)
	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, models.AlertVencida, env.notifier.events[0].AlertType)

	// Same band, no fresh event.
	_, err = env.alerts.Sweep(models.NewDate(2025, 4, 3))
	require.NoError(t, err)
	assert.Len(t, env.notifier.events, 1)

	// Escalation to urgente notifies again.
	_, err = env.alerts.Sweep(models.NewDate(2025, 4, 10))
	require.NoError(t, err)
	require.Len(t, env.notifier.events, 2)
	assert.Equal(t, models.AlertUrgente, env.notifier.events[1].AlertType)
}

func TestMarkSeenAndDismissLifecycle(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)
	env.mustCreateRecord(t, 1, vt.ID, models.NewDate(2025, 1, 1))
	_, err := env.alerts.Sweep(models.NewDate(2025, 4, 2))
	require.NoError(t, err)

	alerts, err := env.alerts.List(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	seen, err := env.alerts.MarkSeen(alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, seen.IsSeen)

	// Marking again is a no-op.
	seen, err = env.alerts.MarkSeen(alerts[0].ID)
	require.NoError(t, err)
	assert.True(t, seen.IsSeen)

	_, err = env.alerts.MarkSeen(9999)
	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)

	_, err = env.alerts.Dismiss(9999)
	require.ErrorAs(t, err, &notFoundErr)
}

func TestSweepBatchesLargeScheduleSets(t *testing.T) {
	env := newTestEnv(t)
	vt := env.mustCreateVaccineType(t, "Newcastle", intPtr(90), true)

	// Batch size 2 forces several passes over 5 schedules.
	env.alerts = NewAlertService(env.db, zap.NewNop(), env.notifier, 2)
	for rooster := uint64(1); rooster <= 5; rooster++ {
		env.seedActiveSchedule(t, rooster, vt.ID, models.NewDate(2025, 4, 1))
	}

	result, err := env.alerts.Sweep(models.NewDate(2025, 4, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Scanned)
	assert.Equal(t, 5, result.Created)
}
