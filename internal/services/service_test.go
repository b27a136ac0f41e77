package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

// captureNotifier records every alert event the sweep emits.
type captureNotifier struct {
	events []AlertEvent
}

func (n *captureNotifier) Notify(event AlertEvent) {
	n.events = append(n.events, event)
}

type testEnv struct {
	db       *gorm.DB
	types    *VaccineTypeService
	records  *RecordService
	schedule *ScheduleService
	alerts   *AlertService
	stats    *StatsService
	notifier *captureNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()
	notifier := &captureNotifier{}
	scheduleService := NewScheduleService(db, log)
	return &testEnv{
		db:       db,
		types:    NewVaccineTypeService(db, log),
		records:  NewRecordService(db, log, scheduleService),
		schedule: scheduleService,
		alerts:   NewAlertService(db, log, notifier, 1000),
		stats:    NewStatsService(db),
		notifier: notifier,
	}
}

func intPtr(v int) *int { return &v }

// mustCreateVaccineType registers a catalogue entry through the service.
func (e *testEnv) mustCreateVaccineType(t *testing.T, name string, protectionDays *int, mandatory bool) *models.VaccineType {
	t.Helper()
	vt, err := e.types.Create(CreateVaccineTypeInput{
		Name:                   name,
		DiseaseName:            "Enfermedad de " + name,
		ApplicationMethod:      models.MethodOcular,
		ProtectionDurationDays: protectionDays,
		IsMandatory:            mandatory,
	})
	require.NoError(t, err)
	return vt
}

// mustCreateRecord records an applied vaccination through the service.
func (e *testEnv) mustCreateRecord(t *testing.T, roosterID, vaccineTypeID uint64, date models.Date) *models.VaccinationRecord {
	t.Helper()
	record, err := e.records.Create(CreateRecordInput{
		RoosterID:       roosterID,
		VaccineTypeID:   vaccineTypeID,
		ApplicationDate: date,
	}, 7)
	require.NoError(t, err)
	return record
}

// seedActiveSchedule inserts an active schedule row directly, bypassing the
// future-date rule so tests can stage past and present dates.
func (e *testEnv) seedActiveSchedule(t *testing.T, roosterID, vaccineTypeID uint64, date models.Date) *models.VaccinationSchedule {
	t.Helper()
	key := models.ScheduleActiveKey(roosterID, vaccineTypeID)
	schedule := models.VaccinationSchedule{
		RoosterID:     roosterID,
		VaccineTypeID: vaccineTypeID,
		ScheduledDate: date,
		Priority:      models.PriorityNormal,
		ActiveKey:     &key,
	}
	require.NoError(t, e.db.Create(&schedule).Error)
	return &schedule
}
