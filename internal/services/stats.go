package services

import (
	"math"
	"time"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsService aggregates vaccination activity, spend and compliance.
// Only applied records count; pending and cancelled ones are excluded.
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a StatsService.
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// MonthlyCount is one point of the monthly trend.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// VaccinationStats summarizes applied vaccinations for a rooster or the
// whole fleet over a window.
type VaccinationStats struct {
	TotalVaccinations     int                           `json:"total_vaccinations"`
	VaccinesByType        map[string]int                `json:"vaccines_by_type"`
	MonthlyTrend          []MonthlyCount                `json:"monthly_trend"`
	TotalCost             decimal.Decimal               `json:"total_cost"`
	AverageCostPerVaccine decimal.Decimal               `json:"average_cost_per_vaccine"`
	ProtectionStatus      map[models.ImmunityStatus]int `json:"protection_status"`
}

// Stats computes the vaccination summary over [from, to]. A nil roosterID
// means the whole fleet.
func (s *StatsService) Stats(roosterID *uint64, from, to models.Date) (*VaccinationStats, error) {
	query := s.db.Preload("VaccineType").
		Where("status = ?", models.RecordAplicada).
		Where("application_date >= ? AND application_date <= ?", from.Time, to.Time)
	if roosterID != nil {
		query = query.Where("rooster_id = ?", *roosterID)
	}
	var records []models.VaccinationRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	stats := &VaccinationStats{
		TotalVaccinations: len(records),
		VaccinesByType:    make(map[string]int),
		MonthlyTrend:      zeroFilledMonths(from, to),
		TotalCost:         decimal.Zero,
		ProtectionStatus:  make(map[models.ImmunityStatus]int),
	}

	monthIndex := make(map[string]int, len(stats.MonthlyTrend))
	for i, m := range stats.MonthlyTrend {
		monthIndex[m.Month] = i
	}

	// Most recent applied record per (rooster, vaccine type) drives the
	// protection status breakdown.
	type pair struct{ rooster, vaccineType uint64 }
	latest := make(map[pair]*models.VaccinationRecord)

	for i := range records {
		r := &records[i]
		stats.VaccinesByType[r.VaccineType.Name]++
		if idx, ok := monthIndex[r.ApplicationDate.Format("2006-01")]; ok {
			stats.MonthlyTrend[idx].Count++
		}
		if r.Cost != nil {
			stats.TotalCost = stats.TotalCost.Add(*r.Cost)
		}

		key := pair{r.RoosterID, r.VaccineTypeID}
		current, ok := latest[key]
		if !ok || r.ApplicationDate.After(current.ApplicationDate.Time) ||
			(r.ApplicationDate.Equal(current.ApplicationDate.Time) && r.ID > current.ID) {
			latest[key] = r
		}
	}

	for _, r := range latest {
		stats.ProtectionStatus[r.ImmunityStatus]++
	}

	if stats.TotalVaccinations > 0 {
		stats.AverageCostPerVaccine = stats.TotalCost.
			Div(decimal.NewFromInt(int64(stats.TotalVaccinations))).
			Round(2)
	} else {
		stats.AverageCostPerVaccine = decimal.Zero
	}

	return stats, nil
}

// zeroFilledMonths lists every year-month covered by [from, to], in order.
func zeroFilledMonths(from, to models.Date) []MonthlyCount {
	var months []MonthlyCount
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		months = append(months, MonthlyCount{Month: cursor.Format("2006-01")})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// ComplianceReport grades a rooster against the vaccine catalogue.
// Mandatory vaccines weigh double in the overall figure.
type ComplianceReport struct {
	RoosterID                   uint64  `json:"rooster_id"`
	MandatoryVaccinesCompliance float64 `json:"mandatory_vaccines_compliance"`
	OptionalVaccinesCompliance  float64 `json:"optional_vaccines_compliance"`
	OverallCompliance           float64 `json:"overall_compliance"`
	UpcomingDue                 int     `json:"upcoming_due"`
	OverdueCount                int     `json:"overdue_count"`
}

// Compliance builds the report for one rooster as of today. ageDays is the
// rooster's age when the caller knows it; without it every vaccine type is
// treated as age-applicable (the rooster itself lives in a foreign service).
func (s *StatsService) Compliance(roosterID uint64, ageDays *int, today models.Date) (*ComplianceReport, error) {
	if roosterID == 0 {
		return nil, invalid("rooster_id", "must be a positive integer")
	}

	var types []models.VaccineType
	if err := s.db.Where("is_active = ?", true).Find(&types).Error; err != nil {
		return nil, err
	}

	var records []models.VaccinationRecord
	err := s.db.
		Where("rooster_id = ? AND status = ?", roosterID, models.RecordAplicada).
		Order("application_date asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	// Ordered ascending, so the last write per type wins.
	latestByType := make(map[uint64]*models.VaccinationRecord)
	for i := range records {
		latestByType[records[i].VaccineTypeID] = &records[i]
	}

	var mandatoryTotal, mandatoryOK, optionalTotal, optionalOK int
	for i := range types {
		vt := &types[i]
		if ageDays != nil && vt.MinimumAgeDays != nil && *ageDays < *vt.MinimumAgeDays {
			continue
		}
		covered := isProtected(latestByType[vt.ID], vt, today)
		if vt.IsMandatory {
			mandatoryTotal++
			if covered {
				mandatoryOK++
			}
		} else {
			optionalTotal++
			if covered {
				optionalOK++
			}
		}
	}

	report := &ComplianceReport{
		RoosterID:                   roosterID,
		MandatoryVaccinesCompliance: fraction(mandatoryOK, mandatoryTotal),
		OptionalVaccinesCompliance:  fraction(optionalOK, optionalTotal),
	}

	// Weighted mean, mandatory counting double. A category with no
	// applicable vaccine types stays out of the mean entirely.
	weight := 0.0
	sum := 0.0
	if mandatoryTotal > 0 {
		weight += 2
		sum += 2 * report.MandatoryVaccinesCompliance
	}
	if optionalTotal > 0 {
		weight++
		sum += report.OptionalVaccinesCompliance
	}
	if weight > 0 {
		report.OverallCompliance = round2(sum / weight)
	}

	var schedules []models.VaccinationSchedule
	err = s.db.
		Where("rooster_id = ? AND is_completed = ?", roosterID, false).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	for _, schedule := range schedules {
		delta := schedule.ScheduledDate.DaysUntil(today)
		switch {
		case delta > 0 && delta <= 14:
			report.UpcomingDue++
		case delta < 0:
			report.OverdueCount++
		}
	}

	return report, nil
}

// isProtected reports whether the most recent applied record still covers
// the rooster: either the protection window reaches past today or the
// veterinarian marked the rooster protegido.
func isProtected(record *models.VaccinationRecord, vt *models.VaccineType, today models.Date) bool {
	if record == nil {
		return false
	}
	if record.ImmunityStatus == models.ImmunityProtegido {
		return true
	}
	if vt.ProtectionDurationDays == nil {
		return false
	}
	expiry := record.ApplicationDate.AddDays(*vt.ProtectionDurationDays)
	return expiry.DaysUntil(today) > 0
}

func fraction(ok, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(ok) / float64(total))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
