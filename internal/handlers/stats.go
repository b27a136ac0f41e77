package handlers

import (
	"strconv"
	"time"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"
	"github.com/acairampoma/gallerapp-back-sub001/internal/services"
	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler handles vaccination statistics and compliance requests.
type StatsHandler struct {
	Service *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{Service: service}
}

// GetStats handles the vaccination summary for a rooster or the whole
// fleet over a [from, to] window. The window defaults to the last year.
func (h *StatsHandler) GetStats(c *gin.Context) {
	roosterID, ok := parseOptionalIDQuery(c, "rooster_id")
	if !ok {
		return
	}

	today := models.DateOf(time.Now())
	from := today.AddDays(-365)
	to := today

	if override, ok := parseOptionalDateQuery(c, "from"); !ok {
		return
	} else if override != nil {
		from = *override
	}
	if override, ok := parseOptionalDateQuery(c, "to"); !ok {
		return
	} else if override != nil {
		to = *override
	}
	if to.Before(from.Time) {
		utils.BadRequest(c, "to must not be before from")
		return
	}

	stats, err := h.Service.Stats(roosterID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccination stats fetched successfully", stats)
}

// GetCompliance handles the per-rooster compliance report. An optional
// age_days query tells the report which vaccine types apply to this rooster;
// without it every active type counts.
func (h *StatsHandler) GetCompliance(c *gin.Context) {
	roosterID, ok := parseIDParam(c, "roosterID")
	if !ok {
		return
	}

	var ageDays *int
	if raw := c.Query("age_days"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 {
			utils.BadRequest(c, "age_days must be a non-negative integer")
			return
		}
		ageDays = &age
	}

	today := models.DateOf(time.Now())
	if override, ok := parseOptionalDateQuery(c, "today"); !ok {
		return
	} else if override != nil {
		today = *override
	}

	report, err := h.Service.Compliance(roosterID, ageDays, today)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Compliance report fetched successfully", report)
}
