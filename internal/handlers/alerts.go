package handlers

import (
	"time"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"
	"github.com/acairampoma/gallerapp-back-sub001/internal/services"
	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// AlertHandler handles vaccination alert requests.
type AlertHandler struct {
	Service *services.AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(service *services.AlertService) *AlertHandler {
	return &AlertHandler{Service: service}
}

// ListAlerts handles listing alerts filtered by rooster and type.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	filter := services.AlertFilter{
		IncludeDismissed: c.Query("include_dismissed") == "true",
	}

	roosterID, ok := parseOptionalIDQuery(c, "rooster_id")
	if !ok {
		return
	}
	filter.RoosterID = roosterID

	if typeStr := c.Query("alert_type"); typeStr != "" {
		alertType := models.AlertType(typeStr)
		if !alertType.Valid() {
			utils.BadRequest(c, "alert_type must be one of: "+models.PermittedAlertTypes())
			return
		}
		filter.AlertType = &alertType
	}

	alerts, err := h.Service.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccination alerts fetched successfully", alerts)
}

// MarkAlertSeen handles flagging an alert as surfaced to the user.
func (h *AlertHandler) MarkAlertSeen(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	alert, err := h.Service.MarkSeen(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Alert marked as seen", alert)
}

// DismissAlert handles retiring an alert. Dismissed alerts are kept for
// audit and never revived by the sweep.
func (h *AlertHandler) DismissAlert(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	alert, err := h.Service.Dismiss(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Alert dismissed", alert)
}

// SweepAlerts handles running the alert derivation pass. An optional
// today=YYYY-MM-DD query overrides the reference date, which is how an
// external cron replays or backfills a day.
func (h *AlertHandler) SweepAlerts(c *gin.Context) {
	today := models.DateOf(time.Now())
	if override, ok := parseOptionalDateQuery(c, "today"); !ok {
		return
	} else if override != nil {
		today = *override
	}

	result, err := h.Service.Sweep(today)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Alert sweep completed", result)
}
