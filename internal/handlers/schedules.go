package handlers

import (
	"github.com/acairampoma/gallerapp-back-sub001/internal/models"
	"github.com/acairampoma/gallerapp-back-sub001/internal/services"
	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler handles vaccination schedule requests.
type ScheduleHandler struct {
	Service *services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(service *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: service}
}

// CreateScheduleRequest represents the request body for planning a
// vaccination.
type CreateScheduleRequest struct {
	RoosterID     uint64 `json:"rooster_id" binding:"required"`
	VaccineTypeID uint64 `json:"vaccine_type_id" binding:"required"`
	ScheduledDate string `json:"scheduled_date" binding:"required"`
	Priority      string `json:"priority"`
	Notes         string `json:"notes"`
}

// CreateSchedule handles planning a future vaccination.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	scheduledDate, err := models.ParseDate(req.ScheduledDate)
	if err != nil {
		utils.BadRequest(c, "scheduled_date: "+err.Error())
		return
	}

	schedule, err := h.Service.Create(services.CreateScheduleInput{
		RoosterID:     req.RoosterID,
		VaccineTypeID: req.VaccineTypeID,
		ScheduledDate: scheduledDate,
		Priority:      models.SchedulePriority(req.Priority),
		Notes:         req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Vaccination schedule created successfully", schedule)
}

// CompleteScheduleRequest links a schedule to the record that fulfilled it.
type CompleteScheduleRequest struct {
	VaccinationRecordID uint64 `json:"vaccination_record_id" binding:"required"`
}

// CompleteSchedule handles marking a schedule as fulfilled by a record.
func (h *ScheduleHandler) CompleteSchedule(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CompleteScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	schedule, err := h.Service.Complete(id, req.VaccinationRecordID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Vaccination schedule completed successfully", schedule)
}

// ListSchedules handles listing schedules filtered by rooster, completion
// state and date window.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	filter := services.ScheduleFilter{}

	roosterID, ok := parseOptionalIDQuery(c, "rooster_id")
	if !ok {
		return
	}
	filter.RoosterID = roosterID

	completed, ok := parseOptionalBoolQuery(c, "completed")
	if !ok {
		return
	}
	filter.Completed = completed

	from, ok := parseOptionalDateQuery(c, "from")
	if !ok {
		return
	}
	filter.From = from

	to, ok := parseOptionalDateQuery(c, "to")
	if !ok {
		return
	}
	filter.To = to

	schedules, err := h.Service.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccination schedules fetched successfully", schedules)
}
