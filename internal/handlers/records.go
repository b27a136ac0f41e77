package handlers

import (
	"github.com/acairampoma/gallerapp-back-sub001/internal/middleware"
	"github.com/acairampoma/gallerapp-back-sub001/internal/models"
	"github.com/acairampoma/gallerapp-back-sub001/internal/services"
	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RecordHandler handles vaccination record requests.
type RecordHandler struct {
	Service *services.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(service *services.RecordService) *RecordHandler {
	return &RecordHandler{Service: service}
}

// CreateRecordRequest represents the request body for recording a
// vaccination. Dates travel as YYYY-MM-DD strings and money as decimal
// strings.
type CreateRecordRequest struct {
	RoosterID         uint64  `json:"rooster_id" binding:"required"`
	VaccineTypeID     uint64  `json:"vaccine_type_id" binding:"required"`
	ApplicationDate   string  `json:"application_date" binding:"required"`
	VeterinarianName  string  `json:"veterinarian_name"`
	ClinicName        string  `json:"clinic_name"`
	MedicationName    string  `json:"medication_name"`
	DoseApplied       string  `json:"dose_applied"`
	BatchNumber       string  `json:"batch_number"`
	ApplicationMethod string  `json:"application_method"`
	RoosterWeightKg   *string `json:"rooster_weight_kg"`
	Cost              *string `json:"cost"`
	CertificateNumber string  `json:"certificate_number"`
	NextDoseDate      *string `json:"next_dose_date"`
	ImmunityStatus    string  `json:"immunity_status"`
	AdverseReaction   string  `json:"adverse_reaction"`
	Observations      string  `json:"observations"`
	Tags              string  `json:"tags" binding:"max=255"`
	Status            string  `json:"status"`
}

// CreateRecord handles recording a vaccination event for the acting user.
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	actorID, exists := middleware.GetActorIDFromContext(c)
	if !exists {
		utils.BadRequest(c, "Acting user not found in context")
		return
	}

	var req CreateRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	applicationDate, err := models.ParseDate(req.ApplicationDate)
	if err != nil {
		utils.BadRequest(c, "application_date: "+err.Error())
		return
	}
	nextDoseDate, ok := parseOptionalDate(c, "next_dose_date", req.NextDoseDate)
	if !ok {
		return
	}
	weight, ok := parseOptionalDecimal(c, "rooster_weight_kg", req.RoosterWeightKg)
	if !ok {
		return
	}
	cost, ok := parseOptionalDecimal(c, "cost", req.Cost)
	if !ok {
		return
	}

	record, err := h.Service.Create(services.CreateRecordInput{
		RoosterID:         req.RoosterID,
		VaccineTypeID:     req.VaccineTypeID,
		ApplicationDate:   applicationDate,
		VeterinarianName:  req.VeterinarianName,
		ClinicName:        req.ClinicName,
		MedicationName:    req.MedicationName,
		DoseApplied:       req.DoseApplied,
		BatchNumber:       req.BatchNumber,
		ApplicationMethod: models.ApplicationMethod(req.ApplicationMethod),
		RoosterWeightKg:   weight,
		Cost:              cost,
		CertificateNumber: req.CertificateNumber,
		NextDoseDate:      nextDoseDate,
		ImmunityStatus:    models.ImmunityStatus(req.ImmunityStatus),
		AdverseReaction:   models.AdverseReaction(req.AdverseReaction),
		Observations:      req.Observations,
		Tags:              req.Tags,
		Status:            models.RecordStatus(req.Status),
	}, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Vaccination record created successfully", record)
}

// UpdateRecordRequest represents the patch body for a record. Only the
// mutable subset is accepted; everything else is frozen at creation.
type UpdateRecordRequest struct {
	ImmunityStatus  *string `json:"immunity_status"`
	AdverseReaction *string `json:"adverse_reaction"`
	Observations    *string `json:"observations"`
	NextDoseDate    *string `json:"next_dose_date"`
	Status          *string `json:"status"`
}

// UpdateRecord handles patching the mutable subset of a record.
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	input := services.UpdateRecordInput{
		Observations: req.Observations,
	}
	if req.ImmunityStatus != nil {
		status := models.ImmunityStatus(*req.ImmunityStatus)
		input.ImmunityStatus = &status
	}
	if req.AdverseReaction != nil {
		reaction := models.AdverseReaction(*req.AdverseReaction)
		input.AdverseReaction = &reaction
	}
	if req.Status != nil {
		status := models.RecordStatus(*req.Status)
		input.Status = &status
	}
	nextDoseDate, ok := parseOptionalDate(c, "next_dose_date", req.NextDoseDate)
	if !ok {
		return
	}
	input.NextDoseDate = nextDoseDate

	record, err := h.Service.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Vaccination record updated successfully", record)
}

// GetRecord handles fetching a single record.
func (h *RecordHandler) GetRecord(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.Service.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccination record fetched successfully", record)
}

// ListRecords handles the vaccination history listing with optional
// rooster, vaccine type, status and date-window filters.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	filter := services.RecordFilter{}

	roosterID, ok := parseOptionalIDQuery(c, "rooster_id")
	if !ok {
		return
	}
	filter.RoosterID = roosterID

	vaccineTypeID, ok := parseOptionalIDQuery(c, "vaccine_type_id")
	if !ok {
		return
	}
	filter.VaccineTypeID = vaccineTypeID

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.RecordStatus(statusStr)
		if !status.Valid() {
			utils.BadRequest(c, "status must be one of: "+models.PermittedRecordStatuses())
			return
		}
		filter.Status = &status
	}

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

	records, err := h.Service.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccination records fetched successfully", records)
}

// QuickCreateRequest represents the request body for bulk vaccination: one
// applied record per (rooster, vaccine type) pair, all or nothing.
type QuickCreateRequest struct {
	RoosterIDs      []uint64 `json:"rooster_ids" binding:"required,min=1"`
	VaccineTypeIDs  []uint64 `json:"vaccine_type_ids" binding:"required,min=1"`
	ApplicationDate string   `json:"application_date" binding:"required"`
}

// QuickCreate handles bulk vaccination of several roosters at once.
func (h *RecordHandler) QuickCreate(c *gin.Context) {
	actorID, exists := middleware.GetActorIDFromContext(c)
	if !exists {
		utils.BadRequest(c, "Acting user not found in context")
		return
	}

	var req QuickCreateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	applicationDate, err := models.ParseDate(req.ApplicationDate)
	if err != nil {
		utils.BadRequest(c, "application_date: "+err.Error())
		return
	}

	records, err := h.Service.QuickCreate(req.RoosterIDs, req.VaccineTypeIDs, applicationDate, actorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Vaccination records created successfully", records)
}

// parseOptionalDate parses a nullable YYYY-MM-DD body field, responding with
// BadRequest when malformed.
func parseOptionalDate(c *gin.Context, field string, value *string) (*models.Date, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	date, err := models.ParseDate(*value)
	if err != nil {
		utils.BadRequest(c, field+": "+err.Error())
		return nil, false
	}
	return &date, true
}

// parseOptionalDecimal parses a nullable decimal-string body field.
func parseOptionalDecimal(c *gin.Context, field string, value *string) (*decimal.Decimal, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(*value)
	if err != nil {
		utils.BadRequest(c, field+" must be a decimal number string")
		return nil, false
	}
	return &d, true
}
