package handlers

import (
	"github.com/acairampoma/gallerapp-back-sub001/internal/models"
	"github.com/acairampoma/gallerapp-back-sub001/internal/services"
	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// VaccineTypeHandler handles vaccine catalogue requests.
type VaccineTypeHandler struct {
	Service *services.VaccineTypeService
}

// NewVaccineTypeHandler creates a new VaccineTypeHandler.
func NewVaccineTypeHandler(service *services.VaccineTypeService) *VaccineTypeHandler {
	return &VaccineTypeHandler{Service: service}
}

// CreateVaccineTypeRequest represents the request body for registering a vaccine type.
type CreateVaccineTypeRequest struct {
	Name                   string `json:"name" binding:"required,min=1,max=100"`
	DiseaseName            string `json:"disease_name" binding:"required,min=1,max=100"`
	Description            string `json:"description"`
	ApplicationMethod      string `json:"application_method" binding:"required"`
	StandardDose           string `json:"standard_dose" binding:"max=20"`
	ProtectionDurationDays *int   `json:"protection_duration_days"`
	MinimumAgeDays         *int   `json:"minimum_age_days"`
	IsMandatory            bool   `json:"is_mandatory"`
	ColorCode              string `json:"color_code"`
}

// CreateVaccineType handles registering a new vaccine type.
func (h *VaccineTypeHandler) CreateVaccineType(c *gin.Context) {
	var req CreateVaccineTypeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	vt, err := h.Service.Create(services.CreateVaccineTypeInput{
		Name:                   req.Name,
		DiseaseName:            req.DiseaseName,
		Description:            req.Description,
		ApplicationMethod:      models.ApplicationMethod(req.ApplicationMethod),
		StandardDose:           req.StandardDose,
		ProtectionDurationDays: req.ProtectionDurationDays,
		MinimumAgeDays:         req.MinimumAgeDays,
		IsMandatory:            req.IsMandatory,
		ColorCode:              req.ColorCode,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Vaccine type created successfully", vt)
}

// UpdateVaccineTypeRequest represents the patch body for a vaccine type.
type UpdateVaccineTypeRequest struct {
	Name                   *string `json:"name"`
	DiseaseName            *string `json:"disease_name"`
	Description            *string `json:"description"`
	ApplicationMethod      *string `json:"application_method"`
	StandardDose           *string `json:"standard_dose"`
	ProtectionDurationDays *int    `json:"protection_duration_days"`
	MinimumAgeDays         *int    `json:"minimum_age_days"`
	IsMandatory            *bool   `json:"is_mandatory"`
	ColorCode              *string `json:"color_code"`
	IsActive               *bool   `json:"is_active"`
}

// UpdateVaccineType handles patching an existing vaccine type.
func (h *VaccineTypeHandler) UpdateVaccineType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateVaccineTypeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	input := services.UpdateVaccineTypeInput{
		Name:                   req.Name,
		DiseaseName:            req.DiseaseName,
		Description:            req.Description,
		StandardDose:           req.StandardDose,
		ProtectionDurationDays: req.ProtectionDurationDays,
		MinimumAgeDays:         req.MinimumAgeDays,
		IsMandatory:            req.IsMandatory,
		ColorCode:              req.ColorCode,
		IsActive:               req.IsActive,
	}
	if req.ApplicationMethod != nil {
		method := models.ApplicationMethod(*req.ApplicationMethod)
		input.ApplicationMethod = &method
	}

	vt, err := h.Service.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Vaccine type updated successfully", vt)
}

// ListVaccineTypes handles listing the catalogue.
func (h *VaccineTypeHandler) ListVaccineTypes(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	types, err := h.Service.List(includeInactive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccine types fetched successfully", types)
}

// GetVaccineType handles fetching a single vaccine type.
func (h *VaccineTypeHandler) GetVaccineType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vt, err := h.Service.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccine type fetched successfully", vt)
}

// DeactivateVaccineType handles soft deactivation. The row stays to back
// historical records and schedules.
func (h *VaccineTypeHandler) DeactivateVaccineType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	vt, err := h.Service.Deactivate(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Vaccine type deactivated successfully", vt)
}
