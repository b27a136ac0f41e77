package handlers

import (
	"strconv"

	"github.com/acairampoma/gallerapp-back-sub001/internal/models"
	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

// parseOptionalIDQuery reads an optional positive integer query parameter.
func parseOptionalIDQuery(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.BadRequest(c, name+" must be a positive integer")
		return nil, false
	}
	return &id, true
}

// parseOptionalDateQuery reads an optional YYYY-MM-DD query parameter.
func parseOptionalDateQuery(c *gin.Context, name string) (*models.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	date, err := models.ParseDate(raw)
	if err != nil {
		utils.BadRequest(c, name+": "+err.Error())
		return nil, false
	}
	return &date, true
}

// parseOptionalBoolQuery reads an optional true/false query parameter.
func parseOptionalBoolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		utils.BadRequest(c, name+" must be true or false")
		return nil, false
	}
	return &value, true
}
