package handlers

import (
	"errors"

	"github.com/acairampoma/gallerapp-back-sub001/internal/services"
	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Invalid -> 400, NotFound -> 404, Conflict and IllegalTransition -> 409,
// Mismatch -> 422, anything else -> 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		invalidErr    *services.InvalidError
		notFoundErr   *services.NotFoundError
		conflictErr   *services.ConflictError
		transitionErr *services.IllegalTransitionError
		mismatchErr   *services.MismatchError
	)
	switch {
	case errors.As(err, &invalidErr):
		utils.BadRequest(c, err.Error())
	case errors.As(err, &notFoundErr):
		utils.NotFound(c, err.Error())
	case errors.As(err, &conflictErr):
		utils.Conflict(c, err.Error())
	case errors.As(err, &transitionErr):
		utils.Conflict(c, err.Error())
	case errors.As(err, &mismatchErr):
		utils.UnprocessableEntity(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}
