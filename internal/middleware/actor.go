package middleware

import (
	"strconv"

	"github.com/acairampoma/gallerapp-back-sub001/internal/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actorID"

// ActorMiddleware extracts the opaque acting user from the X-User-ID header.
// The backend does not authenticate; it only requires the id to be a
// positive integer supplied by the caller.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			utils.BadRequest(c, "X-User-ID header required")
			c.Abort()
			return
		}
		actorID, err := strconv.ParseUint(header, 10, 64)
		if err != nil || actorID == 0 {
			utils.BadRequest(c, "X-User-ID must be a positive integer")
			c.Abort()
			return
		}

		c.Set(actorKey, actorID)
		c.Next()
	}
}

// GetActorIDFromContext returns the acting user id set by ActorMiddleware.
func GetActorIDFromContext(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return 0, false
	}
	actorID, ok := value.(uint64)
	return actorID, ok
}
