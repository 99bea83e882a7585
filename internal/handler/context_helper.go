package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ward-roster-api/internal/middleware"
	"github.com/noah-isme/ward-roster-api/internal/models"
)

// claimsFromContext returns the JWT claims set by the auth middleware,
// or nil on unauthenticated routes.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	if value, ok := c.Get(middleware.ContextUserKey); ok {
		if claims, ok := value.(*models.JWTClaims); ok {
			return claims
		}
	}
	return nil
}
