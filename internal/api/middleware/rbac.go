package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// RequireCapability rejects requests whose session role lacks the given
// capability. This is route-level coarse gating; the services re-check the
// matrix as a hard precondition before mutating anything.
func RequireCapability(cap domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !domain.Role(role).Can(cap) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}
			return next(c)
		}
	}
}
