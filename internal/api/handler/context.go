package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

// ctxIdentity extracts the session claims injected by the Auth middleware
// and performs a fast-fail check before any service call: the role must be a
// known one (presence proves the middleware ran, validity proves the token
// was minted by this system).
func ctxIdentity(c echo.Context) (domain.Role, string, error) {
	roleClaim, _ := c.Get("role").(string)
	role := domain.Role(roleClaim)
	if !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get("username").(string)
	return role, username, nil
}
