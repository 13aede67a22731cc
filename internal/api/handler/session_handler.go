package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrdocs/deposit-system/internal/api/metrics"
	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// SessionHandler handles login and logout.
type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type loginRequest struct {
	Role     string `json:"role"     validate:"required"`
	Username string `json:"username" validate:"required"`
	Secret   string `json:"secret"   validate:"required"`
}

type privilegedLoginRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
}

// Login authenticates an ordinary role through the directory path.
//
// @Summary      Log in with a role, username and secret
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), domain.Role(req.Role), req.Username, req.Secret)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure", "directory").Inc()
		return loginError(err)
	}

	metrics.LoginsTotal.WithLabelValues("success", "directory").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// LoginPrivileged authenticates through the dual-secret path: the secret
// alone selects one of the two privileged identities.
//
// @Summary      Log in with a privileged secret
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      privilegedLoginRequest  true  "Privileged secret"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/session/login/privileged [post]
func (h *SessionHandler) LoginPrivileged(c echo.Context) error {
	var req privilegedLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.LoginPrivileged(c.Request().Context(), req.Secret)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure", "privileged").Inc()
		return loginError(err)
	}

	metrics.LoginsTotal.WithLabelValues("success", "privileged").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout acknowledges the end of a session. Tokens are stateless; lockout
// state deliberately survives logout.
//
// @Summary      Log out
// @Tags         session
// @Success      204  "No Content"
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// loginError collapses the three authentication failures into one uniform
// 401 so the login form cannot be used to probe the directory. Lockout
// rejections pass through with their remaining-seconds payload.
func loginError(err error) error {
	var locked *domain.LockedOutError
	if errors.As(err, &locked) {
		metrics.LockoutsTotal.Inc()
		return err
	}
	if errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrUserBlocked) ||
		errors.Is(err, domain.ErrBadSecret) {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
	}
	return err
}

func toSessionResponse(s *ports.Session) sessionResponse {
	return sessionResponse{Token: s.Token, Role: string(s.Role), Username: s.Username}
}
