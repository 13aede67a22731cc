package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// UserHandler handles directory management requests.
type UserHandler struct {
	directory ports.DirectoryService
}

func NewUserHandler(directory ports.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role"     validate:"required"`
	// Secret is accepted for form compatibility but never stored; logins
	// check the role-level shared secret only.
	Secret string `json:"secret"`
}

type reassignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type userResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
}

type userListResponse struct {
	Items []userResponse `json:"items"`
	Total int            `json:"total"`
}

// Create handles POST /v1/users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.directory.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Role:     domain.Role(req.Role),
		Secret:   req.Secret,
		Actor:    actor,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Block handles POST /v1/users/:username/block.
//
// @Summary      Block a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/users/{username}/block [post]
func (h *UserHandler) Block(c echo.Context) error {
	return h.setBlocked(c, true)
}

// Unblock handles POST /v1/users/:username/unblock.
//
// @Summary      Unblock a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/users/{username}/unblock [post]
func (h *UserHandler) Unblock(c echo.Context) error {
	return h.setBlocked(c, false)
}

func (h *UserHandler) setBlocked(c echo.Context, blocked bool) error {
	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.directory.SetBlocked(c.Request().Context(), actor, c.Param("username"), blocked)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ReassignRole handles PUT /v1/users/:username/role.
//
// @Summary      Reassign a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string               true  "Username"
// @Param        body      body      reassignRoleRequest  true  "New role"
// @Success      200       {object}  userResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/users/{username}/role [put]
func (h *UserHandler) ReassignRole(c echo.Context) error {
	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reassignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.directory.ReassignRole(c.Request().Context(), actor, c.Param("username"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.directory.ListUsers(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	items := make([]userResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, userListResponse{Items: items, Total: len(items)})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		Username:  u.Username,
		Role:      string(u.Role),
		Blocked:   u.Blocked,
		CreatedAt: u.CreatedAt,
	}
}
