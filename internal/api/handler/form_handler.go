package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrdocs/deposit-system/internal/core/ports"
	"github.com/qrdocs/deposit-system/internal/infrastructure/export"
)

// FormHandler serves printable client forms.
type FormHandler struct {
	ledger ports.LedgerService
}

func NewFormHandler(ledger ports.LedgerService) *FormHandler {
	return &FormHandler{ledger: ledger}
}

// Blank handles GET /v1/forms/blank, an empty template for manual filling.
//
// @Summary      Printable blank client form
// @Tags         forms
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /v1/forms/blank [get]
func (h *FormHandler) Blank(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}
	return c.String(http.StatusOK, export.RenderForm(nil))
}

// ForDocument handles GET /v1/documents/code/:code/form, the form prefilled
// from an active document.
//
// @Summary      Printable client form for a document
// @Tags         forms
// @Produce      plain
// @Security     BearerAuth
// @Param        code  path      string  true  "Document code"
// @Success      200   {string}  string
// @Failure      404   {object}  errorResponse
// @Router       /v1/documents/code/{code}/form [get]
func (h *FormHandler) ForDocument(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	doc, err := h.ledger.LookupByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, export.RenderForm(doc))
}
