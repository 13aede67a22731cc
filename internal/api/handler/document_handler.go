package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/qrdocs/deposit-system/internal/api/metrics"
	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// DocumentHandler handles HTTP requests for ledger operations.
type DocumentHandler struct {
	ledger   ports.LedgerService
	renderer ports.CodeRenderer
}

func NewDocumentHandler(ledger ports.LedgerService, renderer ports.CodeRenderer) *DocumentHandler {
	return &DocumentHandler{ledger: ledger, renderer: renderer}
}

// Create handles POST /v1/documents.
//
// @Summary      Check in a new document
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDocumentRequest  true  "Client form"
// @Success      201   {object}  documentResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/documents [post]
func (h *DocumentHandler) Create(c echo.Context) error {
	role, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	doc, err := h.ledger.Create(c.Request().Context(), ports.CreateDocumentInput{
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		Phone:           req.Phone,
		Email:           req.Email,
		ItemDescription: req.ItemDescription,
		Category:        domain.Category(req.Category),
		DepositAmount:   req.DepositAmount,
		PickupAmount:    req.PickupAmount,
		PickupDate:      req.PickupDate,
		Role:            role,
		Username:        username,
	})
	if err != nil {
		var capErr *domain.CapacityError
		if errors.As(err, &capErr) {
			metrics.CapacityRejectionsTotal.WithLabelValues(string(capErr.Category)).Inc()
		}
		return err
	}

	metrics.DocumentsCreatedTotal.WithLabelValues(string(doc.Category)).Inc()
	return c.JSON(http.StatusCreated, toDocumentResponse(doc))
}

// List handles GET /v1/documents?category=.
//
// @Summary      List active documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter to one category"
// @Success      200       {object}  documentListResponse
// @Router       /v1/documents [get]
func (h *DocumentHandler) List(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	docs, err := h.ledger.ListByCategory(c.Request().Context(), domain.Category(c.QueryParam("category")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocumentListResponse(docs))
}

// LookupByCode handles GET /v1/documents/code/:code for manual or
// camera-assisted code entry. Archived documents are not found here.
//
// @Summary      Find an active document by code
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        code  path      string  true  "Document code (e.g. CAR-0001)"
// @Success      200   {object}  documentResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/documents/code/{code} [get]
func (h *DocumentHandler) LookupByCode(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	doc, err := h.ledger.LookupByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// Issue handles POST /v1/documents/:id/issue.
//
// @Summary      Issue a document, moving it to the archive
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  documentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/documents/{id}/issue [post]
func (h *DocumentHandler) Issue(c echo.Context) error {
	role, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	doc, err := h.ledger.Issue(c.Request().Context(), c.Param("id"), role)
	if err != nil {
		return err
	}

	metrics.DocumentsIssuedTotal.WithLabelValues(string(doc.Category)).Inc()
	return c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// Delete handles DELETE /v1/documents/:id, active documents only.
//
// @Summary      Permanently delete an active document
// @Tags         documents
// @Security     BearerAuth
// @Param        id   path  string  true  "Document id"
// @Success      204  "No Content"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	role, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.ledger.DeleteActive(c.Request().Context(), c.Param("id"), role); err != nil {
		return err
	}

	metrics.DocumentsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListArchive handles GET /v1/archive. The archive secret travels in the
// X-Archive-Secret header on top of the session token.
//
// @Summary      List archived documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        X-Archive-Secret  header    string  true  "Reserved archive secret"
// @Success      200  {object}  documentListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/archive [get]
func (h *DocumentHandler) ListArchive(c echo.Context) error {
	role, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	docs, err := h.ledger.ListArchive(c.Request().Context(), ports.ArchiveQuery{
		Role:          role,
		ArchiveSecret: c.Request().Header.Get("X-Archive-Secret"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDocumentListResponse(docs))
}

// CodeImage handles GET /v1/documents/:code/qr, rendering the code as a
// scannable PNG. The code must belong to an active document.
//
// @Summary      Render a document code as a QR image
// @Tags         documents
// @Produce      png
// @Security     BearerAuth
// @Param        code  path   string  true   "Document code"
// @Param        size  query  int     false  "Image size in pixels"
// @Success      200  {file}    binary
// @Failure      404  {object}  errorResponse
// @Router       /v1/documents/{code}/qr [get]
func (h *DocumentHandler) CodeImage(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	doc, err := h.ledger.LookupByCode(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}

	size, _ := strconv.Atoi(c.QueryParam("size"))
	png, err := h.renderer.Render(doc.Code, size)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
