package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qrdocs/deposit-system/internal/core/domain"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&domain.ValidationError{Missing: []string{"phone"}}, http.StatusBadRequest},
		{&domain.CapacityError{Category: domain.CategoryCards, Limit: 100}, http.StatusConflict},
		{domain.ErrBadSecret, http.StatusUnauthorized},
		{domain.ErrUserBlocked, http.StatusUnauthorized},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrDocumentNotFound, http.StatusNotFound},
		{domain.ErrDuplicateUsername, http.StatusConflict},
		{domain.ErrUnknownRole, http.StatusBadRequest},
		{domain.ErrUnknownCategory, http.StatusBadRequest},
		{echo.NewHTTPError(http.StatusTeapot, "kettle"), http.StatusTeapot},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := handleError(t, tc.err)
		if rec.Code != tc.want {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
		}
	}
}

func TestErrorHandler_LockoutCarriesRemainingSeconds(t *testing.T) {
	rec := handleError(t, &domain.LockedOutError{RemainingSeconds: 37})

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"remaining_seconds":37`) {
		t.Fatalf("remaining_seconds missing: %s", rec.Body.String())
	}
}

func TestErrorHandler_HidesInternalCauses(t *testing.T) {
	rec := handleError(t, errors.New("mongo: primary stepped down"))

	if strings.Contains(rec.Body.String(), "mongo") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Fatalf("generic message missing: %s", rec.Body.String())
	}
}
