package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/qrdocs/deposit-system/internal/core/domain"
	"github.com/qrdocs/deposit-system/internal/core/ports"
)

// stubSessionService returns canned results for both login paths.
type stubSessionService struct {
	session *ports.Session
	err     error
}

func (s *stubSessionService) Login(context.Context, domain.Role, string, string) (*ports.Session, error) {
	return s.session, s.err
}

func (s *stubSessionService) LoginPrivileged(context.Context, string) (*ports.Session, error) {
	return s.session, s.err
}

func (s *stubSessionService) Logout(context.Context) {}

func sessionContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/v1/session/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandlerLogin_Success(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{
		session: &ports.Session{Token: "tok", Role: domain.RoleCashier, Username: "petrova"},
	})
	c, rec := sessionContext(t, `{"role":"cashier","username":"petrova","secret":"25"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"tok"`) {
		t.Fatalf("token missing from response: %s", rec.Body.String())
	}
}

func TestSessionHandlerLogin_MissingFields(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{})
	c, _ := sessionContext(t, `{"role":"cashier"}`)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestSessionHandlerLogin_UniformAuthFailure(t *testing.T) {
	// All three causes must surface as the same 401 message.
	for _, cause := range []error{domain.ErrUserNotFound, domain.ErrUserBlocked, domain.ErrBadSecret} {
		h := NewSessionHandler(&stubSessionService{err: cause})
		c, _ := sessionContext(t, `{"role":"cashier","username":"petrova","secret":"x"}`)

		err := h.Login(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			t.Fatalf("%v: expected HTTPError, got %v", cause, err)
		}
		if he.Code != http.StatusUnauthorized || he.Message != "authentication failed" {
			t.Fatalf("%v: expected uniform 401, got %d %v", cause, he.Code, he.Message)
		}
	}
}

func TestSessionHandlerLogin_LockoutPassesThrough(t *testing.T) {
	h := NewSessionHandler(&stubSessionService{err: &domain.LockedOutError{RemainingSeconds: 42}})
	c, _ := sessionContext(t, `{"role":"cashier","username":"petrova","secret":"x"}`)

	err := h.Login(c)
	var locked *domain.LockedOutError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedOutError to pass through, got %v", err)
	}
	if locked.RemainingSeconds != 42 {
		t.Fatalf("remaining seconds lost: %d", locked.RemainingSeconds)
	}
}
