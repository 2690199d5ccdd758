package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/utils"
)

func echoRequest(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJWTAuthValidToken(t *testing.T) {
	t.Parallel()

	at, err := utils.NewAccessToken("secret", 42, "ATTENDEE", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	c, _ := echoRequest(t, "Bearer "+at.Token)

	called := false
	h := JWTAuth("secret")(func(c echo.Context) error {
		called = true
		if sub, _ := c.Get("user_id").(float64); uint64(sub) != 42 {
			t.Errorf("user_id = %v, want 42", c.Get("user_id"))
		}
		if c.Get("role") != "ATTENDEE" {
			t.Errorf("role = %v, want ATTENDEE", c.Get("role"))
		}
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Error("next handler was not invoked")
	}
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
	t.Parallel()

	wrongSecret, _ := utils.NewAccessToken("other", 42, "ATTENDEE", 15)
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + wrongSecret.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := echoRequest(t, tc.header)
			h := JWTAuth("secret")(func(c echo.Context) error {
				t.Error("next handler invoked for invalid token")
				return nil
			})
			if err := h(c); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	e := echo.New()
	run := func(role any) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		h := RequireRole("ORGANIZER", "ADMIN")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := h(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		return rec.Code
	}

	if code := run("ORGANIZER"); code != http.StatusOK {
		t.Errorf("organizer blocked: %d", code)
	}
	if code := run("ADMIN"); code != http.StatusOK {
		t.Errorf("admin blocked: %d", code)
	}
	if code := run("ATTENDEE"); code != http.StatusForbidden {
		t.Errorf("attendee allowed: %d", code)
	}
	if code := run(nil); code != http.StatusForbidden {
		t.Errorf("missing role allowed: %d", code)
	}
}
