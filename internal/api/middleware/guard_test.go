package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

type stubGuard struct {
	decision ports.Decision
	gotSID   string
	gotRoles []string
}

func (g *stubGuard) Authorize(_ context.Context, sid string, requiredRoles ...string) ports.Decision {
	g.gotSID = sid
	g.gotRoles = requiredRoles
	return g.decision
}

func invokeGuard(t *testing.T, guard ports.AccessGuard, sid string, roles ...string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sid != "" {
		c.Set("sid", sid)
	}

	handler := Guard(guard, roles...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestGuardMiddleware_AllowedSetsUser(t *testing.T) {
	user := &domain.User{ID: "u1", Username: "admin", Role: domain.RoleAdmin}
	guard := &stubGuard{decision: ports.Decision{Allowed: true, User: user}}

	rec, c, err := invokeGuard(t, guard, "sid-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got, _ := c.Get("user").(*domain.User); got != user {
		t.Fatalf("expected user in context, got %v", c.Get("user"))
	}
	if guard.gotSID != "sid-1" {
		t.Fatalf("guard received sid %q", guard.gotSID)
	}
	if len(guard.gotRoles) != 1 || guard.gotRoles[0] != domain.RoleAdmin {
		t.Fatalf("guard received roles %v", guard.gotRoles)
	}
}

func TestGuardMiddleware_NotLoggedIn(t *testing.T) {
	guard := &stubGuard{decision: ports.Decision{Reason: ports.DenyNotLoggedIn}}

	rec, _, err := invokeGuard(t, guard, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] != "not logged in" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestGuardMiddleware_RoleMismatch(t *testing.T) {
	guard := &stubGuard{decision: ports.Decision{Reason: ports.DenyRoleMismatch}}

	rec, _, err := invokeGuard(t, guard, "sid-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
