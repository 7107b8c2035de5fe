package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/portal-api/internal/core/domain"
)

// ctxUser extracts the identity injected by the Guard middleware and
// performs a fast-fail check before any service call: the user must be
// present (presence proves the guard ran) and role-scoped handlers require
// the linkage field their queries depend on.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return user, nil
}

// ctxSID extracts the session scope key injected by the Auth middleware.
func ctxSID(c echo.Context) (string, error) {
	sid, _ := c.Get("sid").(string)
	if sid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing session claim")
	}
	return sid, nil
}
