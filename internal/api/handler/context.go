package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id and role must
// both be present (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// ctxEmail returns the email claim, if any.
func ctxEmail(c echo.Context) string {
	email, _ := c.Get("email").(string)
	return email
}

// ctxToken returns the raw bearer token injected by the Auth middleware.
func ctxToken(c echo.Context) string {
	token, _ := c.Get("token").(string)
	return token
}
