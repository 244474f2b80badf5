package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

type stubRevoker struct {
	revoked map[string]bool
}

func (r *stubRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	if r.revoked == nil {
		r.revoked = make(map[string]bool)
	}
	r.revoked[jti] = true
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	return r.revoked[jti], nil
}

func runAuth(t *testing.T, header string, revoker *stubRevoker) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testSecret, revoker)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, c
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub":  "u1",
		"role": "user",
		"jti":  "j1",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, called, c := runAuth(t, "Bearer "+token, &stubRevoker{})
	if !called {
		t.Fatalf("next handler not called: %d %s", rec.Code, rec.Body.String())
	}
	if got, _ := c.Get("user_id").(string); got != "u1" {
		t.Fatalf("expected user_id claim injected, got %q", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, called, _ := runAuth(t, "", &stubRevoker{})
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, called, _ := runAuth(t, "Bearer "+token, &stubRevoker{})
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	revoker := &stubRevoker{}
	_ = revoker.Revoke(context.Background(), "j-revoked", time.Hour)

	token := signToken(t, jwt.MapClaims{
		"sub": "u1",
		"jti": "j-revoked",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, called, _ := runAuth(t, "Bearer "+token, revoker)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked token, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuth_WrongSigningMethodRejected(t *testing.T) {
	// Token signed with "none" must never pass.
	tkn := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"})
	raw, err := tkn.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec, called, _ := runAuth(t, "Bearer "+raw, &stubRevoker{})
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for alg=none, got %d (called=%v)", rec.Code, called)
	}
}
