package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cache2k25/registration-backend/internal/utils"
)

func callProtected(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/registrations/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := JWTAuth("test-secret")
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "reached")
	})
	require.NoError(t, handler(c))
	return rec
}

func TestJWTAuth_MissingToken(t *testing.T) {
	rec := callProtected(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	rec := callProtected(t, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tok, err := utils.NewAdminToken("test-secret", "admin@cache2k25.in", 60)
	require.NoError(t, err)

	rec := callProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "reached", rec.Body.String())
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	tok, err := utils.NewAdminToken("test-secret", "admin@cache2k25.in", -1)
	require.NoError(t, err)

	rec := callProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	tok, err := utils.NewAdminToken("other-secret", "admin@cache2k25.in", 60)
	require.NoError(t, err)

	rec := callProtected(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
