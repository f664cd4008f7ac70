package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/room-reservation/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return c, rec, reached
}

func TestJWTAuth_ValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "alice", "Alice", false, 15)
	require.NoError(t, err)

	c, rec, reached := runJWT(t, "Bearer "+tok.Token)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", c.Get("actor"))
	assert.Equal(t, false, c.Get("is_admin"))
}

func TestJWTAuth_AdminClaim(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "root", "Root", true, 15)
	require.NoError(t, err)

	c, _, reached := runJWT(t, "Bearer "+tok.Token)

	assert.True(t, reached)
	assert.Equal(t, true, c.Get("is_admin"))
}

func TestJWTAuth_SubjectIsLowercased(t *testing.T) {
	// Tokens minted elsewhere may carry mixed-case subjects; the actor
	// identity is normalized on every request.
	tok, err := utils.NewAccessToken(testSecret, "Alice", "Alice", false, 15)
	require.NoError(t, err)

	c, _, reached := runJWT(t, "Bearer "+tok.Token)

	assert.True(t, reached)
	assert.Equal(t, "alice", c.Get("actor"))
}

func TestJWTAuth_Rejections(t *testing.T) {
	wrongSecret, err := utils.NewAccessToken("other-secret", "alice", "Alice", false, 15)
	require.NoError(t, err)
	expired, err := utils.NewAccessToken(testSecret, "alice", "Alice", false, -5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + wrongSecret.Token},
		{"expired", "Bearer " + expired.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, rec, reached := runJWT(t, tc.header)
			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	h := RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("is_admin", true)
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("is_admin", false)
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing flag rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
