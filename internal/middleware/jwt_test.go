package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tokenStr, err := GenerateToken(7, "dispatcher")
	require.NoError(t, err)

	token, err := ValidateToken(tokenStr)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "dispatcher", claims["role"])
}

func newAuthedRequest(t *testing.T, role string) *http.Request {
	t.Helper()
	token, err := GenerateToken(1, role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRequireAuthWithRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", RequireAuthWithRole("dispatcher", "admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		role string
		want int
	}{
		{"dispatcher", http.StatusOK},
		{"admin", http.StatusOK},
		{"viewer", http.StatusForbidden},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newAuthedRequest(t, tc.role))
		assert.Equal(t, tc.want, w.Code, "role=%s", tc.role)
	}
}

func TestRequireAuthMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
