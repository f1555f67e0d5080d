package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laramoda/storefront-api/internal/model"
)

const testSecret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newRouter(issuer string, seen *model.User) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret, issuer), func(c *gin.Context) {
		*seen = GetIdentity(c)
		c.Status(http.StatusOK)
	})
	r.GET("/admin", AuthMiddleware(testSecret, issuer), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Identity(t *testing.T) {
	var seen model.User
	r := newRouter("", &seen)
	id := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": id.String(), "email": "ana@example.com", "given_name": "Ana",
		"last_name": "Souza", "picture": "https://img/ana.png", "role": "customer",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := do(r, "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, seen.ID)
	assert.Equal(t, "Ana", seen.FirstName)
	assert.Equal(t, "Souza", seen.LastName)
	assert.Equal(t, "https://img/ana.png", seen.ProfileImageURL)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	var seen model.User
	r := newRouter("https://id.example.com", &seen)
	id := uuid.New().String()

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", signToken(t, "other", jwt.MapClaims{"sub": id, "iss": "https://id.example.com"})},
		{"expired", signToken(t, testSecret, jwt.MapClaims{"sub": id, "iss": "https://id.example.com", "exp": time.Now().Add(-time.Minute).Unix()})},
		{"wrong issuer", signToken(t, testSecret, jwt.MapClaims{"sub": id, "iss": "https://evil.example.com"})},
		{"bad subject", signToken(t, testSecret, jwt.MapClaims{"sub": "42", "iss": "https://id.example.com"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/me", tt.token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	var seen model.User
	r := newRouter("", &seen)

	customer := signToken(t, testSecret, jwt.MapClaims{"sub": uuid.NewString(), "role": "customer"})
	assert.Equal(t, http.StatusForbidden, do(r, "/admin", customer).Code)

	admin := signToken(t, testSecret, jwt.MapClaims{"sub": uuid.NewString(), "role": "admin"})
	assert.Equal(t, http.StatusOK, do(r, "/admin", admin).Code)
}
