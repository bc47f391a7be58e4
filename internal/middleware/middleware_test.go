package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "test-secret"

func signed(t *testing.T, claims jwt.RegisteredClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.NewNop()), Identity(secret, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})
	return r
}

func TestIdentity(t *testing.T) {
	valid := signed(t, jwt.RegisteredClaims{Subject: "user-42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}, secret)
	expired := signed(t, jwt.RegisteredClaims{Subject: "user-42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}, secret)
	wrongKey := signed(t, jwt.RegisteredClaims{Subject: "user-42"}, "other")
	noSubject := signed(t, jwt.RegisteredClaims{}, secret)

	testCases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "anonymous", header: "", status: http.StatusOK, body: `{"id":"","ok":false}`},
		{name: "valid", header: "Bearer " + valid, status: http.StatusOK, body: `{"id":"user-42","ok":true}`},
		{name: "expired", header: "Bearer " + expired, status: http.StatusOK, body: `{"id":"","ok":false}`},
		{name: "wrong key", header: "Bearer " + wrongKey, status: http.StatusOK, body: `{"id":"","ok":false}`},
		{name: "no subject", header: "Bearer " + noSubject, status: http.StatusOK, body: `{"id":"","ok":false}`},
		{name: "not bearer", header: "Basic abc", status: http.StatusOK, body: `{"id":"","ok":false}`},
	}

	r := newEngine()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, w.Body.String())
			}
		})
	}
}

func TestIdentity_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity("", zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-Request-ID", "abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
}
