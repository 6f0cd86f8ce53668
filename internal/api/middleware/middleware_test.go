package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/denisAlshanov/mediagate/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthEngine(key string, reached *bool) *gin.Engine {
	engine := gin.New()
	engine.Use(CorrelationIDMiddleware())
	engine.Use(AuthMiddleware(&config.APIConfig{APIKey: key}))
	engine.GET("/info", func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	return engine
}

func TestAuthMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		header     string
		setHeader  bool
		wantStatus int
		wantReach  bool
	}{
		{name: "valid key", header: "secret", setHeader: true, wantStatus: http.StatusOK, wantReach: true},
		{name: "missing key", wantStatus: http.StatusUnauthorized},
		{name: "empty key", header: "", setHeader: true, wantStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "guess", setHeader: true, wantStatus: http.StatusUnauthorized},
		{name: "prefix of key", header: "secre", setHeader: true, wantStatus: http.StatusUnauthorized},
		{name: "key with suffix", header: "secret2", setHeader: true, wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			engine := newAuthEngine("secret", &reached)

			req := httptest.NewRequest(http.MethodGet, "/info", nil)
			if tc.setHeader {
				req.Header.Set("X-API-Key", tc.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantReach, reached)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"detail":"Invalid API Key"}`, w.Body.String())
			}
		})
	}
}

func TestCorrelationIDMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(CorrelationIDMiddleware())
	engine.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "corr-123", w.Header().Get("X-Correlation-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}
