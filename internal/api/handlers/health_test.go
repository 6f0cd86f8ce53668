package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubMirror struct {
	err error
}

func (s *stubMirror) BucketName() string { return "mirror" }

func (s *stubMirror) Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) error {
	return nil
}

func (s *stubMirror) Exists(ctx context.Context, key string) (bool, error) {
	return false, s.err
}

func newHealthEngine(h *HealthHandler) *gin.Engine {
	engine := gin.New()
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Readiness)
	engine.GET("/live", h.Liveness)
	return engine
}

func TestHealthHealthy(t *testing.T) {
	engine := newHealthEngine(NewHealthHandler(t.TempDir(), &stubMirror{}))

	w := get(engine, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"filestore"`)
	assert.Contains(t, w.Body.String(), `"s3"`)
}

func TestHealthUnhealthyMirror(t *testing.T) {
	engine := newHealthEngine(NewHealthHandler(t.TempDir(), &stubMirror{err: errors.New("denied")}))

	w := get(engine, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "denied")
}

func TestReadinessMissingStore(t *testing.T) {
	engine := newHealthEngine(NewHealthHandler(filepath.Join(t.TempDir(), "gone"), nil))

	assert.Equal(t, http.StatusServiceUnavailable, get(engine, "/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(engine, "/health").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/live").Code)
}
