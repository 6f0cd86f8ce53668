package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDs(t *testing.T) {
	correlationID := GenerateCorrelationID()
	if correlationID == "" {
		t.Error("Expected non-empty correlation ID")
	}

	requestID := GenerateRequestID()
	if requestID == "" {
		t.Error("Expected non-empty request ID")
	}

	// Check that IDs are different
	if correlationID == requestID {
		t.Error("Correlation ID and request ID should be different")
	}
}

func TestContextIDs(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "corr")
	ctx = WithRequestID(ctx, "req")

	assert.Equal(t, "corr", GetCorrelationID(ctx))
	assert.Equal(t, "req", GetRequestID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestAppErrorStatusCodes(t *testing.T) {
	cause := errors.New("boom")

	testCases := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"validation", NewValidationError("bad url"), ErrorCodeValidationError, http.StatusBadRequest},
		{"extraction", NewExtractionError(cause), ErrorCodeExtractionFailed, http.StatusBadGateway},
		{"upstream", NewUpstreamFetchError("nope"), ErrorCodeUpstreamFetchFailed, http.StatusBadGateway},
		{"filesystem", NewFilesystemError(cause), ErrorCodeFilesystemError, http.StatusInternalServerError},
		{"unauthorized", NewUnauthorizedError(), ErrorCodeUnauthorized, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.StatusCode)
		})
	}
}

func TestAsAppError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("writing: %w", NewFilesystemError(cause))

	appErr := AsAppError(wrapped)
	assert.Equal(t, ErrorCodeFilesystemError, appErr.Code)
	assert.ErrorIs(t, appErr, cause)

	plain := AsAppError(errors.New("mystery"))
	assert.Equal(t, ErrorCodeInternalError, plain.Code)
	assert.Equal(t, "mystery", plain.Message)
}

func TestConfigureLoggerFile(t *testing.T) {
	prevOut := GetLogger().Out
	prevLevel := GetLogger().GetLevel()
	t.Cleanup(func() {
		GetLogger().SetOutput(prevOut)
		GetLogger().SetLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "logs.txt")
	closer, err := ConfigureLogger("debug", path, 1, 0)
	require.NoError(t, err)

	LogInfo(context.Background(), "hello file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")

	_, err = ConfigureLogger("shouting", "", 1, 0)
	assert.Error(t, err)

	_, err = ConfigureLogger("info", path, 0, 0)
	assert.Error(t, err)
}

func TestConfigureLoggerRotatesFile(t *testing.T) {
	prevOut := GetLogger().Out
	prevLevel := GetLogger().GetLevel()
	t.Cleanup(func() {
		GetLogger().SetOutput(prevOut)
		GetLogger().SetLevel(prevLevel)
	})

	dir := t.TempDir()
	closer, err := ConfigureLogger("info", filepath.Join(dir, "logs.txt"), 1, 0)
	require.NoError(t, err)
	defer closer.Close()

	sink, ok := closer.(io.Writer)
	require.True(t, ok)

	chunk := bytes.Repeat([]byte("x"), 700*1024)
	_, err = sink.Write(chunk)
	require.NoError(t, err)
	_, err = sink.Write(chunk)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
