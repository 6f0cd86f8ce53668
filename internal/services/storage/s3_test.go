package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisAlshanov/mediagate/internal/config"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, isNotFoundError(&types.NotFound{}))
	assert.True(t, isNotFoundError(fmt.Errorf("head: %w", &types.NoSuchKey{})))
	assert.False(t, isNotFoundError(errors.New("access denied")))
	assert.False(t, isNotFoundError(nil))
}

func TestNewStorageDisabledWithoutBucket(t *testing.T) {
	s, err := NewStorage(&config.S3Config{Region: "us-east-1"})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestNewStorageWithEndpoint(t *testing.T) {
	s, err := NewStorage(&config.S3Config{
		Region:          "us-east-1",
		BucketName:      "media-mirror",
		EndpointURL:     "http://localhost:4566",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "media-mirror", s.BucketName())
}
