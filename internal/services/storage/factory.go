package storage

import (
	"fmt"

	"github.com/denisAlshanov/mediagate/internal/config"
	"github.com/denisAlshanov/mediagate/internal/utils"
)

// NewStorage creates the S3 mirror, or returns nil when no bucket is configured.
func NewStorage(cfg *config.S3Config) (StorageInterface, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	utils.GetLogger().WithFields(utils.Fields{
		"bucket":   cfg.BucketName,
		"endpoint": cfg.EndpointURL,
	}).Info("Creating S3 mirror storage")

	storage, err := NewS3Storage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 storage: %w", err)
	}

	return storage, nil
}
