package extractor

import (
	"context"

	"github.com/denisAlshanov/mediagate/internal/models"
)

// Extractor resolves a source URL to media metadata and, for the download
// modes, a local file. Video and audio downloads are written to
// stem + ".mp4" and stem + ".mp3" respectively.
type Extractor interface {
	// FetchMetadata extracts descriptive metadata without downloading media.
	FetchMetadata(ctx context.Context, url string) (*models.ExtractionResult, error)

	// FetchVideo downloads the best available stream as an mp4 container.
	FetchVideo(ctx context.Context, url string, stem string) (*models.ExtractionResult, error)

	// FetchAudio downloads the best audio stream transcoded to mp3.
	FetchAudio(ctx context.Context, url string, stem string) (*models.ExtractionResult, error)
}
