package extractor

import (
	"fmt"
	"net/http"

	"github.com/denisAlshanov/mediagate/internal/config"
)

const (
	BackendYtDlp   = "ytdlp"
	BackendYouTube = "youtube"
)

// NewExtractor builds the backend named in cfg.
func NewExtractor(cfg *config.ExtractorConfig, httpClient *http.Client) (Extractor, error) {
	switch cfg.Backend {
	case BackendYtDlp, "":
		return NewYtDlp(cfg), nil
	case BackendYouTube:
		return NewYouTube(cfg, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown extractor backend %q", cfg.Backend)
	}
}
