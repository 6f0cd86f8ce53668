// Package media implements the four fetch operations on top of the extraction
// engine and the file store.
package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/denisAlshanov/mediagate/internal/metrics"
	"github.com/denisAlshanov/mediagate/internal/models"
	"github.com/denisAlshanov/mediagate/internal/services/extractor"
	"github.com/denisAlshanov/mediagate/internal/services/filestore"
	"github.com/denisAlshanov/mediagate/internal/services/storage"
	"github.com/denisAlshanov/mediagate/internal/utils"
)

const (
	thumbnailFallbackTitle = "thumbnail"
	thumbnailFetchFailed   = "Failed to fetch thumbnail."
)

type Service struct {
	extractor    extractor.Extractor
	store        *filestore.Store
	httpClient   *http.Client
	mirror       storage.StorageInterface
	mirrorPrefix string
}

// NewService wires the fetch operations. mirror may be nil.
func NewService(ex extractor.Extractor, store *filestore.Store, httpClient *http.Client, mirror storage.StorageInterface, mirrorPrefix string) *Service {
	return &Service{
		extractor:    ex,
		store:        store,
		httpClient:   httpClient,
		mirror:       mirror,
		mirrorPrefix: mirrorPrefix,
	}
}

// ValidateURL accepts absolute URLs with a scheme and a host.
func ValidateURL(raw string) error {
	if raw == "" {
		return utils.NewValidationError("Query parameter 'url' is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return utils.NewValidationError(fmt.Sprintf("Invalid url: %q", raw))
	}
	return nil
}

// FetchVideo downloads the media as <title>.mp4 into the store.
func (s *Service) FetchVideo(ctx context.Context, rawURL string) (*models.MediaFile, error) {
	return s.fetchMedia(ctx, rawURL, models.ModeVideo, s.extractor.FetchVideo)
}

// FetchAudio downloads the media's audio track as <title>.mp3 into the store.
func (s *Service) FetchAudio(ctx context.Context, rawURL string) (*models.MediaFile, error) {
	return s.fetchMedia(ctx, rawURL, models.ModeAudio, s.extractor.FetchAudio)
}

type fetchFunc func(ctx context.Context, url string, stem string) (*models.ExtractionResult, error)

func (s *Service) fetchMedia(ctx context.Context, rawURL string, mode models.VideoMode, fetch fetchFunc) (*models.MediaFile, error) {
	meta, err := s.metadata(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	name := filestore.FileName(meta.Title, mode.Extension())
	unlock := s.store.Lock(name)
	defer unlock()

	start := time.Now()
	result, err := fetch(ctx, rawURL, filestore.Stem(s.store.Path(name)))
	metrics.ObserveExtraction(string(mode), start, err)
	if err != nil {
		return nil, utils.NewExtractionError(err)
	}

	path := result.LocalFilePath
	if path == "" {
		path = s.store.Path(name)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, utils.NewFilesystemError(err)
	}
	metrics.AddStoredBytes(string(mode), info.Size())

	utils.LogInfo(ctx, "Media stored", utils.Fields{
		"mode":  mode,
		"title": meta.Title,
		"file":  name,
		"size":  info.Size(),
	})

	file := &models.MediaFile{Path: path, Name: name, ContentType: mode.ContentType()}
	s.mirrorFile(ctx, file)
	return file, nil
}

// FetchThumbnail stores the media's thumbnail as <title>.jpg.
func (s *Service) FetchThumbnail(ctx context.Context, rawURL string) (*models.MediaFile, error) {
	meta, err := s.metadata(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if meta.ThumbnailURL == nil {
		return nil, utils.NewExtractionError(errors.New("no thumbnail available for this media"))
	}

	title := meta.Title
	if title == "" {
		title = thumbnailFallbackTitle
	}
	name := filestore.FileName(title, models.ModeThumbnail.Extension())

	unlock := s.store.Lock(name)
	defer unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, *meta.ThumbnailURL, nil)
	if err != nil {
		return nil, utils.NewExtractionError(fmt.Errorf("invalid thumbnail url: %w", err))
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, utils.NewExtractionError(fmt.Errorf("failed to fetch thumbnail: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.LogWarn(ctx, "Thumbnail upstream returned non-success status", utils.Fields{
			"status_code": resp.StatusCode,
			"thumbnail":   *meta.ThumbnailURL,
		})
		return nil, utils.NewUpstreamFetchError(thumbnailFetchFailed)
	}

	n, err := s.store.WriteFrom(name, resp.Body)
	if err != nil {
		return nil, utils.NewFilesystemError(err)
	}
	metrics.AddStoredBytes(string(models.ModeThumbnail), n)

	utils.LogInfo(ctx, "Thumbnail stored", utils.Fields{"file": name, "size": n})

	file := &models.MediaFile{
		Path:        s.store.Path(name),
		Name:        name,
		ContentType: models.ModeThumbnail.ContentType(),
	}
	s.mirrorFile(ctx, file)
	return file, nil
}

// FetchMetadata reports the media's metadata and, when a previous video fetch
// already produced <title>.mp4, its retrieval URL. It never writes to the store.
func (s *Service) FetchMetadata(ctx context.Context, rawURL string) (*models.InfoResponse, error) {
	meta, err := s.metadata(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	resp := &models.InfoResponse{
		Status:    models.StatusSuccess,
		Title:     meta.Title,
		Uploader:  meta.Uploader,
		Duration:  meta.DurationSeconds,
		Views:     meta.ViewCount,
		Thumbnail: meta.ThumbnailURL,
	}

	name := filestore.FileName(meta.Title, models.ModeVideo.Extension())
	if s.store.Exists(name) {
		downloadURL := s.store.URL(name)
		resp.DownloadURL = &downloadURL
	}
	return resp, nil
}

func (s *Service) metadata(ctx context.Context, rawURL string) (*models.ExtractionResult, error) {
	start := time.Now()
	meta, err := s.extractor.FetchMetadata(ctx, rawURL)
	metrics.ObserveExtraction(string(models.ModeMetadata), start, err)
	if err != nil {
		return nil, utils.NewExtractionError(err)
	}
	return meta, nil
}

// mirrorFile copies a produced file to the object store. Failures are logged
// and never fail the request.
func (s *Service) mirrorFile(ctx context.Context, file *models.MediaFile) {
	if s.mirror == nil {
		return
	}

	f, err := os.Open(file.Path)
	if err != nil {
		utils.LogError(ctx, "Failed to open file for mirroring", err, utils.Fields{"file": file.Name})
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		utils.LogError(ctx, "Failed to stat file for mirroring", err, utils.Fields{"file": file.Name})
		return
	}

	key := s.mirrorPrefix + file.Name
	if err := s.mirror.Upload(ctx, key, f, info.Size(), file.ContentType); err != nil {
		utils.LogError(ctx, "Failed to mirror file", err, utils.Fields{
			"file":   file.Name,
			"bucket": s.mirror.BucketName(),
		})
		return
	}
	utils.LogDebug(ctx, "File mirrored", utils.Fields{"key": key, "bucket": s.mirror.BucketName()})
}
