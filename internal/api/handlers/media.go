package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/mediagate/internal/config"
	"github.com/denisAlshanov/mediagate/internal/metrics"
	"github.com/denisAlshanov/mediagate/internal/models"
	"github.com/denisAlshanov/mediagate/internal/services/media"
	"github.com/denisAlshanov/mediagate/internal/utils"
)

// MediaService is the set of fetch operations the handlers expose.
type MediaService interface {
	FetchVideo(ctx context.Context, url string) (*models.MediaFile, error)
	FetchAudio(ctx context.Context, url string) (*models.MediaFile, error)
	FetchThumbnail(ctx context.Context, url string) (*models.MediaFile, error)
	FetchMetadata(ctx context.Context, url string) (*models.InfoResponse, error)
}

type MediaHandler struct {
	service    MediaService
	statusMode config.ErrorStatusMode
}

func NewMediaHandler(service MediaService, statusMode config.ErrorStatusMode) *MediaHandler {
	return &MediaHandler{
		service:    service,
		statusMode: statusMode,
	}
}

// DownloadVideo godoc
// @Summary Download a video
// @Description Extract the media behind url, store it as <title>.mp4 and return the file.
// @Tags media
// @Produce video/mp4
// @Produce json
// @Param url query string true "Source video URL"
// @Success 200 {file} binary "Video file"
// @Failure 401 {object} models.AuthErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /download [get]
// @Security ApiKeyAuth
func (h *MediaHandler) DownloadVideo(c *gin.Context) {
	h.serveFile(c, "download", h.service.FetchVideo)
}

// DownloadAudio godoc
// @Summary Download audio only
// @Description Extract the best audio track behind url as 192 kbps mp3, store it as <title>.mp3 and return the file.
// @Tags media
// @Produce audio/mpeg
// @Produce json
// @Param url query string true "Source video URL"
// @Success 200 {file} binary "Audio file"
// @Failure 401 {object} models.AuthErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /download/audio [get]
// @Security ApiKeyAuth
func (h *MediaHandler) DownloadAudio(c *gin.Context) {
	h.serveFile(c, "download_audio", h.service.FetchAudio)
}

// Thumbnail godoc
// @Summary Download the thumbnail
// @Description Fetch the thumbnail image of the media behind url, store it as <title>.jpg and return it.
// @Tags media
// @Produce image/jpeg
// @Produce json
// @Param url query string true "Source video URL"
// @Success 200 {file} binary "Thumbnail image"
// @Failure 401 {object} models.AuthErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /thumbnail [get]
// @Security ApiKeyAuth
func (h *MediaHandler) Thumbnail(c *gin.Context) {
	h.serveFile(c, "thumbnail", h.service.FetchThumbnail)
}

// Info godoc
// @Summary Get media metadata
// @Description Extract metadata without downloading. download_url is set only when <title>.mp4 is already in the file store.
// @Tags media
// @Produce json
// @Param url query string true "Source video URL"
// @Success 200 {object} models.InfoResponse
// @Failure 401 {object} models.AuthErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /info [get]
// @Security ApiKeyAuth
func (h *MediaHandler) Info(c *gin.Context) {
	const operation = "info"
	ctx := c.Request.Context()

	rawURL := c.Query("url")
	utils.LogInfo(ctx, "Metadata request received", utils.Fields{"url": rawURL})

	if err := media.ValidateURL(rawURL); err != nil {
		h.errorResponse(c, operation, err)
		return
	}

	info, err := h.service.FetchMetadata(ctx, rawURL)
	if err != nil {
		h.errorResponse(c, operation, err)
		return
	}

	metrics.ObserveRequest(operation, nil)
	c.JSON(http.StatusOK, info)
}

type fileFetcher func(ctx context.Context, url string) (*models.MediaFile, error)

func (h *MediaHandler) serveFile(c *gin.Context, operation string, fetch fileFetcher) {
	ctx := c.Request.Context()

	rawURL := c.Query("url")
	utils.LogInfo(ctx, "Media request received", utils.Fields{
		"operation": operation,
		"url":       rawURL,
	})

	if err := media.ValidateURL(rawURL); err != nil {
		h.errorResponse(c, operation, err)
		return
	}

	file, err := fetch(ctx, rawURL)
	if err != nil {
		h.errorResponse(c, operation, err)
		return
	}

	metrics.ObserveRequest(operation, nil)
	c.Header("Content-Type", file.ContentType)
	c.Header("Content-Disposition", contentDisposition(file.Name))
	c.File(file.Path)
}

// contentDisposition names the attachment. Non-ASCII names get an ASCII
// fallback plus an RFC 5987 filename* carrying the exact UTF-8 name.
func contentDisposition(name string) string {
	fallback := asciiFallback(name)
	value := `attachment; filename="` + fallback + `"`
	if fallback != quoteEscaper.Replace(name) {
		value += "; filename*=UTF-8''" + encodeExtValue(name)
	}
	return value
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func asciiFallback(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= utf8.RuneSelf {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return quoteEscaper.Replace(b.String())
}

func encodeExtValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("!#$&+-.^_`|~", c) >= 0
}

func (h *MediaHandler) errorResponse(c *gin.Context, operation string, err error) {
	appErr := utils.AsAppError(err)
	metrics.ObserveRequest(operation, err)

	utils.LogError(c.Request.Context(), "Request failed", err, utils.Fields{
		"operation": operation,
		"code":      appErr.Code,
	})

	c.JSON(h.statusFor(appErr), models.ErrorResponse{
		Status:  models.StatusError,
		Message: appErr.Message,
	})
}

// statusFor applies the configured status policy. In legacy mode logical
// failures are reported in the body with 200, except a bad url parameter.
func (h *MediaHandler) statusFor(appErr *utils.AppError) int {
	if h.statusMode == config.ErrorStatusStrict {
		return appErr.StatusCode
	}
	if appErr.Code == utils.ErrorCodeValidationError {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
