package extractor

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/floostack/transcoder/ffmpeg"
	"github.com/google/renameio/v2"
	"github.com/kkdai/youtube/v2"

	"github.com/denisAlshanov/mediagate/internal/config"
	"github.com/denisAlshanov/mediagate/internal/models"
)

// YouTube talks to YouTube directly and uses ffmpeg only for the mp3 transcode.
type YouTube struct {
	client       *youtube.Client
	ffmpegCfg    *ffmpeg.Config
	audioBitrate string
}

func NewYouTube(cfg *config.ExtractorConfig, httpClient *http.Client) *YouTube {
	return &YouTube{
		client: &youtube.Client{
			HTTPClient: httpClient,
		},
		ffmpegCfg: &ffmpeg.Config{
			FfmpegBinPath:  cfg.FfmpegPath,
			FfprobeBinPath: cfg.FfprobePath,
		},
		audioBitrate: strconv.Itoa(cfg.AudioQuality) + "k",
	}
}

func (c *YouTube) FetchMetadata(ctx context.Context, url string) (*models.ExtractionResult, error) {
	video, err := c.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video info: %w", err)
	}
	return resultFromVideo(video), nil
}

func (c *YouTube) FetchVideo(ctx context.Context, url string, stem string) (*models.ExtractionResult, error) {
	video, err := c.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	format := bestMuxedMP4(video.Formats)
	if format == nil {
		return nil, fmt.Errorf("no suitable video format found")
	}

	path := stem + ".mp4"
	if err := c.downloadStream(ctx, video, format, path); err != nil {
		return nil, fmt.Errorf("failed to download video stream: %w", err)
	}

	result := resultFromVideo(video)
	result.LocalFilePath = path
	return result, nil
}

func (c *YouTube) FetchAudio(ctx context.Context, url string, stem string) (*models.ExtractionResult, error) {
	video, err := c.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	format := bestAudio(video.Formats)
	if format == nil {
		return nil, fmt.Errorf("no suitable audio format found")
	}

	tempDir, err := os.MkdirTemp("", "mediagate_audio_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	sourcePath := filepath.Join(tempDir, "source")
	if err := c.downloadStream(ctx, video, format, sourcePath); err != nil {
		return nil, fmt.Errorf("failed to download audio stream: %w", err)
	}

	path := stem + ".mp3"
	if err := c.transcodeMP3(ctx, sourcePath, filepath.Join(tempDir, "audio.mp3"), path); err != nil {
		return nil, err
	}

	result := resultFromVideo(video)
	result.LocalFilePath = path
	return result, nil
}

// downloadStream copies a stream into path, replacing it atomically.
func (c *YouTube) downloadStream(ctx context.Context, video *youtube.Video, format *youtube.Format, path string) error {
	stream, _, err := c.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("failed to get stream: %w", err)
	}
	defer stream.Close()

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer pendingFile.Cleanup()

	if _, err := io.Copy(pendingFile, stream); err != nil {
		return fmt.Errorf("failed to write stream to file: %w", err)
	}
	return pendingFile.CloseAtomicallyReplace()
}

// transcodeMP3 encodes source into scratch, checks the result against the
// source duration and only then moves it to dest.
func (c *YouTube) transcodeMP3(ctx context.Context, source, scratch, dest string) error {
	codec := "libmp3lame"
	format := "mp3"
	overwrite := true
	skipVideo := true
	opts := &ffmpeg.Options{
		AudioCodec:   &codec,
		AudioBitrate: &c.audioBitrate,
		OutputFormat: &format,
		SkipVideo:    &skipVideo,
		Overwrite:    &overwrite,
	}

	// Without progress reporting Start blocks until ffmpeg exits but does not
	// surface its exit status, so the output is probed afterwards.
	_, err := ffmpeg.
		New(c.ffmpegCfg).
		Input(source).
		Output(scratch).
		WithContext(&ctx).
		Start(opts)
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	want, err := c.probeDuration(source)
	if err != nil {
		return fmt.Errorf("failed to probe audio source: %w", err)
	}
	got, err := c.probeDuration(scratch)
	if err != nil {
		return fmt.Errorf("ffmpeg produced no usable output for %s: %w", filepath.Base(dest), err)
	}
	if !durationsMatch(want, got) {
		return fmt.Errorf("ffmpeg output for %s is truncated: %.1fs of %.1fs", filepath.Base(dest), got, want)
	}

	return installFile(scratch, dest)
}

func (c *YouTube) probeDuration(path string) (float64, error) {
	metadata, err := ffmpeg.New(c.ffmpegCfg).Input(path).GetMetadata()
	if err != nil {
		return 0, err
	}
	raw := metadata.GetFormat().GetDuration()
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("empty media")
	}
	return seconds, nil
}

// durationsMatch allows one second or 2% of drift, whichever is larger.
func durationsMatch(want, got float64) bool {
	tolerance := want * 0.02
	if tolerance < 1 {
		tolerance = 1
	}
	return math.Abs(want-got) <= tolerance
}

// installFile copies src over dest atomically, so dest is either the old
// file or the complete new one.
func installFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	pendingFile, err := renameio.NewPendingFile(dest, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer pendingFile.Cleanup()

	if _, err := io.Copy(pendingFile, in); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(dest), err)
	}
	return pendingFile.CloseAtomicallyReplace()
}

func resultFromVideo(video *youtube.Video) *models.ExtractionResult {
	result := &models.ExtractionResult{Title: video.Title}

	if video.Author != "" {
		author := video.Author
		result.Uploader = &author
	}
	if video.Duration > 0 {
		seconds := video.Duration.Seconds()
		result.DurationSeconds = &seconds
	}
	views := int64(video.Views)
	result.ViewCount = &views

	// Thumbnails are listed smallest first.
	if n := len(video.Thumbnails); n > 0 {
		thumb := video.Thumbnails[n-1].URL
		result.ThumbnailURL = &thumb
	}
	return result
}

// bestMuxedMP4 picks the widest progressive mp4 format carrying both tracks.
func bestMuxedMP4(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels == 0 || !strings.HasPrefix(f.MimeType, "video/mp4") {
			continue
		}
		if best == nil || f.Width > best.Width || (f.Width == best.Width && f.Bitrate > best.Bitrate) {
			best = f
		}
	}
	return best
}

// bestAudio picks the highest-bitrate audio-only format.
func bestAudio(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best
}
