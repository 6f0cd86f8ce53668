package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/denisAlshanov/mediagate/internal/config"
	"github.com/denisAlshanov/mediagate/internal/models"
)

// Prefers an mp4/m4a pair, then any single mp4, then whatever is best.
const videoFormatSelector = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/bv*+ba/b"

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// YtDlp drives the yt-dlp binary.
type YtDlp struct {
	bin          string
	ffmpegPath   string
	audioQuality int
	run          commandRunner
}

func NewYtDlp(cfg *config.ExtractorConfig) *YtDlp {
	return &YtDlp{
		bin:          cfg.YtDlpPath,
		ffmpegPath:   cfg.FfmpegPath,
		audioQuality: cfg.AudioQuality,
		run:          runCommand,
	}
}

// Internal struct to match yt-dlp JSON output
type ytDlpJSON struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Uploader  *string  `json:"uploader"`
	Duration  *float64 `json:"duration"`
	ViewCount *int64   `json:"view_count"`
	Thumbnail *string  `json:"thumbnail"`
}

func (y *YtDlp) FetchMetadata(ctx context.Context, url string) (*models.ExtractionResult, error) {
	return y.extract(ctx, y.metadataArgs(url))
}

func (y *YtDlp) FetchVideo(ctx context.Context, url string, stem string) (*models.ExtractionResult, error) {
	result, err := y.extract(ctx, y.videoArgs(url, stem))
	if err != nil {
		return nil, err
	}
	return withLocalFile(result, stem+".mp4")
}

func (y *YtDlp) FetchAudio(ctx context.Context, url string, stem string) (*models.ExtractionResult, error) {
	result, err := y.extract(ctx, y.audioArgs(url, stem))
	if err != nil {
		return nil, err
	}
	return withLocalFile(result, stem+".mp3")
}

func (y *YtDlp) metadataArgs(url string) []string {
	return []string{"-J", "--no-playlist", "--no-warnings", url}
}

// --no-simulate makes yt-dlp download while still printing the info JSON.
func (y *YtDlp) downloadArgs(stem string) []string {
	args := []string{
		"--dump-single-json", "--no-simulate",
		"--no-playlist", "--no-warnings", "--no-progress",
		"--force-overwrites",
		"-o", outputTemplate(stem),
	}
	if y.ffmpegPath != "" && y.ffmpegPath != "ffmpeg" {
		args = append(args, "--ffmpeg-location", y.ffmpegPath)
	}
	return args
}

// outputTemplate escapes % so the title is never expanded as a template field.
func outputTemplate(stem string) string {
	return strings.ReplaceAll(stem, "%", "%%") + ".%(ext)s"
}

func (y *YtDlp) videoArgs(url, stem string) []string {
	args := y.downloadArgs(stem)
	args = append(args,
		"-f", videoFormatSelector,
		"--merge-output-format", "mp4",
		"--remux-video", "mp4",
		url,
	)
	return args
}

func (y *YtDlp) audioArgs(url, stem string) []string {
	args := y.downloadArgs(stem)
	args = append(args,
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", strconv.Itoa(y.audioQuality)+"K",
		url,
	)
	return args
}

func (y *YtDlp) extract(ctx context.Context, args []string) (*models.ExtractionResult, error) {
	output, err := y.run(ctx, y.bin, args...)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp error: %w", err)
	}

	var data ytDlpJSON
	if err := json.Unmarshal(output, &data); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	return &models.ExtractionResult{
		Title:           data.Title,
		Uploader:        data.Uploader,
		DurationSeconds: data.Duration,
		ViewCount:       data.ViewCount,
		ThumbnailURL:    nonEmpty(data.Thumbnail),
	}, nil
}

func withLocalFile(result *models.ExtractionResult, path string) (*models.ExtractionResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("expected output %s missing: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("expected output %s is not a regular file", path)
	}
	result.LocalFilePath = path
	return result, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if msg := lastLine(stderr.String()); msg != "" {
				return nil, errors.New(msg)
			}
		}
		return nil, err
	}
	return out, nil
}

// lastLine returns the final non-empty line, which is where yt-dlp puts its ERROR.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
