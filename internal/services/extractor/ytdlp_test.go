package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisAlshanov/mediagate/internal/config"
)

const sampleInfo = `{
	"id": "abc123",
	"title": "Test Clip",
	"uploader": "Tester",
	"duration": 12.5,
	"view_count": 42,
	"thumbnail": "https://i.example.com/abc123.jpg"
}`

func newTestYtDlp(run commandRunner) *YtDlp {
	y := NewYtDlp(&config.ExtractorConfig{
		YtDlpPath:    "/usr/bin/yt-dlp",
		FfmpegPath:   "ffmpeg",
		AudioQuality: 192,
	})
	y.run = run
	return y
}

// outputFlag returns the value following -o.
func outputFlag(args []string) string {
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestYtDlpFetchMetadata(t *testing.T) {
	var gotArgs []string
	y := newTestYtDlp(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "/usr/bin/yt-dlp", name)
		gotArgs = args
		return []byte(sampleInfo), nil
	})

	result, err := y.FetchMetadata(context.Background(), "https://www.youtube.com/watch?v=abc123")
	require.NoError(t, err)

	assert.Equal(t, []string{"-J", "--no-playlist", "--no-warnings", "https://www.youtube.com/watch?v=abc123"}, gotArgs)
	assert.Equal(t, "Test Clip", result.Title)
	require.NotNil(t, result.Uploader)
	assert.Equal(t, "Tester", *result.Uploader)
	require.NotNil(t, result.DurationSeconds)
	assert.InDelta(t, 12.5, *result.DurationSeconds, 0.001)
	require.NotNil(t, result.ViewCount)
	assert.EqualValues(t, 42, *result.ViewCount)
	require.NotNil(t, result.ThumbnailURL)
	assert.Empty(t, result.LocalFilePath)
}

func TestYtDlpFetchMetadataMissingFields(t *testing.T) {
	y := newTestYtDlp(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(`{"title": "Bare", "thumbnail": ""}`), nil
	})

	result, err := y.FetchMetadata(context.Background(), "https://example.com/v")
	require.NoError(t, err)
	assert.Nil(t, result.Uploader)
	assert.Nil(t, result.DurationSeconds)
	assert.Nil(t, result.ViewCount)
	assert.Nil(t, result.ThumbnailURL)
}

// renderOutput expands an output template the way yt-dlp would for ext.
func renderOutput(template, ext string) string {
	return strings.ReplaceAll(strings.Replace(template, "%(ext)s", ext, 1), "%%", "%")
}

func TestYtDlpFetchVideo(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		template string
	}{
		{name: "plain title", title: "Test Clip", template: "Test Clip.%(ext)s"},
		{name: "template field in title", title: "50%(id)s off", template: "50%%(id)s off.%(ext)s"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			stem := filepath.Join(dir, tc.title)

			var gotArgs []string
			y := newTestYtDlp(func(ctx context.Context, name string, args ...string) ([]byte, error) {
				gotArgs = args
				require.NoError(t, os.WriteFile(renderOutput(outputFlag(args), "mp4"), []byte("video"), 0o644))
				return []byte(sampleInfo), nil
			})

			result, err := y.FetchVideo(context.Background(), "https://example.com/v", stem)
			require.NoError(t, err)

			assert.Equal(t, stem+".mp4", result.LocalFilePath)
			assert.FileExists(t, filepath.Join(dir, tc.title+".mp4"))
			assert.Contains(t, gotArgs, "--no-simulate")
			assert.Contains(t, gotArgs, videoFormatSelector)
			assert.Contains(t, gotArgs, "--merge-output-format")
			assert.Equal(t, filepath.Join(dir, tc.template), outputFlag(gotArgs))
			assert.Equal(t, "https://example.com/v", gotArgs[len(gotArgs)-1])
			assert.NotContains(t, gotArgs, "--ffmpeg-location")
		})
	}
}

func TestYtDlpFetchAudio(t *testing.T) {
	stem := filepath.Join(t.TempDir(), "Test Clip")

	var gotArgs []string
	y := newTestYtDlp(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		out := renderOutput(outputFlag(args), "mp3")
		require.NoError(t, os.WriteFile(out, []byte("audio"), 0o644))
		return []byte(sampleInfo), nil
	})
	y.ffmpegPath = "/opt/ffmpeg/bin/ffmpeg"

	result, err := y.FetchAudio(context.Background(), "https://example.com/v", stem)
	require.NoError(t, err)

	assert.Equal(t, stem+".mp3", result.LocalFilePath)
	assert.Contains(t, gotArgs, "bestaudio/best")
	assert.Contains(t, gotArgs, "-x")
	assert.Contains(t, gotArgs, "192K")
	assert.Contains(t, gotArgs, "/opt/ffmpeg/bin/ffmpeg")
}

func TestYtDlpFetchVideoMissingOutput(t *testing.T) {
	y := newTestYtDlp(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(sampleInfo), nil
	})

	_, err := y.FetchVideo(context.Background(), "https://example.com/v", filepath.Join(t.TempDir(), "nothing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestYtDlpCommandFailure(t *testing.T) {
	y := newTestYtDlp(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("ERROR: Unsupported URL: https://example.com/v")
	})

	_, err := y.FetchMetadata(context.Background(), "https://example.com/v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported URL")
}

func TestYtDlpBadJSON(t *testing.T) {
	y := newTestYtDlp(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("not json"), nil
	})

	_, err := y.FetchMetadata(context.Background(), "https://example.com/v")
	assert.Error(t, err)
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "ERROR: boom", lastLine("WARNING: x\nERROR: boom\n\n"))
	assert.Empty(t, lastLine("   "))
}

func TestRunCommandReportsStderr(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	_, err := runCommand(context.Background(), "/bin/sh", "-c", "echo 'ERROR: geo blocked' >&2; exit 1")
	require.Error(t, err)
	assert.Equal(t, "ERROR: geo blocked", err.Error())

	out, err := runCommand(context.Background(), "/bin/sh", "-c", "printf '{}'")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
