package models

// VideoMode selects what the extractor produces for a request.
type VideoMode string

const (
	ModeVideo     VideoMode = "video"
	ModeAudio     VideoMode = "audio"
	ModeThumbnail VideoMode = "thumbnail"
	ModeMetadata  VideoMode = "metadata"
)

// Extension returns the File Store extension for modes that produce a file.
func (m VideoMode) Extension() string {
	switch m {
	case ModeVideo:
		return "mp4"
	case ModeAudio:
		return "mp3"
	case ModeThumbnail:
		return "jpg"
	default:
		return ""
	}
}

// ContentType returns the media type served for files of this mode.
func (m VideoMode) ContentType() string {
	switch m {
	case ModeVideo:
		return "video/mp4"
	case ModeAudio:
		return "audio/mpeg"
	case ModeThumbnail:
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

type MediaRequest struct {
	URL  string    `form:"url" json:"url"`
	Mode VideoMode `json:"mode"`
}

// ExtractionResult is what the extraction engine reports about a URL.
// Optional fields stay nil when the engine does not know them.
type ExtractionResult struct {
	Title           string
	Uploader        *string
	DurationSeconds *float64
	ViewCount       *int64
	ThumbnailURL    *string
	LocalFilePath   string
}

// MediaFile is a produced file ready to be served.
type MediaFile struct {
	Path        string
	Name        string
	ContentType string
}

type InfoResponse struct {
	Status      string   `json:"status"`
	Title       string   `json:"title"`
	Uploader    *string  `json:"uploader"`
	Duration    *float64 `json:"duration"`
	Views       *int64   `json:"views"`
	Thumbnail   *string  `json:"thumbnail"`
	DownloadURL *string  `json:"download_url"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthErrorResponse struct {
	Detail string `json:"detail"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
