package transcribe

import (
	"context"
	"path/filepath"
	"strings"
)

// MaxFileSize is the upload ceiling accepted by the Whisper API. The upload
// handler enforces it before the adapter is ever invoked.
const MaxFileSize = 25 * 1024 * 1024

// SupportedFormats are the container formats the transcription backend can
// sniff. External contract surface, ordering matters only for error messages.
var SupportedFormats = []string{"flac", "m4a", "mp3", "mp4", "mpeg", "mpga", "oga", "ogg", "wav", "webm"}

var mimeExtensions = map[string]string{
	"audio/flac": "flac",
	"audio/m4a":  "m4a",
	"audio/mp4":  "m4a",
	"audio/mp3":  "mp3",
	"audio/mpeg": "mp3",
	"audio/mpga": "mpga",
	"audio/oga":  "oga",
	"audio/ogg":  "ogg",
	"audio/wav":  "wav",
	"audio/webm": "webm",
	"video/mp4":  "mp4",
	"video/mpeg": "mpeg",
	"video/webm": "webm",
}

// Segment is a timestamped span of transcript text, in seconds.
type Segment struct {
	T0   float64 `json:"t0"`
	T1   float64 `json:"t1"`
	Text string  `json:"text"`
}

type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Provider interface {
	Transcribe(ctx context.Context, audio []byte, mime, filename string) (*Transcript, error)
}

// IsSupportedFormat checks the filename extension against the whitelist.
func IsSupportedFormat(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range SupportedFormats {
		if ext == f {
			return true
		}
	}
	return false
}

// FileExtension derives the extension hint presented to the backend for codec
// sniffing. Fallback order: filename extension, MIME type, "webm".
func FileExtension(filename, mime string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range SupportedFormats {
		if ext == f {
			return ext
		}
	}
	if mimeExt, ok := mimeExtensions[normalizeMime(mime)]; ok {
		return mimeExt
	}
	return "webm"
}

func normalizeMime(mime string) string {
	// "audio/webm;codecs=opus" -> "audio/webm"
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}
