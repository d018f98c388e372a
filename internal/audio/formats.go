package audio

import (
	"path/filepath"
	"strings"
)

// SupportedFormats are the file extensions the pipeline accepts, all
// decodable by ffmpeg.
var SupportedFormats = []string{".wav", ".mp3", ".m4a", ".flac", ".ogg", ".opus", ".aac"}

// IsSupportedFormat reports whether the file's extension is one the
// pipeline can ingest.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
