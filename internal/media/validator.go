package media

import (
	"path/filepath"
	"strings"

	"catering/internal/validation"
)

// checkUpload returns the lower-cased extension and content type for an
// allowed upload.
func checkUpload(filename string, size int64) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", "", validation.New("file", "file extension missing")
	}
	ct, ok := contentTypes[ext]
	if !ok {
		return "", "", validation.New("file", "file type not allowed")
	}
	if size <= 0 {
		return "", "", validation.New("file", "file is empty")
	}
	if size > MaxUploadSize {
		return "", "", validation.New("file", "file is larger than 10 MB")
	}
	return ext, ct, nil
}
