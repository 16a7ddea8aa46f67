package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTooLarge is returned for uploads over the configured size cap.
	ErrTooLarge = errors.New("image exceeds size limit")

	// ErrUnsupportedFormat is returned for anything but PNG, JPEG or GIF.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// Validate sniffs the upload and returns its MIME type. The format check
// uses the content, not the filename, so a mislabeled upload still passes
// when the bytes are a real image.
func Validate(data []byte, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", ErrUnsupportedFormat)
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), maxBytes)
	}

	mimeType := http.DetectContentType(data)
	if !allowedTypes[mimeType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}
	return mimeType, nil
}

// EncodeBase64 encodes the image for inline transport to the model API.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
