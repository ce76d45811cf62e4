// Package capture turns an image file into the opaque photo handle the
// funnel carries around. Pixel data is never decoded.
package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxPhotoBytes is the largest file accepted as a photo.
const MaxPhotoBytes = 10 << 20

// Photo is a data-URI encoded image. The empty Photo means "no photo".
type Photo string

// ErrNotImage is returned when the file content is not an image.
var ErrNotImage = errors.New("file is not an image")

// ErrTooLarge is returned when the file exceeds MaxPhotoBytes.
var ErrTooLarge = fmt.Errorf("photo exceeds %d MiB", MaxPhotoBytes>>20)

// FromFile reads path and returns it as a data-URI photo handle.
func FromFile(path string) (Photo, error) {
	path = expandHome(strings.TrimSpace(path))
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader reads an image from r and returns it as a data-URI photo handle.
func FromReader(r io.Reader) (Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxPhotoBytes+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) > MaxPhotoBytes {
		return "", ErrTooLarge
	}
	return FromBytes(data)
}

// FromBytes encodes raw image bytes as a data-URI photo handle. The content
// type is sniffed from the leading bytes.
func FromBytes(data []byte) (Photo, error) {
	if len(data) == 0 {
		return "", ErrNotImage
	}
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w (detected %s)", ErrNotImage, mime)
	}
	return Photo("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// MIMEType returns the media type embedded in the handle, or "" if the
// handle is empty or malformed.
func (p Photo) MIMEType() string {
	s, ok := strings.CutPrefix(string(p), "data:")
	if !ok {
		return ""
	}
	mime, _, ok := strings.Cut(s, ";")
	if !ok {
		return ""
	}
	return mime
}

// Size returns the decoded size in bytes without decoding the payload.
func (p Photo) Size() int {
	_, enc, ok := strings.Cut(string(p), ";base64,")
	if !ok {
		return 0
	}
	return base64.StdEncoding.DecodedLen(len(enc)) - strings.Count(enc[max(0, len(enc)-2):], "=")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
