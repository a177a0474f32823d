// Package upload validates user-supplied images at the boundary, before any
// decoding is attempted.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	imagepkg "github.com/youruser/mockupkit/internal/image"
)

// DefaultMaxBytes is the largest accepted upload.
const DefaultMaxBytes = 10 << 20

// Accepted lists the MIME types a user image may have.
var Accepted = []string{"image/png", "image/jpeg", "image/webp"}

// Acquire reads an uploaded file and returns it as a Source. Files larger
// than limit fail with *imagepkg.OversizeInputError; files whose content is
// not PNG, JPEG or WEBP fail with *imagepkg.UnsupportedFormatError. A limit
// of zero or less means DefaultMaxBytes.
func Acquire(name string, r io.Reader, limit int64) (imagepkg.BytesSource, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return imagepkg.BytesSource{}, fmt.Errorf("reading upload %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return imagepkg.BytesSource{}, &imagepkg.OversizeInputError{Size: int64(len(data)), Limit: limit}
	}
	if err := CheckFormat(data); err != nil {
		return imagepkg.BytesSource{}, err
	}
	return imagepkg.BytesSource{Label: name, Data: data}, nil
}

// CheckSize rejects a declared size above limit without reading the body.
func CheckSize(size, limit int64) error {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if size > limit {
		return &imagepkg.OversizeInputError{Size: size, Limit: limit}
	}
	return nil
}

// CheckFormat sniffs data and rejects anything outside Accepted.
func CheckFormat(data []byte) error {
	mime := DetectMIME(data)
	for _, a := range Accepted {
		if mime == a {
			return nil
		}
	}
	return &imagepkg.UnsupportedFormatError{MIME: mime}
}

// DetectMIME sniffs the content type of data.
func DetectMIME(data []byte) string {
	// DetectContentType also requires the VP8 chunk tag after the FourCC,
	// which some encoders' RIFF headers do not match.
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return "image/webp"
	}
	return http.DetectContentType(data)
}
