package imagepkg

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrImageLoad            = errors.New("image load failed")
	ErrUnsupportedFormat    = errors.New("unsupported image format")
	ErrOversizeInput        = errors.New("image exceeds size limit")
	ErrRenderingUnavailable = errors.New("rendering unavailable")
)

// Role identifies which input of a composition failed.
type Role string

const (
	RoleTemplate Role = "template"
	RoleUser     Role = "user"
)

// ImageLoadError reports a source that could not be fetched or decoded.
type ImageLoadError struct {
	Role   Role
	Source string
	Err    error
}

func (e *ImageLoadError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("loading image %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("loading %s image %s: %v", e.Role, e.Source, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

func (e *ImageLoadError) Is(target error) bool { return target == ErrImageLoad }

type UnsupportedFormatError struct {
	MIME string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported image format %q: use PNG, JPEG or WEBP", e.MIME)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

type OversizeInputError struct {
	Size  int64
	Limit int64
}

func (e *OversizeInputError) Error() string {
	return fmt.Sprintf("image is larger than %d bytes", e.Limit)
}

func (e *OversizeInputError) Is(target error) bool { return target == ErrOversizeInput }

// RenderingUnavailableError means no drawing surface could be allocated.
type RenderingUnavailableError struct {
	Err error
}

func (e *RenderingUnavailableError) Error() string {
	return fmt.Sprintf("rendering unavailable: %v", e.Err)
}

func (e *RenderingUnavailableError) Unwrap() error { return e.Err }

func (e *RenderingUnavailableError) Is(target error) bool {
	return target == ErrRenderingUnavailable
}
