package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	imagepkg "github.com/youruser/mockupkit/internal/image"
	"github.com/youruser/mockupkit/internal/util"
)

const DefaultFilename = "mockup.png"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename names a download: mockup-<template>-<unix millis>.png.
func Filename(templateID string, t time.Time) string {
	id := unsafeChars.ReplaceAllString(templateID, "-")
	if id == "" {
		return DefaultFilename
	}
	return fmt.Sprintf("mockup-%s-%d.png", id, t.UnixMilli())
}

// DataURL wraps a composed PNG for inline display.
func DataURL(res *imagepkg.Result) string {
	return imagepkg.EncodeDataURL("image/png", res.PNG)
}

// Save writes res into dir under name and returns the file path. An empty
// name falls back to Filename for the result's template.
func Save(dir, name string, res *imagepkg.Result) (string, error) {
	if name == "" {
		name = Filename(res.TemplateID, time.Now())
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("export name %q must not contain a directory", name)
	}
	if dir == "" {
		dir = "."
	}
	p := filepath.Join(dir, name)
	if err := util.WriteFileAtomic(p, res.PNG); err != nil {
		return "", fmt.Errorf("saving %s: %w", p, err)
	}
	return p, nil
}
