package templates

import "fmt"

// Category groups templates in the gallery.
type Category string

const (
	CategoryWeb    Category = "web"
	CategoryMobile Category = "mobile"
)

func (c Category) Valid() bool {
	return c == CategoryWeb || c == CategoryMobile
}

// ParseCategory accepts the lower-case category names used in the catalogue
// and in query strings.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Slot is the region of the template canvas, in template pixels, where user
// content is drawn.
type Slot struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type Template struct {
	ID           string   `json:"id" yaml:"id"`
	Label        string   `json:"label" yaml:"label"`
	Category     Category `json:"category" yaml:"category"`
	ArtworkRef   string   `json:"artwork" yaml:"artwork"`
	Slot         Slot     `json:"slot" yaml:"slot"`
	CornerRadius float64  `json:"corner_radius" yaml:"corner_radius"`
	Thumbnail    string   `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
}

func (t Template) validate() error {
	if t.ID == "" {
		return fmt.Errorf("template has empty id")
	}
	if !t.Category.Valid() {
		return fmt.Errorf("template %s: unknown category %q", t.ID, t.Category)
	}
	if t.ArtworkRef == "" {
		return fmt.Errorf("template %s: missing artwork", t.ID)
	}
	if t.Slot.Width <= 0 || t.Slot.Height <= 0 {
		return fmt.Errorf("template %s: slot must have positive size, got %gx%g", t.ID, t.Slot.Width, t.Slot.Height)
	}
	if t.CornerRadius < 0 {
		return fmt.Errorf("template %s: negative corner radius %g", t.ID, t.CornerRadius)
	}
	return nil
}
