package imagepkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/youruser/mockupkit/internal/templates"
)

// MaxCanvasPixels bounds the output canvas; larger artwork cannot be rendered.
const MaxCanvasPixels = MaxDecodePixels

// Request is one composition: a template and the user image to place in it.
type Request struct {
	Template templates.Template
	User     Source
	Fit      FitMode
}

// Result is an encoded PNG the size of the template artwork.
type Result struct {
	PNG        []byte
	Width      int
	Height     int
	TemplateID string
	Fit        FitMode
	Geometry   FitGeometry
}

// Compositor places user images into template slots. It holds no per-request
// state; each Compose allocates its own canvas, so one Compositor may serve
// concurrent requests.
type Compositor struct {
	resolver        *Resolver
	cache           *ArtworkCache
	log             *logrus.Entry
	maxCanvasPixels int64
}

type Option func(*Compositor)

func WithArtworkCache(cache *ArtworkCache) Option {
	return func(c *Compositor) { c.cache = cache }
}

func WithLogger(log *logrus.Entry) Option {
	return func(c *Compositor) { c.log = log }
}

func WithMaxCanvasPixels(n int64) Option {
	return func(c *Compositor) { c.maxCanvasPixels = n }
}

func NewCompositor(resolver *Resolver, opts ...Option) *Compositor {
	if resolver == nil {
		resolver = NewResolver(nil, 0)
	}
	c := &Compositor{
		resolver:        resolver,
		log:             logrus.NewEntry(logrus.StandardLogger()),
		maxCanvasPixels: MaxCanvasPixels,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CachedArtwork reports how many decoded artworks are held in the cache.
func (c *Compositor) CachedArtwork() int { return c.cache.Len() }

// Compose loads the template artwork and the user image, fits the user image
// into the slot, draws the artwork over it and returns the PNG encoding.
// Either load failing aborts with an *ImageLoadError naming the source.
func (c *Compositor) Compose(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	mode, err := ParseFitMode(string(req.Fit))
	if err != nil {
		return nil, err
	}
	if req.User == nil {
		return nil, &ImageLoadError{Role: RoleUser, Source: "<none>", Err: errors.New("no user image")}
	}
	log := c.log.WithFields(logrus.Fields{
		"template": req.Template.ID,
		"user":     req.User.Name(),
		"fit":      mode,
	})

	artwork, user, err := c.loadBoth(ctx, req.Template, req.User)
	if err != nil {
		log.WithError(err).Warn("compose: load failed")
		return nil, err
	}

	out, geo, err := c.render(artwork, user, req.Template, mode)
	if err != nil {
		log.WithError(err).Warn("compose: render failed")
		return nil, err
	}

	png, err := EncodePNG(out)
	if err != nil {
		return nil, &RenderingUnavailableError{Err: err}
	}

	b := out.Bounds()
	log.WithFields(logrus.Fields{
		"width":    b.Dx(),
		"height":   b.Dy(),
		"bytes":    len(png),
		"duration": time.Since(start).String(),
	}).Debug("compose: done")

	return &Result{
		PNG:        png,
		Width:      b.Dx(),
		Height:     b.Dy(),
		TemplateID: req.Template.ID,
		Fit:        mode,
		Geometry:   geo,
	}, nil
}

// loadBoth decodes the artwork and the user image concurrently and waits for
// both. The template error wins when both fail.
func (c *Compositor) loadBoth(ctx context.Context, tpl templates.Template, user Source) (image.Image, image.Image, error) {
	var (
		wg         sync.WaitGroup
		artwork    image.Image
		userImg    image.Image
		artworkErr error
		userErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		artwork, artworkErr = c.LoadArtwork(ctx, tpl)
	}()
	go func() {
		defer wg.Done()
		userImg, userErr = load(ctx, RoleUser, user)
	}()
	wg.Wait()

	if artworkErr != nil {
		return nil, nil, artworkErr
	}
	if userErr != nil {
		return nil, nil, userErr
	}
	return artwork, userImg, nil
}

// LoadArtwork returns the decoded artwork of tpl, from cache when possible.
func (c *Compositor) LoadArtwork(ctx context.Context, tpl templates.Template) (image.Image, error) {
	if img, ok := c.cache.Get(tpl.ArtworkRef); ok {
		return img, nil
	}
	src, err := c.resolver.Resolve(tpl.ArtworkRef)
	if err != nil {
		return nil, &ImageLoadError{Role: RoleTemplate, Source: tpl.ArtworkRef, Err: err}
	}
	img, err := load(ctx, RoleTemplate, src)
	if err != nil {
		return nil, err
	}
	c.cache.Set(tpl.ArtworkRef, img)
	return img, nil
}

func load(ctx context.Context, role Role, src Source) (image.Image, error) {
	img, err := Decode(ctx, src)
	if err != nil {
		return nil, &ImageLoadError{Role: role, Source: src.Name(), Err: err}
	}
	return img, nil
}

func (c *Compositor) render(artwork, user image.Image, tpl templates.Template, mode FitMode) (out *image.NRGBA, geo FitGeometry, err error) {
	ab := artwork.Bounds()
	if ab.Empty() {
		return nil, FitGeometry{}, &RenderingUnavailableError{Err: errors.New("template artwork is empty")}
	}
	if int64(ab.Dx())*int64(ab.Dy()) > c.maxCanvasPixels {
		return nil, FitGeometry{}, &RenderingUnavailableError{
			Err: fmt.Errorf("canvas %dx%d exceeds %d pixels", ab.Dx(), ab.Dy(), c.maxCanvasPixels),
		}
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &RenderingUnavailableError{Err: fmt.Errorf("drawing: %v", r)}
		}
	}()
	return Render(artwork, user, tpl, mode)
}

// Render is the synchronous half of Compose: it fits user into the slot of
// tpl on a fresh canvas the size of artwork, then draws artwork over it.
// Inputs are not modified.
func Render(artwork, user image.Image, tpl templates.Template, mode FitMode) (*image.NRGBA, FitGeometry, error) {
	ub := user.Bounds()
	geo, err := Fit(float64(ub.Dx()), float64(ub.Dy()), tpl.Slot.Width, tpl.Slot.Height, mode)
	if err != nil {
		return nil, FitGeometry{}, err
	}

	ab := artwork.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, ab.Dx(), ab.Dy()))

	mask := SlotMask(canvas.Bounds(), tpl.Slot, tpl.CornerRadius)
	drawFitted(canvas, user, tpl.Slot, geo, mask)

	draw.Draw(canvas, canvas.Bounds(), artwork, ab.Min, draw.Over)
	return imaging.Clone(canvas), geo, nil
}

// drawFitted draws src scaled to geo at the slot position, through mask.
// Only the part of src that can land inside the slot is resampled.
func drawFitted(dst draw.Image, src image.Image, slot templates.Slot, geo FitGeometry, mask image.Image) {
	x0 := slot.X + geo.OffsetX
	y0 := slot.Y + geo.OffsetY

	visible := image.Rect(
		int(math.Floor(math.Max(x0, slot.X))),
		int(math.Floor(math.Max(y0, slot.Y))),
		int(math.Ceil(math.Min(x0+geo.DrawWidth, slot.X+slot.Width))),
		int(math.Ceil(math.Min(y0+geo.DrawHeight, slot.Y+slot.Height))),
	).Intersect(dst.Bounds())
	if visible.Empty() {
		return
	}

	sb := src.Bounds()
	sx := geo.DrawWidth / float64(sb.Dx())
	sy := geo.DrawHeight / float64(sb.Dy())

	crop := image.Rect(
		sb.Min.X+int(math.Floor((float64(visible.Min.X)-x0)/sx)),
		sb.Min.Y+int(math.Floor((float64(visible.Min.Y)-y0)/sy)),
		sb.Min.X+int(math.Ceil((float64(visible.Max.X)-x0)/sx)),
		sb.Min.Y+int(math.Ceil((float64(visible.Max.Y)-y0)/sy)),
	).Intersect(sb)
	if crop.Empty() {
		return
	}

	// Where the cropped source lands on dst, at full scale.
	cx := x0 + float64(crop.Min.X-sb.Min.X)*sx
	cy := y0 + float64(crop.Min.Y-sb.Min.Y)*sy
	cw := max(1, int(math.Round(float64(crop.Dx())*sx)))
	ch := max(1, int(math.Round(float64(crop.Dy())*sy)))

	scaled := imaging.Resize(imaging.Crop(src, crop), cw, ch, imaging.Lanczos)
	target := image.Rect(0, 0, cw, ch).Add(image.Pt(int(math.Round(cx)), int(math.Round(cy))))

	r := target.Intersect(visible)
	if r.Empty() {
		return
	}
	sp := r.Min.Sub(target.Min)
	draw.DrawMask(dst, r, scaled, sp, mask, r.Min, draw.Over)
}

// EncodePNG encodes img losslessly with the full alpha channel.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
