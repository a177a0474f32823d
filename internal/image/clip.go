package imagepkg

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/youruser/mockupkit/internal/templates"
)

// kappa approximates a quarter circle with one cubic Bezier segment:
// 4 * (sqrt(2) - 1) / 3.
const kappa = 0.5522847498307936

// SlotMask rasterizes the slot clip region into an alpha mask covering
// bounds. Pixels inside the slot are opaque, pixels outside are transparent,
// and edges crossing a pixel are anti-aliased. A positive radius rounds the
// four corners; it is clamped with ClampRadius first.
func SlotMask(bounds image.Rectangle, slot templates.Slot, radius float64) *image.Alpha {
	mask := image.NewAlpha(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return mask
	}

	scanner := rasterx.NewScannerGV(w, h, mask, bounds)
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetColor(color.Alpha{A: 0xff})

	addSlotPath(filler, slot, ClampRadius(radius, slot.Width, slot.Height))
	filler.Draw()
	return mask
}

// addSlotPath traces the slot clockwise. With r > 0 each corner is a
// quarter-circle arc joining the two adjacent edges.
func addSlotPath(p rasterx.Adder, s templates.Slot, r float64) {
	x0, y0 := s.X, s.Y
	x1, y1 := s.X+s.Width, s.Y+s.Height

	if r <= 0 {
		p.Start(pt(x0, y0))
		p.Line(pt(x1, y0))
		p.Line(pt(x1, y1))
		p.Line(pt(x0, y1))
		p.Stop(true)
		return
	}

	k := kappa * r
	p.Start(pt(x0+r, y0))

	p.Line(pt(x1-r, y0))
	p.CubeBezier(pt(x1-r+k, y0), pt(x1, y0+r-k), pt(x1, y0+r))

	p.Line(pt(x1, y1-r))
	p.CubeBezier(pt(x1, y1-r+k), pt(x1-r+k, y1), pt(x1-r, y1))

	p.Line(pt(x0+r, y1))
	p.CubeBezier(pt(x0+r-k, y1), pt(x0, y1-r+k), pt(x0, y1-r))

	p.Line(pt(x0, y0+r))
	p.CubeBezier(pt(x0, y0+r-k), pt(x0+r-k, y0), pt(x0+r, y0))

	p.Stop(true)
}

func pt(x, y float64) fixed.Point26_6 {
	return rasterx.ToFixedP(x, y)
}
