package imagepkg

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/youruser/mockupkit/internal/templates"
)

func TestSlotMask_Rectangle(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	slot := templates.Slot{X: 10, Y: 10, Width: 50, Height: 40}

	mask := SlotMask(bounds, slot, 0)
	require.Equal(t, bounds, mask.Bounds())

	require.EqualValues(t, 0xff, mask.AlphaAt(10, 10).A, "slot corner is inside a plain rect")
	require.EqualValues(t, 0xff, mask.AlphaAt(35, 30).A)
	require.EqualValues(t, 0xff, mask.AlphaAt(59, 49).A)
	require.EqualValues(t, 0, mask.AlphaAt(9, 30).A)
	require.EqualValues(t, 0, mask.AlphaAt(60, 30).A)
	require.EqualValues(t, 0, mask.AlphaAt(35, 50).A)
}

func TestSlotMask_RoundedCorners(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	slot := templates.Slot{X: 10, Y: 10, Width: 50, Height: 40}

	mask := SlotMask(bounds, slot, 10)

	for _, p := range []image.Point{{10, 10}, {59, 10}, {10, 49}, {59, 49}} {
		require.EqualValues(t, 0, mask.AlphaAt(p.X, p.Y).A, "corner %v is cut", p)
	}
	// Edge midpoints and the centre stay opaque.
	for _, p := range []image.Point{{35, 10}, {10, 30}, {59, 30}, {35, 49}, {35, 30}} {
		require.EqualValues(t, 0xff, mask.AlphaAt(p.X, p.Y).A, "point %v is inside", p)
	}
	// Just inside the arc, along the diagonal from the arc centre (20,20).
	require.EqualValues(t, 0xff, mask.AlphaAt(15, 15).A)
}

func TestSlotMask_ClampedRadiusMatchesHalfSide(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(2, 60).Draw(rt, "w")
		h := rapid.IntRange(2, 60).Draw(rt, "h")
		extra := rapid.IntRange(0, 500).Draw(rt, "extra")

		bounds := image.Rect(0, 0, 64, 64)
		slot := templates.Slot{X: 2, Y: 2, Width: float64(w), Height: float64(h)}
		half := float64(min(w, h)) / 2

		clamped := SlotMask(bounds, slot, half)
		oversized := SlotMask(bounds, slot, half+float64(extra))
		require.Equal(rt, clamped.Pix, oversized.Pix)
	})
}

func TestSlotMask_EmptyBounds(t *testing.T) {
	mask := SlotMask(image.Rectangle{}, templates.Slot{Width: 10, Height: 10}, 4)
	require.True(t, mask.Bounds().Empty())
}
