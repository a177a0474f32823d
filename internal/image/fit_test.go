package imagepkg

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const tolerance = 1e-9

func TestFit_BrowserSlot(t *testing.T) {
	// 800x600 into the 1920x1008 browser viewport. The image is relatively
	// taller than the slot, so cover matches the width and crops vertically.
	cover, err := Fit(800, 600, 1920, 1008, FitCover)
	require.NoError(t, err)
	require.Equal(t, FitGeometry{DrawWidth: 1920, DrawHeight: 1440, OffsetX: 0, OffsetY: -216}, cover)

	contain, err := Fit(800, 600, 1920, 1008, FitContain)
	require.NoError(t, err)
	require.Equal(t, FitGeometry{DrawWidth: 1344, DrawHeight: 1008, OffsetX: 288, OffsetY: 0}, contain)
}

func TestFit_ExactMatchIPhone(t *testing.T) {
	want := FitGeometry{DrawWidth: 390, DrawHeight: 844}
	for _, mode := range []FitMode{FitCover, FitContain} {
		g, err := Fit(390, 844, 390, 844, mode)
		require.NoError(t, err)
		require.Equal(t, want, g, mode)
	}
}

func TestFit_WideImage(t *testing.T) {
	g, err := Fit(2000, 500, 400, 400, FitCover)
	require.NoError(t, err)
	require.Equal(t, FitGeometry{DrawWidth: 1600, DrawHeight: 400, OffsetX: -600}, g)

	g, err = Fit(2000, 500, 400, 400, FitContain)
	require.NoError(t, err)
	require.Equal(t, FitGeometry{DrawWidth: 400, DrawHeight: 100, OffsetY: 150}, g)
}

func TestFit_DefaultModeIsCover(t *testing.T) {
	def, err := Fit(800, 600, 1920, 1008, "")
	require.NoError(t, err)
	cover, err := Fit(800, 600, 1920, 1008, FitCover)
	require.NoError(t, err)
	require.Equal(t, cover, def)
}

func TestFit_InvalidImage(t *testing.T) {
	for _, dims := range [][2]float64{{800, 0}, {0, 600}, {0, 0}} {
		_, err := Fit(dims[0], dims[1], 390, 844, FitCover)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrImageLoad), "got %v", err)

		var loadErr *ImageLoadError
		require.ErrorAs(t, err, &loadErr)
		require.Equal(t, RoleUser, loadErr.Role)
	}
}

func TestFit_UnknownMode(t *testing.T) {
	_, err := Fit(10, 10, 10, 10, FitMode("stretch"))
	require.Error(t, err)
}

func TestParseFitMode(t *testing.T) {
	m, err := ParseFitMode("")
	require.NoError(t, err)
	require.Equal(t, FitCover, m)

	m, err = ParseFitMode("contain")
	require.NoError(t, err)
	require.Equal(t, FitContain, m)

	_, err = ParseFitMode("fill")
	require.Error(t, err)
}

func TestClampRadius(t *testing.T) {
	require.Equal(t, 0.0, ClampRadius(0, 100, 50))
	require.Equal(t, 0.0, ClampRadius(-4, 100, 50))
	require.Equal(t, 10.0, ClampRadius(10, 100, 50))
	require.Equal(t, 25.0, ClampRadius(25, 100, 50))
	require.Equal(t, 25.0, ClampRadius(400, 100, 50))
}

// ===========================================================================
// Property-Based Tests (using pgregory.net/rapid)
// ===========================================================================

func drawDims(rt *rapid.T) (iw, ih, sw, sh float64) {
	iw = float64(rapid.IntRange(1, 8000).Draw(rt, "iw"))
	ih = float64(rapid.IntRange(1, 8000).Draw(rt, "ih"))
	sw = float64(rapid.IntRange(1, 4000).Draw(rt, "sw"))
	sh = float64(rapid.IntRange(1, 4000).Draw(rt, "sh"))
	return
}

func approxGE(a, b float64) bool { return a >= b-tolerance*math.Max(1, b) }
func approxLE(a, b float64) bool { return a <= b+tolerance*math.Max(1, b) }

func TestProperty_CoverNeverUnderfills(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		iw, ih, sw, sh := drawDims(rt)
		g, err := Fit(iw, ih, sw, sh, FitCover)
		require.NoError(rt, err)
		require.True(rt, approxGE(g.DrawWidth, sw), "drawWidth %v < slot %v", g.DrawWidth, sw)
		require.True(rt, approxGE(g.DrawHeight, sh), "drawHeight %v < slot %v", g.DrawHeight, sh)
		require.True(rt, g.OffsetX <= tolerance && g.OffsetY <= tolerance, "cover offsets are never positive")
	})
}

func TestProperty_ContainNeverOverflows(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		iw, ih, sw, sh := drawDims(rt)
		g, err := Fit(iw, ih, sw, sh, FitContain)
		require.NoError(rt, err)
		require.True(rt, approxLE(g.DrawWidth, sw), "drawWidth %v > slot %v", g.DrawWidth, sw)
		require.True(rt, approxLE(g.DrawHeight, sh), "drawHeight %v > slot %v", g.DrawHeight, sh)
		require.True(rt, g.OffsetX >= -tolerance && g.OffsetY >= -tolerance, "contain offsets are never negative")
	})
}

func TestProperty_AspectRatioPreserved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		iw, ih, sw, sh := drawDims(rt)
		mode := rapid.SampledFrom([]FitMode{FitCover, FitContain}).Draw(rt, "mode")
		g, err := Fit(iw, ih, sw, sh, mode)
		require.NoError(rt, err)
		require.InEpsilon(rt, iw/ih, g.DrawWidth/g.DrawHeight, 1e-9)
	})
}

func TestProperty_ImageCentred(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		iw, ih, sw, sh := drawDims(rt)
		mode := rapid.SampledFrom([]FitMode{FitCover, FitContain}).Draw(rt, "mode")
		g, err := Fit(iw, ih, sw, sh, mode)
		require.NoError(rt, err)
		require.InDelta(rt, sw/2, g.OffsetX+g.DrawWidth/2, 1e-6)
		require.InDelta(rt, sh/2, g.OffsetY+g.DrawHeight/2, 1e-6)
	})
}

func TestProperty_MatchingRatioIsIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := float64(rapid.IntRange(1, 64).Draw(rt, "a"))
		b := float64(rapid.IntRange(1, 64).Draw(rt, "b"))
		k1 := float64(rapid.IntRange(1, 64).Draw(rt, "k1"))
		k2 := float64(rapid.IntRange(1, 64).Draw(rt, "k2"))
		iw, ih, sw, sh := a*k1, b*k1, a*k2, b*k2

		cover, err := Fit(iw, ih, sw, sh, FitCover)
		require.NoError(rt, err)
		contain, err := Fit(iw, ih, sw, sh, FitContain)
		require.NoError(rt, err)

		want := FitGeometry{DrawWidth: sw, DrawHeight: sh}
		require.Equal(rt, want, cover)
		require.Equal(rt, want, contain)
	})
}

func TestProperty_ClampRadius(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sw := float64(rapid.IntRange(1, 4000).Draw(rt, "sw"))
		sh := float64(rapid.IntRange(1, 4000).Draw(rt, "sh"))
		half := math.Min(sw, sh) / 2
		extra := float64(rapid.IntRange(0, 10000).Draw(rt, "extra"))

		require.Equal(rt, half, ClampRadius(half+extra, sw, sh))
		require.LessOrEqual(rt, ClampRadius(extra, sw, sh), half)
	})
}
