package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_DeclarationOrder(t *testing.T) {
	reg := DefaultRegistry()

	var ids []string
	for _, tpl := range reg.All() {
		ids = append(ids, tpl.ID)
	}
	require.Equal(t, []string{
		"web-browser-light",
		"web-browser-dark",
		"mobile-iphone",
		"mobile-android",
		"web-imac-silver",
	}, ids)
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	reg := DefaultRegistry()

	first := reg.All()
	first[0].Label = "mutated"

	require.Equal(t, "Browser Light", reg.All()[0].Label)
}

func TestRegistry_ByCategory(t *testing.T) {
	reg := DefaultRegistry()

	mobile := reg.ByCategory(CategoryMobile)
	require.Len(t, mobile, 2)
	assert.Equal(t, "mobile-iphone", mobile[0].ID)
	assert.Equal(t, "mobile-android", mobile[1].ID)

	web := reg.ByCategory(CategoryWeb)
	require.Len(t, web, 3)
	assert.Equal(t, "web-imac-silver", web[2].ID)

	none := reg.ByCategory(Category("tablet"))
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestRegistry_FindByID(t *testing.T) {
	reg := DefaultRegistry()

	tpl, ok := reg.FindByID("mobile-iphone")
	require.True(t, ok)
	assert.Equal(t, Slot{X: 26, Y: 26, Width: 390, Height: 844}, tpl.Slot)
	assert.Equal(t, 47.0, tpl.CornerRadius)
	assert.Equal(t, "embed://mobile-iphone.svg", tpl.ArtworkRef)

	android, ok := reg.FindByID("mobile-android")
	require.True(t, ok)
	assert.Equal(t, Slot{X: 4, Y: 4, Width: 424, Height: 915}, android.Slot)
	assert.Equal(t, 36.0, android.CornerRadius)

	_, ok = reg.FindByID("Mobile-iPhone")
	require.False(t, ok, "lookup is an exact match")
}

func TestRegistry_LookupNotFound(t *testing.T) {
	reg := DefaultRegistry()

	_, err := reg.Lookup("does-not-exist")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestNewRegistry_Validation(t *testing.T) {
	valid := Template{
		ID:         "a",
		Category:   CategoryWeb,
		ArtworkRef: "embed://a.svg",
		Slot:       Slot{Width: 10, Height: 10},
	}

	tests := []struct {
		name   string
		mutate func(*Template)
		errMsg string
	}{
		{"empty id", func(t *Template) { t.ID = "" }, "empty id"},
		{"bad category", func(t *Template) { t.Category = "tv" }, "unknown category"},
		{"missing artwork", func(t *Template) { t.ArtworkRef = "" }, "missing artwork"},
		{"zero width", func(t *Template) { t.Slot.Width = 0 }, "positive size"},
		{"negative height", func(t *Template) { t.Slot.Height = -1 }, "positive size"},
		{"negative radius", func(t *Template) { t.CornerRadius = -2 }, "negative corner radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := valid
			tt.mutate(&tpl)
			_, err := NewRegistry([]Template{tpl})
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := NewRegistry([]Template{valid, valid})
	require.ErrorContains(t, err, "duplicate template id")
}

func TestParseCatalogue(t *testing.T) {
	src := `
templates:
  - id: tablet
    label: Tablet
    category: mobile
    artwork: /srv/frames/tablet.png
    slot: {x: 10, y: 12, width: 800, height: 600}
`
	reg, err := ParseCatalogue(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	tpl, ok := reg.FindByID("tablet")
	require.True(t, ok)
	assert.Equal(t, 0.0, tpl.CornerRadius, "corner radius defaults to zero")
	assert.Equal(t, "/srv/frames/tablet.png", tpl.ArtworkRef)
}

func TestParseCatalogue_UnknownField(t *testing.T) {
	src := `
templates:
  - id: tablet
    colour: red
`
	_, err := ParseCatalogue(strings.NewReader(src))
	require.Error(t, err)
}

func TestLoadCatalogueFile_Missing(t *testing.T) {
	_, err := LoadCatalogueFile(t.TempDir() + "/nope.yaml")
	require.Error(t, err)
}

func TestAssets_ArtworkPresent(t *testing.T) {
	for _, tpl := range DefaultRegistry().All() {
		name := strings.TrimPrefix(tpl.ArtworkRef, EmbedScheme)
		_, err := Assets.ReadFile(AssetsDir + "/" + name)
		require.NoError(t, err, tpl.ID)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("web")
	require.NoError(t, err)
	require.Equal(t, CategoryWeb, c)

	_, err = ParseCategory("Web")
	require.Error(t, err)
}
