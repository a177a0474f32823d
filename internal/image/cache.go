package imagepkg

import (
	"image"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultArtworkTTL      = 30 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// ArtworkCache keeps decoded template artwork keyed by artwork ref. Decoded
// images are shared read-only between compositions and must never be drawn
// into. A nil *ArtworkCache caches nothing.
type ArtworkCache struct {
	cache *gocache.Cache
}

func NewArtworkCache(ttl, cleanupInterval time.Duration) *ArtworkCache {
	return &ArtworkCache{cache: gocache.New(ttl, cleanupInterval)}
}

func (a *ArtworkCache) Get(ref string) (image.Image, bool) {
	if a == nil {
		return nil, false
	}
	v, found := a.cache.Get(ref)
	if !found {
		return nil, false
	}
	img, ok := v.(image.Image)
	return img, ok
}

func (a *ArtworkCache) Set(ref string, img image.Image) {
	if a == nil {
		return
	}
	a.cache.SetDefault(ref, img)
}

func (a *ArtworkCache) Len() int {
	if a == nil {
		return 0
	}
	return a.cache.ItemCount()
}
