package images

import (
	"image"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// PreviewKey identifies a scaled rendition of one source image.
type PreviewKey struct {
	Generation uint64
	W, H       int
}

// PreviewCache keeps recently scaled previews so that redrawing the selection
// feedback does not resample the source on every pointer event.
type PreviewCache struct {
	cache  *lru.Cache[PreviewKey, image.Image]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewPreviewCache returns a cache holding up to size previews.
func NewPreviewCache(size int) *PreviewCache {
	c, err := lru.New[PreviewKey, image.Image](max(size, 1))
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &PreviewCache{cache: c}
}

// Scaled returns src scaled to w x h, computing and storing it on a miss.
func (c *PreviewCache) Scaled(gen uint64, src image.Image, w, h int) image.Image {
	if src == nil {
		return nil
	}
	if c == nil {
		return ScaleTo(src, w, h)
	}
	key := PreviewKey{Generation: gen, W: w, H: h}
	if img, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return img
	}
	c.misses.Add(1)
	img := ScaleTo(src, w, h)
	c.cache.Add(key, img)
	return img
}

// Purge drops every cached preview.
func (c *PreviewCache) Purge() {
	if c != nil {
		c.cache.Purge()
	}
}

// Len reports how many previews are cached.
func (c *PreviewCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}

// Stats returns cache hit and miss counts.
func (c *PreviewCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
