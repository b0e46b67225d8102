package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrNoBackground is returned when an operation needs a background image and
// none has been loaded.
var ErrNoBackground = errors.New("no background image loaded")

// ImageCache keeps decoded background images keyed by path so reloading the
// same screenshot does not hit the disk again.
//
// ImageCache is safe for concurrent use.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	img    image.Image
	format string
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		entries: make(map[string]cacheEntry),
	}
}

// Load returns the decoded image at path, reading it on first use.
// Supported formats are PNG, JPEG, GIF, BMP and WebP.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return cacheEntry{}, fmt.Errorf("failed to decode image: %w", err)
	}

	e := cacheEntry{img: img, format: format}
	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()
	return e, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict drops the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Background is the image an annotation session draws over.
type Background struct {
	Path   string      `json:"path"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Format string      `json:"format"`
	Image  image.Image `json:"-"`
}

// LoadBackground loads path through cache and describes it. Format is the
// decoder name reported by image.Decode ("png", "jpeg", "gif", "bmp" or "webp").
func LoadBackground(cache *ImageCache, path string) (*Background, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}
	b := e.img.Bounds()
	return &Background{
		Path:   path,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: e.format,
		Image:  e.img,
	}, nil
}
