package main

import (
	"image"
	_ "image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// textureCache loads tile sheet textures once per path.
type textureCache struct {
	images map[string]*ebiten.Image
	failed map[string]bool
}

func newTextureCache() *textureCache {
	return &textureCache{
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]bool),
	}
}

// Get returns the texture for a sheet path, loading it from filename on
// first use. Missing files are logged once and yield nil.
func (c *textureCache) Get(path, filename string) *ebiten.Image {
	if img, ok := c.images[path]; ok {
		return img
	}
	if c.failed[path] {
		return nil
	}
	f, err := os.Open(filename)
	if err != nil {
		log.Printf("texture %s: %v", path, err)
		c.failed[path] = true
		return nil
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		log.Printf("texture %s: %v", path, err)
		c.failed[path] = true
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	c.images[path] = img
	return img
}

func (c *textureCache) Forget(path string) {
	delete(c.images, path)
	delete(c.failed, path)
}
