package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier
	Bounds  image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Sampler core.Sampler    // Tile-owned sampler, never shared between workers
}

// NewTile creates a tile whose sampler is seeded from the tile ID
func NewTile(id int, bounds image.Rectangle) *Tile {
	return NewSeededTile(id, bounds, 42) // +42 to avoid seed 0
}

// NewSeededTile creates a tile whose sampler is seeded with seed + id
func NewSeededTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewRandomSampler(rand.New(rand.NewSource(seed + int64(id)))),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	return NewSeededTileGrid(width, height, tileSize, 42)
}

// NewSeededTileGrid creates a grid of tiles whose samplers derive from seed
func NewSeededTileGrid(width, height, tileSize int, seed int64) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultProgressiveConfig().TileSize
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewSeededTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders tiles into a shared pixel statistics grid
type TileRenderer struct {
	raytracer *Raytracer
}

// NewTileRenderer creates a tile renderer on top of a raytracer
func NewTileRenderer(raytracer *Raytracer) *TileRenderer {
	return &TileRenderer{raytracer: raytracer}
}

// RenderTile brings every pixel of the tile up to targetSamples using the tile's sampler.
// Tiles cover disjoint pixels, so concurrent calls on different tiles never share state.
func (tr *TileRenderer) RenderTile(tile *Tile, pixelStats [][]PixelStats, targetSamples int) RenderStats {
	return tr.raytracer.RenderBounds(tile.Bounds, pixelStats, tile.Sampler, targetSamples)
}
