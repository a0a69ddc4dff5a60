// Package parallel provides tile-based parallel rasterization for soft3d.
//
// The screen is divided into 64x64 pixel tiles. Triangles are binned into
// every tile their screen bounding box touches, and each tile is then
// rasterized by exactly one worker. Because tiles never overlap, per-pixel
// depth tests inside a tile need no locking, and rasterizing a tile's bin
// in submission order reproduces the single-threaded result exactly.
//
// Thread safety: TileGrid is NOT thread-safe. Binning happens on the
// calling goroutine; only Scheduler.Run fans out to the WorkerPool.
package parallel

import "image"

// Tile size constants.
const (
	// TileWidth is the width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the height of a tile in pixels.
	TileHeight = 64
)

// Tile represents a rectangular screen region rasterized by one worker.
//
// Edge tiles may have smaller actual dimensions when the screen is not
// evenly divisible by the tile size.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Index is the tile's position in the grid (Y*tilesX + X).
	Index int

	// Width is the actual width in pixels (may be < TileWidth for edge tiles).
	Width int

	// Height is the actual height in pixels (may be < TileHeight for edge tiles).
	Height int

	// Dirty indicates that at least one item was binned this frame.
	Dirty bool

	// Items holds the indices of the primitives binned into this tile,
	// in submission order.
	Items []int
}

// Reset empties the bin and clears the dirty flag, keeping the
// bin's capacity for the next frame.
func (t *Tile) Reset() {
	t.Items = t.Items[:0]
	t.Dirty = false
}

// Bounds returns the pixel bounds of this tile in screen space.
func (t *Tile) Bounds() image.Rectangle {
	x := t.X * TileWidth
	y := t.Y * TileHeight
	return image.Rect(x, y, x+t.Width, y+t.Height)
}

// add appends an item to the bin and marks the tile dirty.
func (t *Tile) add(item int) {
	t.Items = append(t.Items, item)
	t.Dirty = true
}
