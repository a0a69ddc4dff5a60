package parallel

import "image"

// TileGrid divides a screen into 64x64 pixel tiles.
//
// Tiles are stored in a flat slice in row-major order, accessed via
// index = ty * tilesX + tx.
//
// Thread safety: TileGrid is NOT thread-safe.
type TileGrid struct {
	tiles  []*Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a tile grid covering a width x height screen.
// Non-positive dimensions produce an empty grid.
func NewTileGrid(width, height int) *TileGrid {
	if width <= 0 || height <= 0 {
		return &TileGrid{}
	}

	g := &TileGrid{
		tilesX: (width + TileWidth - 1) / TileWidth,
		tilesY: (height + TileHeight - 1) / TileHeight,
		width:  width,
		height: height,
	}
	g.tiles = make([]*Tile, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			tileW := TileWidth
			tileH := TileHeight
			// Right and bottom edge tiles
			if (tx+1)*TileWidth > width {
				tileW = width - tx*TileWidth
			}
			if (ty+1)*TileHeight > height {
				tileH = height - ty*TileHeight
			}

			idx := ty*g.tilesX + tx
			g.tiles[idx] = &Tile{X: tx, Y: ty, Index: idx, Width: tileW, Height: tileH}
		}
	}
	return g
}

// tileRange converts a pixel rectangle to an inclusive range of tile
// coordinates, clipped to the grid. ok is false if nothing intersects.
func (g *TileGrid) tileRange(r image.Rectangle) (tx1, ty1, tx2, ty2 int, ok bool) {
	r = r.Intersect(image.Rect(0, 0, g.width, g.height))
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	return r.Min.X / TileWidth, r.Min.Y / TileHeight,
		(r.Max.X - 1) / TileWidth, (r.Max.Y - 1) / TileHeight, true
}

// Bin adds item to every tile intersecting the pixel rectangle r.
// It reports whether any tile received the item.
func (g *TileGrid) Bin(item int, r image.Rectangle) bool {
	tx1, ty1, tx2, ty2, ok := g.tileRange(r)
	if !ok {
		return false
	}
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			g.tiles[ty*g.tilesX+tx].add(item)
		}
	}
	return true
}

// Reset empties every bin.
func (g *TileGrid) Reset() {
	for _, tile := range g.tiles {
		tile.Reset()
	}
}

// DirtyTiles returns all tiles with a non-empty bin.
// The returned slice is newly allocated and can be safely modified.
func (g *TileGrid) DirtyTiles() []*Tile {
	result := make([]*Tile, 0, len(g.tiles))
	for _, tile := range g.tiles {
		if tile.Dirty {
			result = append(result, tile)
		}
	}
	return result
}

// AllTiles returns all tiles in the grid.
// The returned slice should not be modified.
func (g *TileGrid) AllTiles() []*Tile {
	return g.tiles
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}
