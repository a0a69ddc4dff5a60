package parallel

import "image"

// Scheduler bins primitives into screen tiles and rasterizes the tiles in
// parallel on a WorkerPool.
//
// A frame is: Reset, one Bin call per primitive in submission order, then
// Run (or RunAll for work that must touch every tile, such as clearing).
type Scheduler struct {
	grid *TileGrid
	pool *WorkerPool
}

// NewScheduler creates a scheduler for a width x height screen.
// If workers <= 0, GOMAXPROCS is used.
// Returns nil if width or height is <= 0.
func NewScheduler(width, height, workers int) *Scheduler {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &Scheduler{
		grid: NewTileGrid(width, height),
		pool: NewWorkerPool(workers),
	}
}

// Grid returns the underlying TileGrid.
func (s *Scheduler) Grid() *TileGrid {
	return s.grid
}

// Workers returns the number of pool workers.
func (s *Scheduler) Workers() int {
	return s.pool.Workers()
}

// Reset empties every tile bin.
func (s *Scheduler) Reset() {
	s.grid.Reset()
}

// Bin records that primitive item may cover pixels inside r.
// It reports whether r intersects the screen at all.
func (s *Scheduler) Bin(item int, r image.Rectangle) bool {
	return s.grid.Bin(item, r)
}

// Run calls fn once for every tile with a non-empty bin, in parallel, and
// returns the number of such tiles. fn must only touch pixels inside
// t.Bounds().
func (s *Scheduler) Run(fn func(t *Tile)) int {
	return s.run(s.grid.DirtyTiles(), fn)
}

// RunAll calls fn once for every tile, in parallel.
func (s *Scheduler) RunAll(fn func(t *Tile)) {
	s.run(s.grid.AllTiles(), fn)
}

func (s *Scheduler) run(tiles []*Tile, fn func(t *Tile)) int {
	if len(tiles) == 0 || fn == nil {
		return 0
	}
	work := make([]func(), len(tiles))
	for i, tile := range tiles {
		work[i] = func() {
			fn(tile)
		}
	}
	s.pool.ExecuteAll(work)
	return len(tiles)
}

// Close releases the worker pool.
// The scheduler should not be used after Close is called.
func (s *Scheduler) Close() {
	s.pool.Close()
}
