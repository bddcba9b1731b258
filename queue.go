package tileatlas

import (
	"fmt"
	"maps"
	"slices"
)

// QueueItem is one pending registration of a BuildQueue.
type QueueItem[H any] struct {
	GroupID  string
	TileID   string
	Handle   H
	Settings TileSetSettings
}

// ImageSource resolves image handles registered with a BuildQueue.
//
// Image returns the RGBA8 pixels and dimensions of the image behind handle,
// or false if it is not available yet.
type ImageSource[H any] interface {
	Image(handle H) (pix []byte, width, height uint32, ok bool)
}

// ImageSourceFunc adapts a function to the ImageSource interface.
type ImageSourceFunc[H any] func(handle H) (pix []byte, width, height uint32, ok bool)

// Image calls f(handle).
func (f ImageSourceFunc[H]) Image(handle H) ([]byte, uint32, uint32, bool) {
	return f(handle)
}

// BuildQueue collects tile sheets that become available at different times
// and feeds them into a Builder as they arrive.
//
// A queue is open while tiles are registered with Insert. Lock closes it;
// from then on every registration is resolved by Load or Skip, typically
// driven by repeated calls to Poll. Once every registration is resolved the
// queue is complete and Reset or Finalize hands out the accumulated builder.
//
// H is the caller's handle type for a pending image, for example an asset id
// or a file path. The zero value is an open queue sized by its first load,
// like NewBuildQueue. BuildQueue is not safe for concurrent use.
type BuildQueue[H any] struct {
	builder     *Builder
	queue       map[string]map[string]QueueItem[H]
	countLoaded int
	countTotal  int
	locked      bool
}

// NewBuildQueue creates a queue whose builder is sized from the first
// loaded sheet.
func NewBuildQueue[H any]() *BuildQueue[H] {
	return &BuildQueue[H]{queue: make(map[string]map[string]QueueItem[H])}
}

// NewBuildQueueWithSize creates a queue with a builder of the given tile size.
func NewBuildQueueWithSize[H any](size uint32) *BuildQueue[H] {
	q := NewBuildQueue[H]()
	q.builder = New(size)
	return q
}

// Insert registers a sheet for the given tile. Registering a tile again
// replaces the earlier registration.
//
// Panics if the queue is locked.
func (q *BuildQueue[H]) Insert(groupID, tileID string, handle H, settings TileSetSettings) {
	if q.locked {
		panic("tileatlas: insert into locked build queue")
	}
	if q.queue == nil {
		q.queue = make(map[string]map[string]QueueItem[H])
	}
	g, ok := q.queue[groupID]
	if !ok {
		g = make(map[string]QueueItem[H])
		q.queue[groupID] = g
	}
	if _, ok := g[tileID]; !ok {
		q.countTotal++
	}
	g[tileID] = QueueItem[H]{GroupID: groupID, TileID: tileID, Handle: handle, Settings: settings}
}

// Lock closes the queue for registrations.
func (q *BuildQueue[H]) Lock() {
	q.locked = true
}

// Locked reports whether the queue is closed for registrations.
func (q *BuildQueue[H]) Locked() bool {
	return q.locked
}

// CountTotal returns the number of registrations.
func (q *BuildQueue[H]) CountTotal() int {
	return q.countTotal
}

// CountLoaded returns the number of resolved registrations, loaded or skipped.
func (q *BuildQueue[H]) CountLoaded() int {
	return q.countLoaded
}

// Pending returns the unresolved registrations, groups then tiles in
// lexicographic order.
func (q *BuildQueue[H]) Pending() []QueueItem[H] {
	var items []QueueItem[H]
	for _, groupID := range slices.Sorted(maps.Keys(q.queue)) {
		g := q.queue[groupID]
		for _, tileID := range slices.Sorted(maps.Keys(g)) {
			items = append(items, g[tileID])
		}
	}
	return items
}

// resolve drops a registration and counts it as resolved.
func (q *BuildQueue[H]) resolve(groupID, tileID string) bool {
	g, ok := q.queue[groupID]
	if !ok {
		return false
	}
	if _, ok := g[tileID]; !ok {
		return false
	}
	delete(g, tileID)
	if len(g) == 0 {
		delete(q.queue, groupID)
	}
	q.countLoaded++
	return true
}

// Load resolves a registration with the pixels of its sheet, a width×height
// RGBA8 image sliced according to settings, and inserts the frames at
// level 0. If the queue has no builder yet, one is created with the tile
// size derived from this sheet.
//
// Panics if the queue is not locked, or if no tile size can be derived.
func (q *BuildQueue[H]) Load(groupID, tileID string, pix []byte, width, height uint32, settings TileSetSettings) {
	if !q.locked {
		panic("tileatlas: load into unlocked build queue")
	}
	if !q.resolve(groupID, tileID) {
		Logger().Warn("tileatlas: loading tile that was not queued",
			"group", groupID, "tile", tileID)
	}

	if q.builder == nil {
		size := settings.TileSize(width, height)
		if !ValidTileSize(size) {
			panic(fmt.Sprintf("tileatlas: cannot derive tile size from %dx%d sheet", width, height))
		}
		q.builder = New(size)
		Logger().Debug("tileatlas: sized build queue from sheet",
			"group", groupID, "tile", tileID, "size", size)
	}
	q.builder.InsertTileset(groupID, tileID, 0, pix, width, settings)
}

// Skip resolves a registration without data.
func (q *BuildQueue[H]) Skip(groupID, tileID string) {
	q.resolve(groupID, tileID)
}

// SkipRemaining resolves every pending registration without data.
func (q *BuildQueue[H]) SkipRemaining() {
	q.countLoaded = q.countTotal
	clear(q.queue)
}

// IsComplete reports whether the queue is locked and every registration
// has been resolved.
func (q *BuildQueue[H]) IsComplete() bool {
	return q.locked && q.countLoaded >= q.countTotal
}

// Size returns the tile size of the builder, or false if it is not sized yet.
func (q *BuildQueue[H]) Size() (uint32, bool) {
	if q.builder == nil {
		return 0, false
	}
	return q.builder.Size(), true
}

// Reset returns the accumulated builder and starts over with an empty, open
// queue. The new builder has the given tile size, or is sized by the next
// load if size is 0. Returns nil if the queue never had a builder.
func (q *BuildQueue[H]) Reset(size uint32) *Builder {
	b := q.builder
	q.builder = nil
	if size != 0 {
		q.builder = New(size)
	}
	q.locked = false
	q.countLoaded = 0
	q.countTotal = 0
	clear(q.queue)
	return b
}

// Poll loads every pending registration whose image src can provide and
// returns how many were loaded. Nothing happens while the queue is open.
func (q *BuildQueue[H]) Poll(src ImageSource[H]) int {
	if !q.locked {
		return 0
	}
	loaded := 0
	for _, item := range q.Pending() {
		pix, w, h, ok := src.Image(item.Handle)
		if !ok {
			continue
		}
		q.Load(item.GroupID, item.TileID, pix, w, h, item.Settings)
		loaded++
	}
	return loaded
}

// Finalize turns a complete queue into an Atlas: it takes the builder with
// Reset, generates all mip levels and packs the image and lookup table.
// Returns false if the queue is not complete.
//
// Panics with a *SettingsError, leaving the queue untouched, if the image
// settings fail Validate.
func (q *BuildQueue[H]) Finalize(opts ...FinalizeOption) (*Atlas, bool) {
	if !q.IsComplete() {
		return nil, false
	}
	o := defaultFinalizeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.image.Validate(); err != nil {
		panic(err)
	}

	loaded, total := q.countLoaded, q.countTotal
	b := q.Reset(o.nextSize)
	if b == nil {
		b = New(1)
	}
	b.DownsampleLevels(AllLevels, false, o.downsampler)
	if o.levelLimit > 0 {
		b.LimitLevels(o.levelLimit)
	}
	atlas := b.BuildAtlas(o.image)

	Logger().Info("tileatlas: build queue finalized",
		"resolved", loaded, "registered", total,
		"tiles", b.Len(), "pages", atlas.Image.PageCount(), "levels", atlas.Image.LevelCount())
	return atlas, true
}
