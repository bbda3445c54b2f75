package canvas

import (
	"math"
	"sync"
)

// Drag converts pointer events into position updates on exactly one node at
// a time. The pointer offset inside the node is captured on Start and held
// for the whole drag, so the node never jumps to center itself under the
// pointer. Pointer coordinates are relative to the canvas content origin,
// not the scrolled viewport.
type Drag struct {
	mu     sync.Mutex
	store  *Store
	nodeID string
	offset Point
}

func NewDrag(store *Store) *Drag {
	return &Drag{store: store}
}

// Start begins dragging nodeID from the given pointer sample. Returns false
// if another drag is already active or the node does not exist.
func (d *Drag) Start(nodeID string, pointer Point) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.nodeID != "" {
		return false
	}
	n, ok := d.store.Get(nodeID)
	if !ok {
		return false
	}
	d.nodeID = nodeID
	d.offset = Point{
		X: pointer.X - float64(n.Position.X),
		Y: pointer.Y - float64(n.Position.Y),
	}
	return true
}

// Move repositions the active node for a new pointer sample, rounding to
// whole canvas units. No-op when idle; if the node was deleted mid-drag the
// store write falls through harmlessly.
func (d *Drag) Move(pointer Point) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.nodeID == "" {
		return
	}
	d.store.SetPosition(d.nodeID, Position{
		X: int(math.Round(pointer.X - d.offset.X)),
		Y: int(math.Round(pointer.Y - d.offset.Y)),
	})
}

// End finishes the drag and clears the transient elevated z-order. Safe to
// call when idle.
func (d *Drag) End() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nodeID = ""
	d.offset = Point{}
}

// Active returns the ID of the node being dragged, or "" when idle. The
// active node renders above its siblings for the duration of the drag.
func (d *Drag) Active() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nodeID
}
