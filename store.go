package canvas

import (
	"sync"

	"github.com/google/uuid"
)

// Spawn cascade: each successive add lands a small step down-right of the
// previous one so fresh nodes never stack exactly on top of each other.
const (
	spawnStepX = 32
	spawnStepY = 24
	spawnWrap  = 10
)

// Store holds the authoritative ordered node collection for one canvas
// session. Every mutation builds a fresh slice, so snapshots handed out by
// Nodes and Get are never aliased by later updates. The collection lives
// only in memory for the lifetime of the session.
type Store struct {
	mu     sync.Mutex
	nodes  []Node
	center Point
	added  int
}

// NewStore creates an empty store. center is the viewport center in canvas
// units, used to derive spawn positions for new nodes.
func NewStore(center Point) *Store {
	return &Store{center: center}
}

// SetViewportCenter updates the point new nodes spawn around.
func (s *Store) SetViewportCenter(center Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = center
}

// Add appends a node with a fresh UUID (unless one is provided) and a spawn
// position cascaded from the viewport center. Running and Collapsed start
// false regardless of the input. Returns the node ID.
func (s *Store) Add(n Node) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	step := s.added % spawnWrap
	n.Position = Position{
		X: int(s.center.X) + step*spawnStepX,
		Y: int(s.center.Y) + step*spawnStepY,
	}
	n.Running = false
	n.Collapsed = false
	s.added++

	next := make([]Node, len(s.nodes)+1)
	copy(next, s.nodes)
	next[len(s.nodes)] = n
	s.nodes = next
	return n.ID
}

// Remove filters the node out of the collection. Idempotent: removing an
// absent ID leaves the collection unchanged.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.ID != id {
			next = append(next, n)
		}
	}
	s.nodes = next
}

// Get returns a copy of the node by ID.
func (s *Store) Get(id string) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Nodes returns a snapshot of the collection in insertion order.
func (s *Store) Nodes() []Node {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes)
}

// SetContent replaces the content of an input-bearing node. No-op if the ID
// is absent or the variant does not carry content (agent, output).
func (s *Store) SetContent(id, content string) {
	s.update(id, func(n *Node) {
		if n.Variant.AcceptsContent() {
			n.Content = content
		}
	})
}

// ToggleCollapsed flips the UI-only collapsed flag. No-op if absent.
func (s *Store) ToggleCollapsed(id string) {
	s.update(id, func(n *Node) { n.Collapsed = !n.Collapsed })
}

// SetPosition replaces the node's position. Used by the drag engine; no-op
// if the node was deleted mid-drag.
func (s *Store) SetPosition(id string, p Position) {
	s.update(id, func(n *Node) { n.Position = p })
}

// SetRunning sets the in-flight flag. Used by the runner.
func (s *Store) SetRunning(id string, running bool) {
	s.update(id, func(n *Node) { n.Running = running })
}

// SetResult overwrites the node's result. Results are replaced, never
// appended.
func (s *Store) SetResult(id, result string) {
	s.update(id, func(n *Node) { n.Result = result })
}

// BeginRun atomically marks an agent node as running and returns a copy of
// it. Fails with ErrNodeNotFound, ErrNotRunnable, or ErrAlreadyRunning so a
// second run cannot slip in between check and set.
func (s *Store) BeginRun(id string) (Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.nodes {
		if n.ID != id {
			continue
		}
		if n.Variant != VariantAgent || n.Binding == nil {
			return Node{}, ErrNotRunnable
		}
		if n.Running {
			return Node{}, ErrAlreadyRunning
		}
		next := make([]Node, len(s.nodes))
		copy(next, s.nodes)
		next[i].Running = true
		s.nodes = next
		return next[i], nil
	}
	return Node{}, ErrNodeNotFound
}

// update applies fn to a copy of the matching node inside a fresh slice.
// Returns false (leaving the collection untouched) if the ID is absent.
func (s *Store) update(id string, fn func(*Node)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.nodes {
		if s.nodes[i].ID != id {
			continue
		}
		next := make([]Node, len(s.nodes))
		copy(next, s.nodes)
		fn(&next[i])
		s.nodes = next
		return true
	}
	return false
}
