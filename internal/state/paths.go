package state

import (
	"log"
	"sync"
)

// PathStore keeps the ordered set of paths drawn on a surface, indexed by id.
// Local paths are tagged with the owner so Undo only removes the user's own work.
type PathStore struct {
	clock Clock
	order []int
	paths map[int]PathData
	mu    sync.RWMutex
}

func NewPathStore() *PathStore {
	return &PathStore{paths: make(map[int]PathData)}
}

// NextID reserves an id for a path about to be drawn locally.
func (ps *PathStore) NextID() int {
	return ps.clock.Tick()
}

// Add stores p and reports whether it was new. Paths whose id is already
// present are ignored.
func (ps *PathStore) Add(p PathData) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if _, exists := ps.paths[p.Path.ID]; exists {
		log.Printf("[PATHS] Path %d already exists, ignoring", p.Path.ID)
		return false
	}
	ps.clock.Observe(p.Path.ID)
	ps.paths[p.Path.ID] = p
	ps.order = append(ps.order, p.Path.ID)
	return true
}

// Remove deletes the path with the given id and reports whether it existed.
func (ps *PathStore) Remove(id int) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.removeLocked(id)
}

func (ps *PathStore) removeLocked(id int) bool {
	if _, exists := ps.paths[id]; !exists {
		return false
	}
	delete(ps.paths, id)
	for i, v := range ps.order {
		if v == id {
			ps.order = append(ps.order[:i], ps.order[i+1:]...)
			break
		}
	}
	return true
}

// UndoBy removes the most recent path drawn by drawer and returns its id,
// or -1 when the drawer has nothing left to undo.
func (ps *PathStore) UndoBy(drawer string) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	for i := len(ps.order) - 1; i >= 0; i-- {
		id := ps.order[i]
		if ps.paths[id].Drawer == drawer {
			ps.removeLocked(id)
			return id
		}
	}
	return -1
}

func (ps *PathStore) Clear() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.order = nil
	ps.paths = make(map[int]PathData)
}

func (ps *PathStore) Len() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.order)
}

// All returns the paths in drawing order.
func (ps *PathStore) All() []PathData {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	out := make([]PathData, 0, len(ps.order))
	for _, id := range ps.order {
		out = append(out, ps.paths[id])
	}
	return out
}
