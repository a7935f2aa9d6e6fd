package text

import (
	"fmt"
	"sort"
)

// Registry is the buffer list, maintained in case-sensitive name order
// (spec.md §4.3). Finding a buffer is linear, matching the original's
// assumption that the list stays small (typically ≤50 buffers).
type Registry struct {
	buffers []*Buffer
}

// NewRegistry returns an empty buffer registry.
func NewRegistry() *Registry { return &Registry{} }

// Create allocates and registers a new buffer, failing if the name is
// already taken (spec.md §3 invariant: "name unique among buffers").
func (r *Registry) Create(name string, typ BufferType) (*Buffer, error) {
	if _, ok := r.Find(name); ok {
		return nil, fmt.Errorf("text: buffer %q already exists", name)
	}
	b, err := NewBuffer(name, typ)
	if err != nil {
		return nil, err
	}
	r.buffers = append(r.buffers, b)
	sort.Slice(r.buffers, func(i, j int) bool { return r.buffers[i].Name < r.buffers[j].Name })
	return b, nil
}

// Find looks up a buffer by exact name.
func (r *Registry) Find(name string) (*Buffer, bool) {
	for _, b := range r.buffers {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// List returns the buffers in name order. The caller must not mutate the
// returned slice.
func (r *Registry) List() []*Buffer { return r.buffers }

// Kill removes a buffer from the registry. The caller is responsible for
// confirming with the user first when the buffer is modified and visible
// (spec.md §4.3: "Killing asks if displayed; if not, clears and frees").
func (r *Registry) Kill(name string) error {
	for i, b := range r.buffers {
		if b.Name == name {
			b.Clear()
			r.buffers = append(r.buffers[:i], r.buffers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("text: no such buffer %q", name)
}
