// Package registry is the host-facing persistent-instance store: a
// process-wide, id-keyed table of long-lived Emulator instances, so a
// caller (an editor extension, a web terminal backend) can keep feeding the
// same terminal across many short-lived calls instead of replaying the
// whole scrollback through a stateless ToJSON/ToText/ToHTML call each time.
package registry

import (
	"sync"

	"github.com/termgrid/termgrid"
)

// Registry guards every instance with a single mutex rather than one lock
// per instance. Per-instance operations are short, in-memory parses and
// mutations; a single lock keeps the implementation simple without being a
// meaningful contention point.
type Registry struct {
	mu        sync.Mutex
	instances map[string]*termgrid.Emulator
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{instances: make(map[string]*termgrid.Emulator)}
}

// Create allocates a cols×rows instance under id. If id is already in use,
// the existing instance is discarded and replaced — destroy-then-create,
// not an error.
func (r *Registry) Create(id string, cols, rows int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances[id] = termgrid.New(cols, rows)
}

// Destroy removes id's instance. Destroying an id with no instance is a
// silent no-op.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.instances, id)
}

func (r *Registry) lookup(id string) (*termgrid.Emulator, error) {
	e, ok := r.instances[id]
	if !ok {
		return nil, termgrid.ErrNotFound
	}
	return e, nil
}

// Feed writes bytes into id's instance.
func (r *Registry) Feed(id string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	return e.Feed(data)
}

// Resize changes id's instance dimensions.
func (r *Registry) Resize(id string, cols, rows int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.Resize(cols, rows)
	return nil
}

// Reset restores id's instance to its just-created state.
func (r *Registry) Reset(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.Reset()
	return nil
}

// SetMaxScrollback caps id's retained scrollback at max rows; 0 restores the
// default of unbounded retention.
func (r *Registry) SetMaxScrollback(id string, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.SetMaxScrollback(max)
	return nil
}

// GetJSON renders id's [offset, offset+limit) row window as the bit-exact
// JSON contract.
func (r *Registry) GetJSON(id string, offset, limit int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.JSON(offset, limit)
}

// GetText renders every retained row of id's instance (scrollback, then the
// active screen) as plain text.
func (r *Registry) GetText(id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	return e.Text(), nil
}

// GetHTML renders every retained row of id's instance (scrollback, then the
// active screen) as HTML.
func (r *Registry) GetHTML(id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	return e.HTML(), nil
}

// GetCursor reports id's cursor position and visibility.
func (r *Registry) GetCursor(id string) (x, y int, visible bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return 0, 0, false, err
	}
	x, y = e.Cursor()
	return x, y, e.CursorVisible(), nil
}

// IsReady reports whether id's instance is currently in the parser's ground
// state, with no escape sequence in progress — the safe boundary at which a
// caller may read terminal state.
func (r *Registry) IsReady(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	return e.IsReady(), nil
}

// HasAtLeast reports whether id's instance has at least n rows available.
func (r *Registry) HasAtLeast(id string, n int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, err := r.lookup(id)
	if err != nil {
		return false, err
	}
	return e.HasAtLeast(n), nil
}
