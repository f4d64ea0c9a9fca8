// Package scan tracks in-flight deep status scans, enforcing at most one per
// working-copy path.
package scan

import (
	"sync"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

// Handle identifies one in-flight deep scan. The cancel function kills the
// scan's external process (best-effort; termination failures are swallowed by
// the process layer).
type Handle struct {
	ID     string
	Path   string
	cancel func()
}

// Registry is the process-wide map from working-copy path to its single
// in-flight scan. A mutex guards check-and-replace so two near-simultaneous
// starts cannot both believe they own the slot.
type Registry struct {
	mu     sync.Mutex
	active map[string]*Handle
}

// NewRegistry creates an empty scan registry.
func NewRegistry() *Registry {
	return &Registry{active: make(map[string]*Handle)}
}

// Start records a new scan for path. Any scan already in flight for the same
// path is removed from the registry first and then cancelled, so the slot
// always reflects the most recently started scan.
func (r *Registry) Start(path string, cancel func()) *Handle {
	handle := &Handle{ID: uuid.NewString(), Path: path, cancel: cancel}

	r.mu.Lock()
	prev := r.active[path]
	r.active[path] = handle
	r.mu.Unlock()

	if prev != nil {
		logger.Debugf("Superseding scan %s for %q", prev.ID, path)
		prev.cancel()
	}
	return handle
}

// Finish removes the handle if it is still the current scan for its path and
// reports whether it was. A superseded handle leaves the registry untouched,
// so a late-arriving result can never overwrite its successor's slot.
func (r *Registry) Finish(handle *Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.active[handle.Path]
	if !ok || current.ID != handle.ID {
		return false
	}
	delete(r.active, handle.Path)
	return true
}

// Cancel terminates the in-flight scan for path, if any, and reports whether
// one was found.
func (r *Registry) Cancel(path string) bool {
	r.mu.Lock()
	handle, ok := r.active[path]
	if ok {
		delete(r.active, path)
	}
	r.mu.Unlock()

	if ok {
		handle.cancel()
	}
	return ok
}

// IsActive reports whether a scan is currently in flight for path.
func (r *Registry) IsActive(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[path]
	return ok
}
