package media

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Urooyo/lylvey/internal/logging"
)

const urlScheme = "lylvey-media://"

// Registry leases playable URLs for references. Every URL handed out by
// Acquire must be given back with Release exactly once; Close releases
// whatever is still live.
type Registry struct {
	mu   sync.Mutex
	live map[string]*Reference
	log  *logging.Logger
}

func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		live: make(map[string]*Reference),
		log:  log,
	}
}

// Acquire derives a fresh playable URL for ref.
func (r *Registry) Acquire(ref *Reference) string {
	url := urlScheme + uuid.NewString()

	r.mu.Lock()
	r.live[url] = ref
	r.mu.Unlock()

	r.log.Debugw("Acquired playable URL", "url", url, "media", ref.Name())
	return url
}

// Release revokes url. It reports false, and logs, when url is unknown or
// was already released.
func (r *Registry) Release(url string) bool {
	r.mu.Lock()
	ref, ok := r.live[url]
	delete(r.live, url)
	r.mu.Unlock()

	if !ok {
		r.log.Warnw("Release of unknown playable URL", "url", url)
		return false
	}
	r.log.Debugw("Released playable URL", "url", url, "media", ref.Name())
	return true
}

// Resolve maps a live URL back to its reference.
func (r *Registry) Resolve(url string) (*Reference, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.live[url]
	return ref, ok
}

// number of URLs not yet released
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *Registry) Close() {
	r.mu.Lock()
	n := len(r.live)
	r.live = make(map[string]*Reference)
	r.mu.Unlock()

	if n > 0 {
		r.log.Debugw("Released remaining playable URLs", "count", n)
	}
}
