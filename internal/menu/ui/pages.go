package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultPageTTL is how long an idle visitor's page state is kept.
const DefaultPageTTL = 30 * time.Minute

// Pages holds one Controller per visitor, keyed by an opaque page id.
type Pages struct {
	api API
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	pages map[string]*page
}

type page struct {
	ctrl *Controller
	seen time.Time
}

func NewPages(api API, ttl time.Duration) *Pages {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &Pages{api: api, ttl: ttl, now: time.Now, pages: map[string]*page{}}
}

// Get returns the controller for id, creating a fresh one under a new id when
// id is unknown or expired. The returned id is the one to hand back to the visitor.
func (p *Pages) Get(id string) (string, *Controller) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	p.sweep(now)
	if pg, ok := p.pages[id]; ok && id != "" {
		pg.seen = now
		return id, pg.ctrl
	}
	id = uuid.NewString()
	pg := &page{ctrl: NewController(p.api), seen: now}
	p.pages[id] = pg
	return id, pg.ctrl
}

// Len reports how many visitors currently have page state.
func (p *Pages) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pages)
}

func (p *Pages) lookup(id string) (*Controller, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pg, ok := p.pages[id]
	if !ok {
		return nil, false
	}
	return pg.ctrl, true
}

func (p *Pages) sweep(now time.Time) {
	for id, pg := range p.pages {
		if now.Sub(pg.seen) > p.ttl {
			delete(p.pages, id)
		}
	}
}
