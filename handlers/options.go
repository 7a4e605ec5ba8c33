package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"

	"orderbook/services"
	"orderbook/store"
)

// Options carries the settings the order handlers share.
type Options struct {
	Company    services.CompanyInfo
	PageSize   int
	GSTPercent float64
	ExportDir  string
	Guard      *SubmitGuard

	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) orders(app *pocketbase.PocketBase) *store.OrderStore {
	return store.NewOrderStore(app)
}

func (o Options) exporter(app *pocketbase.PocketBase) *store.Exporter {
	return store.NewExporter(store.NewOrderStore(app), o.Company)
}

// SubmitTokenTTL is how long a claimed submit token is remembered. A form
// left open longer than this can be submitted again.
const SubmitTokenTTL = 24 * time.Hour

// SubmitGuard remembers which form submissions already produced a saved
// order, so a repeated submit of the same form is not saved twice. Claims
// older than the TTL are swept on every Claim.
type SubmitGuard struct {
	mu     sync.Mutex
	claims map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

func NewSubmitGuard() *SubmitGuard {
	return newSubmitGuard(SubmitTokenTTL, time.Now)
}

func newSubmitGuard(ttl time.Duration, now func() time.Time) *SubmitGuard {
	return &SubmitGuard{claims: map[string]time.Time{}, ttl: ttl, now: now}
}

// NewToken returns a fresh token for a rendered form.
func (g *SubmitGuard) NewToken() string {
	return uuid.NewString()
}

// Claim marks token as in use. It returns false when the token is already
// claimed by an earlier or concurrent submit. Empty tokens are never tracked.
func (g *SubmitGuard) Claim(token string) bool {
	if g == nil || token == "" {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.sweep(now)
	if _, ok := g.claims[token]; ok {
		return false
	}
	g.claims[token] = now
	return true
}

// Release gives a token back after a submit that saved nothing.
func (g *SubmitGuard) Release(token string) {
	if g == nil || token == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.claims, token)
}

func (g *SubmitGuard) sweep(now time.Time) {
	for token, at := range g.claims {
		if now.Sub(at) >= g.ttl {
			delete(g.claims, token)
		}
	}
}
