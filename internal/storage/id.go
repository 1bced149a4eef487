package storage

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator issues record identifiers derived from the wall clock at
// microsecond granularity (id_YYYYMMDDhhmmssffffff). A mutex plus a
// monotonic bump guarantee that two calls within the same process never
// collide, even in immediate succession. Cross-process collisions are not
// guarded against — acceptable under the single-user desktop assumption.
type IDGenerator struct {
	mu   sync.Mutex
	last time.Time
}

// NewIDGenerator returns a generator seeded from the current time.
func NewIDGenerator() *IDGenerator { return &IDGenerator{} }

// next returns a strictly increasing timestamp at microsecond resolution.
func (g *IDGenerator) next() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().Truncate(time.Microsecond)
	if !now.After(g.last) {
		now = g.last.Add(time.Microsecond)
	}
	g.last = now
	return now
}

// NewID returns a fresh record identifier.
func (g *IDGenerator) NewID() string {
	t := g.next()
	return fmt.Sprintf("id_%s%06d", t.Format("20060102150405"), t.Nanosecond()/1000)
}

// NewInvoiceNumber returns a fresh timestamp-derived invoice number. The
// microsecond suffix keeps two sales completed within the same second from
// sharing a number.
func (g *IDGenerator) NewInvoiceNumber() string {
	t := g.next()
	return fmt.Sprintf("INV-%s%06d", t.Format("20060102150405"), t.Nanosecond()/1000)
}
