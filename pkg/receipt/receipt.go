// Package receipt issues payment receipt numbers in the format
// RCP<unix-millis><3-digit-random>, e.g. RCP1717399203451042.
//
// The millisecond timestamp plus random suffix is a de facto external contract:
// downstream exports parse the prefix, so the shape must not change. Two payments
// recorded in the same millisecond could roll the same suffix; the generator keeps
// the set of suffixes already issued for the current millisecond and re-rolls
// against it, so collisions are a retry condition rather than a duplicate receipt.
package receipt

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Generator issues unique receipt numbers. Safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	millis int64
	used   map[int]bool
	now    func() time.Time
	rand   func(n int) int
}

// NewGenerator creates a receipt number generator.
func NewGenerator() *Generator {
	return &Generator{
		used: make(map[int]bool),
		now:  time.Now,
		rand: rand.Intn,
	}
}

// Next returns a fresh receipt number, never repeating one issued earlier in
// the same millisecond. Should a millisecond's 1000 suffixes ever run out, the
// loop spins until the clock advances.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		millis := g.now().UnixMilli()
		if millis != g.millis {
			g.millis = millis
			g.used = make(map[int]bool)
		}
		suffix := g.rand(1000)
		if g.used[suffix] {
			continue
		}
		g.used[suffix] = true
		return fmt.Sprintf("RCP%d%03d", millis, suffix)
	}
}
