package calendar

import (
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator hands out monotonic ULIDs.
type IDGenerator struct {
	lk      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewIDGenerator() *IDGenerator {
	t := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)

	return &IDGenerator{
		entropy: entropy,
	}
}

func (g *IDGenerator) NewID(t time.Time) ulid.ULID {
	g.lk.Lock()
	defer g.lk.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy)
}
