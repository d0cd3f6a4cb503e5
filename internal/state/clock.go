package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock hands out monotonically increasing path ids.
type Clock struct {
	counter int64
}

func (c *Clock) Tick() int {
	return int(atomic.AddInt64(&c.counter, 1))
}

// Observe moves the clock past ids that arrived from elsewhere so locally
// generated ids never collide with them.
func (c *Clock) Observe(id int) {
	for {
		cur := atomic.LoadInt64(&c.counter)
		if int64(id) <= cur {
			return
		}
		if atomic.CompareAndSwapInt64(&c.counter, cur, int64(id)) {
			return
		}
	}
}

// NewUserID returns a fresh identifier for a drawing session.
func NewUserID() string {
	return uuid.NewString()
}
