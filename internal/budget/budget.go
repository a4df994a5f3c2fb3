// Package budget caps outbound calls to the paid external services for a
// single run. The limits are policy knobs protecting API quotas, not
// correctness constraints.
package budget

import (
	"fmt"
	"sync"

	"github.com/cleanecon/newsbrief/internal/logger"
)

// Counter tracks calls made to one named service. A max of zero or below
// means unlimited.
type Counter struct {
	mu      sync.Mutex
	service string
	used    int
	max     int
}

func NewCounter(service string, max int) *Counter {
	return &Counter{service: service, max: max}
}

// Use reserves one call, failing once the budget is spent.
func (c *Counter) Use() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.max > 0 && c.used >= c.max {
		return fmt.Errorf("%s call budget exhausted (%d/%d)", c.service, c.used, c.max)
	}
	c.used++
	logger.Debug("budget use", "service", c.service, "used", c.used, "max", c.max)
	return nil
}

// Remaining reports how many calls are left; unlimited counters report -1.
func (c *Counter) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.max <= 0 {
		return -1
	}
	if c.used >= c.max {
		return 0
	}
	return c.max - c.used
}

// Used reports calls made so far.
func (c *Counter) Used() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}
