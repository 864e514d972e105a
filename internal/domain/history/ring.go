package history

import (
	"time"

	"github.com/okian/gestura/internal/domain/model"
)

// contact is a fixed-capacity ring of samples for one contact id.
type contact struct {
	ring     []model.TouchPoint
	head     int // index of the oldest sample
	size     int
	open     bool
	lastSeen time.Time
	missed   int
}

func newContact(capacity int, first model.TouchPoint) *contact {
	c := &contact{ring: make([]model.TouchPoint, capacity), open: true}
	c.push(first)
	return c
}

func (c *contact) push(p model.TouchPoint) {
	if c.size < len(c.ring) {
		c.ring[(c.head+c.size)%len(c.ring)] = p
		c.size++
	} else {
		c.ring[c.head] = p
		c.head = (c.head + 1) % len(c.ring)
	}
	c.lastSeen = p.Timestamp
}

func (c *contact) oldest() model.TouchPoint {
	return c.ring[c.head]
}

func (c *contact) newest() model.TouchPoint {
	return c.ring[(c.head+c.size-1)%len(c.ring)]
}

func (c *contact) points() []model.TouchPoint {
	out := make([]model.TouchPoint, c.size)
	for i := 0; i < c.size; i++ {
		out[i] = c.ring[(c.head+i)%len(c.ring)]
	}
	return out
}
