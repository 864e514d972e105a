// Package history tracks a bounded sample history for every contact on the
// surface and decides when a contact is lifted.
package history

import (
	"sort"
	"time"

	"github.com/okian/gestura/internal/domain/model"
)

// Default tracker configuration.
const (
	defaultCapacity     = 20
	defaultStaleTimeout = 250 * time.Millisecond
	defaultLiftFrames   = 2
)

// LiftCause tells how a contact was closed.
type LiftCause uint8

// Lift causes.
const (
	LiftExplicit LiftCause = iota + 1 // Up sample received
	LiftImplicit                      // missing from consecutive frames
	LiftStale                         // not seen within the stale timeout
)

func (c LiftCause) String() string {
	switch c {
	case LiftExplicit:
		return "explicit"
	case LiftImplicit:
		return "implicit"
	case LiftStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Lift reports a contact closed while processing a frame or sweep.
type Lift struct {
	ContactID int
	Cause     LiftCause
	Last      model.TouchPoint
}

// Update is the outcome of ingesting one frame.
type Update struct {
	Timestamp time.Time
	// Touched holds the accepted samples of the frame in frame order,
	// including explicit Up samples.
	Touched  []model.TouchPoint
	Lifted   []Lift
	Rejected []*InputError
}

// Tracker owns the per-contact histories. It is not safe for concurrent use;
// frames must be ingested from a single goroutine.
type Tracker struct {
	capacity   int
	staleAfter time.Duration
	liftFrames int
	contacts   map[int]*contact
}

// New creates a tracker with configuration options.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		capacity:   defaultCapacity,
		staleAfter: defaultStaleTimeout,
		liftFrames: defaultLiftFrames,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.contacts = make(map[int]*contact)
	return t
}

// Ingest applies one frame to the contact histories.
func (t *Tracker) Ingest(frame model.TouchFrame) Update {
	frame = frame.Stamp()
	up := Update{Timestamp: frame.Timestamp}

	counts := make(map[int]int, len(frame.Points))
	for _, p := range frame.Points {
		counts[p.ContactID]++
	}
	seen := make(map[int]bool, len(counts))

	for _, p := range frame.Points {
		id := p.ContactID
		seen[id] = true
		switch {
		case counts[id] > 1:
			up.Rejected = append(up.Rejected, &InputError{ContactID: id, Err: ErrDuplicateContact})
			continue
		case !p.Finite():
			up.Rejected = append(up.Rejected, &InputError{ContactID: id, Err: ErrNonFinite})
			continue
		case !p.Lifecycle.Valid():
			up.Rejected = append(up.Rejected, &InputError{ContactID: id, Err: ErrBadLifecycle})
			continue
		}

		c, ok := t.contacts[id]
		switch p.Lifecycle {
		case model.Down:
			t.contacts[id] = newContact(t.capacity, p)
		case model.Move:
			if !ok || !c.open {
				p.Lifecycle = model.Down
				t.contacts[id] = newContact(t.capacity, p)
			} else {
				c.push(p)
			}
		case model.Up:
			if !ok || !c.open {
				continue
			}
			c.push(p)
			c.open = false
			up.Lifted = append(up.Lifted, Lift{ContactID: id, Cause: LiftExplicit, Last: p})
		}
		up.Touched = append(up.Touched, p)
	}

	// Contacts absent from this frame.
	var absent []Lift
	for id, c := range t.contacts {
		if !c.open {
			continue
		}
		if seen[id] {
			c.missed = 0
			continue
		}
		c.missed++
		switch {
		case t.staleAfter > 0 && frame.Timestamp.Sub(c.lastSeen) > t.staleAfter:
			c.open = false
			absent = append(absent, Lift{ContactID: id, Cause: LiftStale, Last: c.newest()})
		case t.liftFrames > 0 && c.missed >= t.liftFrames:
			c.open = false
			absent = append(absent, Lift{ContactID: id, Cause: LiftImplicit, Last: c.newest()})
		}
	}
	sortLifts(absent)
	up.Lifted = append(up.Lifted, absent...)
	return up
}

// Sweep closes open contacts not seen within the stale timeout relative to now.
func (t *Tracker) Sweep(now time.Time) []Lift {
	if t.staleAfter <= 0 {
		return nil
	}
	var out []Lift
	for id, c := range t.contacts {
		if c.open && now.Sub(c.lastSeen) > t.staleAfter {
			c.open = false
			out = append(out, Lift{ContactID: id, Cause: LiftStale, Last: c.newest()})
		}
	}
	sortLifts(out)
	return out
}

// Purge drops the histories of closed contacts once they have been consumed.
func (t *Tracker) Purge() {
	for id, c := range t.contacts {
		if !c.open {
			delete(t.contacts, id)
		}
	}
}

// Reset forgets every contact.
func (t *Tracker) Reset() {
	t.contacts = make(map[int]*contact)
}

// ActiveCount returns the number of open contacts.
func (t *Tracker) ActiveCount() int {
	n := 0
	for _, c := range t.contacts {
		if c.open {
			n++
		}
	}
	return n
}

// ActiveIDs returns the open contact ids in ascending order.
func (t *Tracker) ActiveIDs() []int {
	ids := make([]int, 0, len(t.contacts))
	for id, c := range t.contacts {
		if c.open {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Snapshot returns a copy of the history of id, oldest first.
func (t *Tracker) Snapshot(id int) ([]model.TouchPoint, bool) {
	c, ok := t.contacts[id]
	if !ok {
		return nil, false
	}
	return c.points(), true
}

// Oldest returns the oldest retained sample of id.
func (t *Tracker) Oldest(id int) (model.TouchPoint, bool) {
	c, ok := t.contacts[id]
	if !ok {
		return model.TouchPoint{}, false
	}
	return c.oldest(), true
}

// Newest returns the most recent sample of id.
func (t *Tracker) Newest(id int) (model.TouchPoint, bool) {
	c, ok := t.contacts[id]
	if !ok {
		return model.TouchPoint{}, false
	}
	return c.newest(), true
}

func sortLifts(l []Lift) {
	sort.Slice(l, func(i, j int) bool { return l[i].ContactID < l[j].ContactID })
}
