// Package classifier turns contact updates into gesture events.
package classifier

import (
	"math"
	"time"

	"github.com/okian/gestura/internal/domain/history"
	"github.com/okian/gestura/internal/domain/model"
)

// State of the classifier.
type State uint8

// Classifier states.
const (
	Idle State = iota
	Touching
)

func (s State) String() string {
	if s == Touching {
		return "touching"
	}
	return "idle"
}

// Contacts is the read side of the contact tracker.
type Contacts interface {
	ActiveIDs() []int
	Newest(id int) (model.TouchPoint, bool)
}

type tapRecord struct {
	fingers int
	at      time.Time
}

// pair tracks the two-contact baseline used by pinch and rotate.
type pair struct {
	valid   bool
	a, b    int
	dist    float64
	angle   float64
	distAt  time.Time
	angleAt time.Time
}

// sequence is the per touch-down accumulator, cleared on return to Idle.
type sequence struct {
	start      time.Time
	maxFingers int
	origins    map[int]model.Vec
	maxDisp    float64
	emitted    bool // any non-tap gesture
	stale      bool
	locked     bool // pinch or rotate fired
	swiped     bool
	anchor     model.Vec // centroid displacement at the last scroll
	pair       pair
}

// Classifier is the gesture state machine. It is not safe for concurrent use.
type Classifier struct {
	cfg     Config
	state   State
	seq     sequence
	lastTap *tapRecord
}

// New creates a classifier.
func New(cfg Config) *Classifier {
	c := &Classifier{cfg: cfg.scaled()}
	c.seq = sequence{origins: make(map[int]model.Vec)}
	return c
}

// State returns the current state.
func (c *Classifier) State() State { return c.state }

// Reset drops all per-sequence state without emitting.
func (c *Classifier) Reset() {
	c.state = Idle
	c.seq = sequence{origins: make(map[int]model.Vec)}
	c.lastTap = nil
}

// Process classifies one tracker update. contacts must reflect the tracker
// after the update was applied.
func (c *Classifier) Process(u history.Update, contacts Contacts) []model.GestureEvent {
	if len(u.Touched) == 0 && len(u.Lifted) == 0 {
		return nil
	}
	ts := u.Timestamp

	touched := make([]model.TouchPoint, 0, len(u.Touched))
	landed := make(map[int]bool)
	for _, p := range u.Touched {
		if p.Lifecycle == model.Down {
			landed[p.ContactID] = true
		}
		if c.state == Idle {
			c.begin(ts)
		}
		origin, ok := c.seq.origins[p.ContactID]
		if !ok || p.Lifecycle == model.Down {
			origin = p.Vec()
			c.seq.origins[p.ContactID] = origin
		}
		if d := p.Vec().Sub(origin).Len(); d > c.seq.maxDisp {
			c.seq.maxDisp = d
		}
		touched = append(touched, p)
	}
	if c.state == Idle {
		// Lifts with no sequence in progress.
		return nil
	}

	lifted := make(map[int]bool, len(u.Lifted))
	for _, l := range u.Lifted {
		lifted[l.ContactID] = true
		if l.Cause == history.LiftStale {
			c.seq.stale = true
		}
	}

	// Fingers down together: the larger of the contacts open before this
	// frame and those open after it. A lift and a landing in the same frame
	// (a roll) do not overlap.
	active := contacts.ActiveIDs()
	before := len(lifted)
	for _, id := range active {
		if !landed[id] && !lifted[id] {
			before++
		}
	}
	if n := max(before, len(active)); n > c.seq.maxFingers {
		c.seq.maxFingers = n
	}

	var out []model.GestureEvent
	if len(active) == 2 {
		out = append(out, c.twoFinger(active, contacts, ts)...)
	} else {
		c.seq.pair.valid = false
	}
	if !c.seq.locked && !c.seq.swiped && len(touched) > 0 {
		if ev, ok := c.directional(touched, ts); ok {
			out = append(out, ev)
		}
	}
	if len(active) == 0 {
		if ev, ok := c.finish(ts); ok {
			out = append(out, ev)
		}
	}
	return out
}

func (c *Classifier) begin(ts time.Time) {
	c.state = Touching
	c.seq = sequence{start: ts, origins: make(map[int]model.Vec)}
}

func (c *Classifier) twoFinger(active []int, contacts Contacts, ts time.Time) []model.GestureEvent {
	a, okA := contacts.Newest(active[0])
	b, okB := contacts.Newest(active[1])
	if !okA || !okB {
		return nil
	}
	d := b.Vec().Sub(a.Vec())
	dist := d.Len()
	angle := d.Angle()

	p := &c.seq.pair
	if !p.valid || p.a != active[0] || p.b != active[1] {
		*p = pair{valid: true, a: active[0], b: active[1], dist: dist, angle: angle, distAt: ts, angleAt: ts}
		return nil
	}

	var out []model.GestureEvent
	if p.dist > 0 {
		scale := dist / p.dist
		if math.Abs(scale-1) > c.cfg.PinchScale {
			dir := model.DirectionOut
			if scale < 1 {
				dir = model.DirectionIn
			}
			out = append(out, model.GestureEvent{
				Kind:        model.KindPinch,
				FingerCount: 2,
				Direction:   dir,
				Velocity:    rate(math.Abs(dist-p.dist), ts.Sub(p.distAt)),
				Distance:    math.Abs(dist - p.dist),
				Scale:       scale,
				Timestamp:   ts,
			})
			p.dist, p.distAt = dist, ts
		}
	} else {
		p.dist, p.distAt = dist, ts
	}

	if dist > 0 {
		delta := normalizeAngle(angle - p.angle)
		if math.Abs(delta) > c.cfg.RotateAngle {
			dir := model.DirectionClockwise
			if delta < 0 {
				dir = model.DirectionCounterClockwise
			}
			out = append(out, model.GestureEvent{
				Kind:        model.KindRotate,
				FingerCount: 2,
				Direction:   dir,
				Velocity:    rate(math.Abs(delta), ts.Sub(p.angleAt)),
				Scale:       1,
				Rotation:    delta,
				Timestamp:   ts,
			})
			p.angle, p.angleAt = angle, ts
		}
	}

	if len(out) > 0 {
		c.seq.locked = true
		c.seq.emitted = true
	}
	return out
}

func (c *Classifier) directional(touched []model.TouchPoint, ts time.Time) (model.GestureEvent, bool) {
	now := make([]model.Vec, 0, len(touched))
	from := make([]model.Vec, 0, len(touched))
	for _, p := range touched {
		now = append(now, p.Vec())
		from = append(from, c.seq.origins[p.ContactID])
	}
	disp := centroid(now).Sub(centroid(from))
	dist := disp.Len()
	if dist <= c.cfg.TapDistance {
		return model.GestureEvent{}, false
	}
	elapsed := ts.Sub(c.seq.start)
	if elapsed <= 0 {
		return model.GestureEvent{}, false
	}
	velocity := dist / elapsed.Seconds()

	switch {
	case velocity >= c.cfg.SwipeVelocity:
		c.seq.swiped = true
		c.seq.emitted = true
		return model.GestureEvent{
			Kind:        model.KindSwipe,
			FingerCount: len(touched),
			Direction:   dominant(disp),
			Velocity:    velocity,
			Distance:    dist,
			Scale:       1,
			Timestamp:   ts,
		}, true
	case velocity < c.cfg.ScrollVelocity:
		inc := disp.Sub(c.seq.anchor)
		if inc.Len() <= c.cfg.TapDistance {
			return model.GestureEvent{}, false
		}
		c.seq.anchor = disp
		c.seq.emitted = true
		return model.GestureEvent{
			Kind:        model.KindScroll,
			FingerCount: len(touched),
			Direction:   dominant(inc),
			Velocity:    velocity,
			Distance:    inc.Len(),
			Scale:       1,
			Timestamp:   ts,
		}, true
	}
	// Between the thresholds nothing fires.
	return model.GestureEvent{}, false
}

// finish handles the transition back to Idle.
func (c *Classifier) finish(ts time.Time) (model.GestureEvent, bool) {
	seq := c.seq
	c.state = Idle
	c.seq = sequence{origins: make(map[int]model.Vec)}

	tap := !seq.emitted && !seq.stale && seq.maxFingers > 0 &&
		ts.Sub(seq.start) < c.cfg.TapDuration &&
		seq.maxDisp < c.cfg.TapDistance
	if !tap {
		c.lastTap = nil
		return model.GestureEvent{}, false
	}

	kind := model.KindTap
	if c.lastTap != nil && c.lastTap.fingers == seq.maxFingers && ts.Sub(c.lastTap.at) <= c.cfg.DoubleTapWindow {
		kind = model.KindDoubleTap
		c.lastTap = nil
	} else {
		c.lastTap = &tapRecord{fingers: seq.maxFingers, at: ts}
	}
	return model.GestureEvent{
		Kind:        kind,
		FingerCount: seq.maxFingers,
		Direction:   model.DirectionNone,
		Distance:    seq.maxDisp,
		Scale:       1,
		Timestamp:   ts,
	}, true
}

func rate(amount float64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return amount / d.Seconds()
}
