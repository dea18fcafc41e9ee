package perfect

import (
	"fmt"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

type eventKind uint8

const (
	// eventBirth: forward in time the point is proposed for birth.
	eventBirth eventKind = iota
	// eventDeath: forward in time the point dies.
	eventDeath
)

// event is one transition of the dominating birth-death process, indexed
// backward from time 0. Event k of the log is events[k-1].
type event struct {
	kind eventKind
	id   sim.PointID
	pt   sim.Point
	mark float64 // shared acceptance mark for births, U(0,1)
	dt   float64 // holding time preceding the event (backward)
}

// eventLog is the dominating process simulated backward from time 0.
// Extending the log appends events; existing events are never redrawn,
// and event k only consumes the stream at index k.
type eventLog struct {
	window  sim.Window
	mass    float64 // rate * area: total backward arrival rate of new points
	stream  *sim.EventStream
	dom     *sim.Configuration // dominating state at the current backward horizon
	events  []event
	elapsed float64
	initial int
	nextID  sim.PointID
}

// newEventLog draws the stationary dominating state at time 0 from stream
// index 0: a Poisson pattern of intensity rate on w.
func newEventLog(w sim.Window, rate float64, stream *sim.EventStream) (*eventLog, error) {
	l := &eventLog{
		window: w,
		mass:   rate * w.Area(),
		stream: stream,
		dom:    sim.NewConfiguration(w),
	}
	rng := stream.At(0)
	for _, p := range sim.PoissonPattern(rng, stream.Source(), w, rate) {
		if err := l.dom.InsertWithID(l.nextID, p); err != nil {
			return nil, fmt.Errorf("dominating state at time 0: %w", err)
		}
		l.nextID++
	}
	l.initial = l.dom.Len()
	return l, nil
}

// Len returns the number of backward events drawn so far.
func (l *eventLog) Len() int { return len(l.events) }

// extendTo draws backward events until the log holds n of them.
func (l *eventLog) extendTo(n int) error {
	for k := len(l.events) + 1; k <= n; k++ {
		ev, err := l.next(uint64(k))
		if err != nil {
			return fmt.Errorf("backward event %d: %w", k, err)
		}
		l.events = append(l.events, ev)
		l.elapsed += ev.dt
	}
	return nil
}

// next draws backward event k. Run backward, the dominating process is a
// birth-death process with the same law: each present point leaves at unit
// rate (forward, it was born then) and new points arrive at total rate mass
// (forward, they die then).
func (l *eventLog) next(k uint64) (event, error) {
	rng := l.stream.At(k)
	n := l.dom.Len()
	total := float64(n) + l.mass
	dt := sim.ExpArrival(l.stream.Source(), total)

	if rng.Float64()*total < float64(n) {
		id, p := l.dom.At(rng.IntN(n))
		l.dom.Remove(id)
		return event{kind: eventBirth, id: id, pt: p, mark: rng.Float64(), dt: dt}, nil
	}

	p := sim.UniformPoint(rng, l.window)
	id := l.nextID
	if err := l.dom.InsertWithID(id, p); err != nil {
		return event{}, err
	}
	l.nextID++
	return event{kind: eventDeath, id: id, pt: p, dt: dt}, nil
}
