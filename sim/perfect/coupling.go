package perfect

import (
	"fmt"
	"math"

	"github.com/gibbs-sim/gibbs-sim/sim"
)

// coupling holds the upper and lower processes of one forward pass.
// Invariant: lower ⊆ upper ⊆ dominating after every event.
type coupling struct {
	model   sim.Interaction
	logRate float64
	upper   *sim.Configuration
	lower   *sim.Configuration
}

// couple replays the whole log forward from the current backward horizon to
// time 0. The upper process starts as the dominating state at the horizon,
// the lower process starts empty.
func couple(model sim.Interaction, rate float64, l *eventLog) (*coupling, error) {
	opts := []sim.ConfigurationOption{sim.WithCellSize(model.Range())}
	c := &coupling{
		model:   model,
		logRate: math.Log(rate),
		upper:   sim.NewConfiguration(l.window, opts...),
		lower:   sim.NewConfiguration(l.window, opts...),
	}
	for i := 0; i < l.dom.Len(); i++ {
		id, p := l.dom.At(i)
		if err := c.upper.InsertWithID(id, p); err != nil {
			return nil, fmt.Errorf("seeding upper process: %w", err)
		}
	}
	for k := len(l.events) - 1; k >= 0; k-- {
		if err := c.apply(l.events[k]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// apply advances both processes through one event. Births use the shared
// mark against the opposite process: for a repulsive model lambda(x; lower)
// >= lambda(x; upper), so upper accepts whenever lower does.
func (c *coupling) apply(ev event) error {
	switch ev.kind {
	case eventDeath:
		c.upper.Remove(ev.id)
		c.lower.Remove(ev.id)
	case eventBirth:
		upperAccepts := c.accepts(c.lower, ev)
		lowerAccepts := c.accepts(c.upper, ev)
		if upperAccepts {
			if err := c.upper.InsertWithID(ev.id, ev.pt); err != nil {
				return fmt.Errorf("upper birth: %w", err)
			}
		}
		if lowerAccepts {
			if err := c.lower.InsertWithID(ev.id, ev.pt); err != nil {
				return fmt.Errorf("lower birth: %w", err)
			}
		}
	}
	return nil
}

// accepts reports whether mark * rate <= lambda(x; against).
func (c *coupling) accepts(against *sim.Configuration, ev event) bool {
	logLambda := sim.LogIntensity(c.model, against, ev.pt, sim.NoPoint)
	if math.IsInf(logLambda, -1) {
		return false
	}
	return math.Log(ev.mark)+c.logRate <= logLambda
}

// coalesced reports whether the two processes agree. Because lower ⊆ upper,
// equal sizes mean equal sets.
func (c *coupling) coalesced() bool {
	return c.upper.Len() == c.lower.Len()
}
