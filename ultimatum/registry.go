package ultimatum

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Constructor builds one fresh strategy.
type Constructor func(reg *Registry, rng *rand.Rand) Strategy

// Registry maps strategy names to constructors. It owns the point table
// handed to grid-based variants and the bin count used by distribution
// variants.
type Registry struct {
	bins         int
	points       *PointTable
	constructors map[string]Constructor
}

// NewRegistry returns a registry preloaded with the built-in variants.
// bins below 2 falls back to DefaultBins.
func NewRegistry(bins int, points *PointTable) *Registry {
	if bins < 2 {
		bins = DefaultBins
	}
	if points == nil {
		points = NewPointTable()
	}
	r := &Registry{
		bins:         bins,
		points:       points,
		constructors: make(map[string]Constructor),
	}
	r.Register(KindThresholdProposer, func(_ *Registry, rng *rand.Rand) Strategy {
		return NewThresholdProposer(rng)
	})
	r.Register(KindThresholdResponder, func(_ *Registry, rng *rand.Rand) Strategy {
		return NewThresholdResponder(rng)
	})
	r.Register(KindBinnedProposer, func(reg *Registry, rng *rand.Rand) Strategy {
		return NewBinnedProposer(reg.bins, rng)
	})
	r.Register(KindBinnedResponder, func(reg *Registry, rng *rand.Rand) Strategy {
		return NewBinnedResponder(reg.bins, rng)
	})
	r.Register(KindChooserProposer, func(reg *Registry, rng *rand.Rand) Strategy {
		return NewChooserProposer(reg.points.Points(reg.bins), rng)
	})
	r.Register(KindChooserResponder, func(reg *Registry, rng *rand.Rand) Strategy {
		return NewChooserResponder(reg.points.Points(reg.bins), rng)
	})
	return r
}

// Register adds or replaces a constructor.
func (r *Registry) Register(name string, constructor Constructor) {
	r.constructors[name] = constructor
}

// New builds one strategy by name.
func (r *Registry) New(name string, rng *rand.Rand) (Strategy, error) {
	ctor, ok := r.constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownStrategy, name, r.Names())
	}
	return ctor(r, rng), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for k := range r.constructors {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Bins is the bucket count handed to distribution variants.
func (r *Registry) Bins() int { return r.bins }

// Points is the shared point table.
func (r *Registry) Points() *PointTable { return r.points }
