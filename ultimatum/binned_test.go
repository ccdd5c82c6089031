package ultimatum

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestBinIndex(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		bins  int
		want  int
	}{
		{"zero", 0, 10, 0},
		{"one lands in last bin", 1, 10, 9},
		{"interior", 0.55, 10, 5},
		{"exact inner edge goes down", 0.5, 10, 4},
		{"just above inner edge", 0.50001, 10, 5},
		{"two bins upper", 1, 2, 1},
		{"single bin", 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, binIndex(tt.value, tt.bins))
		})
	}
}

func TestBinnedResponderAtUpperBoundary(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := NewBinnedResponder(10, rng)
	for i := range r.AcceptProbs {
		r.AcceptProbs[i] = 0
	}
	r.AcceptProbs[9] = 1

	require.NotPanics(t, func() {
		assert.True(t, r.Respond(1.0, rng))
	})
	assert.False(t, r.Respond(0.0, rng))
}

func TestBinnedProposerEmitsGridValues(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := NewBinnedProposer(5, rng)
	allowed := map[float64]bool{0: true, 0.25: true, 0.5: true, 0.75: true, 1: true}
	for i := 0; i < 500; i++ {
		v := p.Propose(rng)
		require.True(t, allowed[v], "unexpected proposal %v", v)
	}
}

func TestBinnedProposerFollowsDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := &BinnedProposer{Probs: []float64{0, 0, 1}}
	for i := 0; i < 50; i++ {
		assert.Equal(t, 1.0, p.Propose(rng))
	}
	p.Probs = []float64{1, 0, 0}
	for i := 0; i < 50; i++ {
		assert.Equal(t, 0.0, p.Propose(rng))
	}
}

func TestBinnedProposerSumsToOneAfterMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	p := NewBinnedProposer(DefaultBins, rng)
	assert.InDelta(t, 1.0, floats.Sum(p.Probs), 1e-9)
	for _, alpha := range []float64{0.01, 0.05, 1, 10, 100} {
		for i := 0; i < 50; i++ {
			p.Mutate(alpha, rng)
			require.InDelta(t, 1.0, floats.Sum(p.Probs), 1e-9, "alpha %v", alpha)
			for _, v := range p.Probs {
				require.GreaterOrEqual(t, v, 0.0)
			}
		}
	}
}

func TestBinnedResponderMutateStaysInUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	r := NewBinnedResponder(DefaultBins, rng)
	for i := 0; i < 100; i++ {
		r.Mutate(3, rng)
		for _, v := range r.AcceptProbs {
			require.True(t, v >= 0 && v <= 1)
		}
	}
}

func TestNewBinnedProposerRejectsSingleBin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { NewBinnedProposer(1, rng) })
}
