package ultimatum

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allProposers(reg *Registry, rng *rand.Rand) []Proposer {
	return []Proposer{
		NewThresholdProposer(rng),
		NewBinnedProposer(reg.Bins(), rng),
		NewChooserProposer(reg.Points().Points(reg.Bins()), rng),
	}
}

func allResponders(reg *Registry, rng *rand.Rand) []Responder {
	return []Responder{
		NewThresholdResponder(rng),
		NewBinnedResponder(reg.Bins(), rng),
		NewChooserResponder(reg.Points().Points(reg.Bins()), rng),
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "proposer", RoleProposer.String())
	assert.Equal(t, "responder", RoleResponder.String())
	assert.Equal(t, "Role(7)", Role(7).String())
}

func TestProposalsStayInUnitInterval(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		reg := NewRegistry(DefaultBins, nil)
		for _, p := range allProposers(reg, rng) {
			for i := 0; i < 200; i++ {
				v := p.Propose(rng)
				require.GreaterOrEqual(t, v, 0.0, "%s seed %d", p.Kind(), seed)
				require.LessOrEqual(t, v, 1.0, "%s seed %d", p.Kind(), seed)
				// Large steps push parameters against the domain edges.
				p.Mutate(2, rng)
			}
		}
	}
}

func TestRolesAreDeclared(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	reg := NewRegistry(DefaultBins, nil)
	for _, p := range allProposers(reg, rng) {
		assert.Equal(t, RoleProposer, p.Role(), p.Kind())
	}
	for _, r := range allResponders(reg, rng) {
		assert.Equal(t, RoleResponder, r.Role(), r.Kind())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	reg := NewRegistry(DefaultBins, nil)

	for _, p := range allProposers(reg, rng) {
		p.AddFitness(1.5)
		c := p.Clone()
		assert.Equal(t, p.Kind(), c.Kind())
		assert.Equal(t, 1.5, c.Fitness())

		before := parameters(p)
		c.Mutate(1, rng)
		c.ResetFitness()
		assert.Equal(t, before, parameters(p), p.Kind())
		assert.NotEqual(t, before, parameters(c), p.Kind())
		assert.Equal(t, 1.5, p.Fitness())
	}
	for _, r := range allResponders(reg, rng) {
		before := parameters(r)
		c := r.Clone()
		c.AddFitness(2)
		c.Mutate(1, rng)
		assert.Zero(t, r.Fitness(), r.Kind())
		assert.Equal(t, before, parameters(r), r.Kind())
	}
}

// parameters copies the tunable values of a built-in strategy.
func parameters(s Strategy) []float64 {
	switch v := s.(type) {
	case *ThresholdProposer:
		return []float64{v.Proposition}
	case *ThresholdResponder:
		return []float64{v.AcceptBound}
	case *BinnedProposer:
		return append([]float64(nil), v.Probs...)
	case *BinnedResponder:
		return append([]float64(nil), v.AcceptProbs...)
	case *ChooserProposer:
		return append([]float64(nil), v.Sampler.Probs...)
	case *ChooserResponder:
		return append([]float64(nil), v.Sampler.Probs...)
	}
	return nil
}

func TestThresholdMutateClamps(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	p := &ThresholdProposer{Proposition: 0.99}
	r := &ThresholdResponder{AcceptBound: 0.01}
	for i := 0; i < 100; i++ {
		p.Mutate(5, rng)
		r.Mutate(5, rng)
		require.True(t, p.Proposition >= 0 && p.Proposition <= 1)
		require.True(t, r.AcceptBound >= 0 && r.AcceptBound <= 1)
	}
}

func TestThresholdCloneParameters(t *testing.T) {
	p := &ThresholdProposer{Proposition: 0.25}
	c := p.Clone().(*ThresholdProposer)
	c.Proposition = 0.75
	assert.Equal(t, 0.25, p.Proposition)

	r := &ThresholdResponder{AcceptBound: 0.4}
	rc := r.Clone().(*ThresholdResponder)
	rc.AcceptBound = 0.9
	assert.Equal(t, 0.4, r.AcceptBound)
}
