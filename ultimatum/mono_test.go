package ultimatum

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monoConfig(n int) *Config {
	config := DefaultConfig()
	config.Population.Topology = TopologyMono
	config.Population.Individuals = n
	config.Population.IndividualProposer = KindBinnedProposer
	config.Population.IndividualResponder = KindChooserResponder
	return config
}

func TestIndividualCombinesRoles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ind := NewIndividual(&ThresholdProposer{Proposition: 0.2}, &ThresholdResponder{AcceptBound: 0.4})
	ind.Proposer.AddFitness(1.5)
	ind.Responder.AddFitness(0.25)
	assert.Equal(t, 1.75, ind.Fitness())

	c := ind.Clone()
	c.Mutate(1, rng)
	assert.Equal(t, 0.2, ind.Proposer.(*ThresholdProposer).Proposition)
	assert.Equal(t, 0.4, ind.Responder.(*ThresholdResponder).AcceptBound)
	assert.Equal(t, 1.75, c.Fitness())

	ind.ResetFitness()
	assert.Zero(t, ind.Proposer.Fitness())
	assert.Zero(t, ind.Responder.Fitness())
	assert.Equal(t, 1.75, c.Fitness())
}

func TestMonoEvolvePreservesSizeAndResetsFitness(t *testing.T) {
	m, err := NewMonoPopulation(monoConfig(40), WithRand(rand.New(rand.NewSource(2))))
	require.NoError(t, err)

	for gen := 1; gen <= 10; gen++ {
		require.NoError(t, m.Evolve(DefaultRounds))
		require.Equal(t, 40, m.Size())
		for _, ind := range m.Individuals() {
			require.Zero(t, ind.Fitness())
		}
		assert.Equal(t, gen, m.Statistics().Len())
	}

	g, ok := m.Statistics().Last()
	require.True(t, ok)
	assert.Equal(t, DefaultRounds*40, g.Plays)
	assert.Equal(t, map[string]int{KindBinnedProposer: 40}, g.ProposerCounts)
	assert.Equal(t, map[string]int{KindChooserResponder: 40}, g.ResponderCounts)
}

func TestMonoSelectionUsesCombinedFitness(t *testing.T) {
	config := monoConfig(0)
	config.Population.Individuals = 1
	config.Population.CullingRatio = 0.5
	m, err := NewMonoPopulation(config, WithRand(rand.New(rand.NewSource(3))))
	require.NoError(t, err)

	// Replace the seeded individual with a controlled pool.
	m.individuals = nil
	for i := 0; i < 4; i++ {
		require.NoError(t, m.Add(NewIndividual(&ThresholdProposer{Proposition: 0.9}, &ThresholdResponder{AcceptBound: 0})))
		require.NoError(t, m.Add(NewIndividual(&ThresholdProposer{Proposition: 0.9}, &ThresholdResponder{AcceptBound: 1})))
	}
	require.NoError(t, m.Evolve(4))

	// Picky responders never earn, so only accepting individuals and their
	// slightly mutated clones survive.
	for _, ind := range m.Individuals() {
		assert.Less(t, ind.Responder.(*ThresholdResponder).AcceptBound, 0.5)
	}
}

func TestMonoErrors(t *testing.T) {
	m, err := NewMonoPopulation(monoConfig(3), WithRand(rand.New(rand.NewSource(4))))
	require.NoError(t, err)

	assert.ErrorIs(t, m.Evolve(0), ErrInvalidRounds)
	assert.Error(t, m.AddIndividuals(KindThresholdResponder, KindThresholdResponder, 1))
	assert.Error(t, m.AddIndividuals(KindThresholdProposer, KindThresholdProposer, 1))
	assert.ErrorIs(t, m.AddIndividuals("nope", KindThresholdResponder, 1), ErrUnknownStrategy)
	assert.Error(t, m.Add(&Individual{}))

	m.individuals = nil
	assert.ErrorIs(t, m.Evolve(1), ErrEmptyPool)
}
