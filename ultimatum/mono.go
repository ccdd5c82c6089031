package ultimatum

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// MonoPopulation is the self-play topology: a single pool of individuals,
// each owning a proposer and a responder.
type MonoPopulation struct {
	Config     *Config
	Registry   *Registry
	Generation int

	individuals []*Individual
	stats       *Statistics
	rng         *rand.Rand
	logger      *slog.Logger
}

// NewMonoPopulation creates config.Population.Individuals individuals built
// from the configured proposer and responder kinds.
func NewMonoPopulation(config *Config, opts ...Option) (*MonoPopulation, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(config, opts)

	m := &MonoPopulation{
		Config:   config,
		Registry: o.registry,
		stats:    NewStatistics(),
		rng:      o.rng,
		logger:   o.logger,
	}
	pc := config.Population
	if err := m.AddIndividuals(pc.IndividualProposer, pc.IndividualResponder, pc.Individuals); err != nil {
		return nil, fmt.Errorf("failed to seed population: %w", err)
	}
	m.logger.Info("population created",
		"topology", TopologyMono,
		"individuals", len(m.individuals))
	return m, nil
}

// AddIndividuals appends n individuals pairing fresh instances of the named
// proposer and responder.
func (m *MonoPopulation) AddIndividuals(proposer, responder string, n int) error {
	if n < 0 {
		return fmt.Errorf("cannot add %d individuals", n)
	}
	batch := make([]*Individual, 0, n)
	for i := 0; i < n; i++ {
		ps, err := m.Registry.New(proposer, m.rng)
		if err != nil {
			return err
		}
		pr, ok := ps.(Proposer)
		if !ok || ps.Role() != RoleProposer {
			return fmt.Errorf("strategy %s is not a proposer", proposer)
		}
		rs, err := m.Registry.New(responder, m.rng)
		if err != nil {
			return err
		}
		r, ok := rs.(Responder)
		if !ok || rs.Role() != RoleResponder {
			return fmt.Errorf("strategy %s is not a responder", responder)
		}
		batch = append(batch, NewIndividual(pr, r))
	}
	return m.Add(batch...)
}

// Add appends individuals to the pool.
func (m *MonoPopulation) Add(individuals ...*Individual) error {
	if m.Generation > 0 {
		return ErrAlreadyEvolving
	}
	for _, ind := range individuals {
		if ind == nil || ind.Proposer == nil || ind.Responder == nil {
			return fmt.Errorf("individual must own a proposer and a responder")
		}
	}
	m.individuals = append(m.individuals, individuals...)
	return nil
}

// Evolve runs nRounds interaction rounds followed by one selection pass and
// appends one entry to the statistics log.
//
// Each round draws a random permutation of the pool; individual i offers to
// the responder of individual perm[i]. An individual may be paired with
// itself.
func (m *MonoPopulation) Evolve(nRounds int) error {
	if nRounds < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRounds, nRounds)
	}
	n := len(m.individuals)
	if n == 0 {
		return fmt.Errorf("%w: no individuals", ErrEmptyPool)
	}
	start := time.Now()

	proposals := make([]float64, 0, nRounds*n)
	accepted := 0
	for k := 0; k < nRounds; k++ {
		for i, j := range m.rng.Perm(n) {
			v, ok := Play(m.individuals[i].Proposer, m.individuals[j].Responder, m.rng)
			proposals = append(proposals, v)
			if ok {
				accepted++
			}
		}
	}

	pc := m.Config.Population
	m.individuals = naturalSelection(m.individuals, pc.CullingRatio, pc.MutationStrength, m.rng)
	if len(m.individuals) != n {
		panic(fmt.Sprintf("ultimatum: pool size drifted from %d to %d", n, len(m.individuals)))
	}

	m.Generation++
	props := make([]Proposer, n)
	resps := make([]Responder, n)
	for i, ind := range m.individuals {
		props[i], resps[i] = ind.Proposer, ind.Responder
	}
	g := m.stats.record(proposals, accepted, countKinds(props), countKinds(resps))
	m.logger.Debug("generation complete",
		"generation", m.Generation,
		"plays", g.Plays,
		"mean", g.ProposalMean,
		"stddev", g.ProposalStdDev,
		"accept_rate", g.AcceptRate,
		"elapsed", time.Since(start))
	return nil
}

// Statistics returns the generation log.
func (m *MonoPopulation) Statistics() *Statistics { return m.stats }

// Size is the number of individuals.
func (m *MonoPopulation) Size() int { return len(m.individuals) }

// Individuals returns a snapshot of the pool in its current order.
func (m *MonoPopulation) Individuals() []*Individual {
	return append([]*Individual(nil), m.individuals...)
}
