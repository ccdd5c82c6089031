package ultimatum

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

var (
	// ErrEmptyPool is returned by Evolve when a pool has no members.
	ErrEmptyPool = errors.New("empty pool")
	// ErrAlreadyEvolving is returned when strategies are added after the
	// first Evolve call.
	ErrAlreadyEvolving = errors.New("population is already evolving")
	// ErrInvalidRounds is returned by Evolve for a round count below 1.
	ErrInvalidRounds = errors.New("rounds must be positive")
)

// Evolver is implemented by both population topologies.
type Evolver interface {
	Evolve(nRounds int) error
	Statistics() *Statistics
	Size() int
}

// Option customises a population at construction.
type Option func(*options)

type options struct {
	rng      *rand.Rand
	logger   *slog.Logger
	registry *Registry
}

// WithRand sets the random source. It overrides the configured seed.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry sets the strategy registry used by name-based constructors.
func WithRegistry(reg *Registry) Option {
	return func(o *options) { o.registry = reg }
}

func buildOptions(config *Config, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		seed := config.Population.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.rng = rand.New(rand.NewSource(seed))
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}
	if o.registry == nil {
		o.registry = NewRegistry(config.Population.Bins, nil)
	}
	return o
}

// New builds the population topology named by the config.
func New(config *Config, opts ...Option) (Evolver, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Population.Topology == TopologyMono {
		m, err := NewMonoPopulation(config, opts...)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	p, err := NewPopulation(config, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Population is the dual topology: proposers and responders live in two
// independent pools whose sizes never change once evolution starts.
type Population struct {
	Config     *Config
	Registry   *Registry
	Generation int

	proposers  []Proposer
	responders []Responder
	stats      *Statistics
	rng        *rand.Rand
	logger     *slog.Logger
}

// NewPopulation creates a dual population seeded with the config's strategy
// mixture. An empty mixture leaves both pools empty for the caller to fill.
func NewPopulation(config *Config, opts ...Option) (*Population, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(config, opts)

	p := &Population{
		Config:   config,
		Registry: o.registry,
		stats:    NewStatistics(),
		rng:      o.rng,
		logger:   o.logger,
	}
	for _, sc := range config.Strategies {
		if err := p.AddStrategies(sc.Name, sc.Count); err != nil {
			return nil, fmt.Errorf("failed to seed population: %w", err)
		}
	}
	p.logger.Info("population created",
		"topology", TopologyDual,
		"proposers", len(p.proposers),
		"responders", len(p.responders))
	return p, nil
}

// NewThresholdPopulation creates n threshold proposers and n threshold
// responders with the remaining parameters taken from config.
func NewThresholdPopulation(n int, config *Config, opts ...Option) (*Population, error) {
	if config == nil {
		config = DefaultConfig()
	}
	c := *config
	c.Population.Topology = TopologyDual
	c.Strategies = []StrategyCount{
		{Name: KindThresholdProposer, Count: n},
		{Name: KindThresholdResponder, Count: n},
	}
	return NewPopulation(&c, opts...)
}

// AddStrategies appends n fresh instances of the named strategy to the pool
// matching its role.
func (p *Population) AddStrategies(name string, n int) error {
	if n < 0 {
		return fmt.Errorf("cannot add %d strategies of %s", n, name)
	}
	batch := make([]Strategy, 0, n)
	for i := 0; i < n; i++ {
		s, err := p.Registry.New(name, p.rng)
		if err != nil {
			return err
		}
		batch = append(batch, s)
	}
	return p.Add(batch...)
}

// Add appends strategies to the pool matching their declared role.
func (p *Population) Add(strategies ...Strategy) error {
	if p.Generation > 0 {
		return ErrAlreadyEvolving
	}
	var props []Proposer
	var resps []Responder
	for _, s := range strategies {
		switch s.Role() {
		case RoleProposer:
			pr, ok := s.(Proposer)
			if !ok {
				return fmt.Errorf("strategy %s declares role %s but does not propose", s.Kind(), s.Role())
			}
			props = append(props, pr)
		case RoleResponder:
			r, ok := s.(Responder)
			if !ok {
				return fmt.Errorf("strategy %s declares role %s but does not respond", s.Kind(), s.Role())
			}
			resps = append(resps, r)
		default:
			return fmt.Errorf("strategy %s has unknown role %s", s.Kind(), s.Role())
		}
	}
	p.proposers = append(p.proposers, props...)
	p.responders = append(p.responders, resps...)
	return nil
}

// Evolve runs nRounds interaction rounds followed by one selection pass on
// each pool and appends one entry to the statistics log.
//
// In every round each proposer plays a uniformly drawn responder, then each
// responder is played by a uniformly drawn proposer. Draws are with
// replacement.
func (p *Population) Evolve(nRounds int) error {
	if nRounds < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRounds, nRounds)
	}
	nProp, nResp := len(p.proposers), len(p.responders)
	if nProp == 0 || nResp == 0 {
		return fmt.Errorf("%w: %d proposers, %d responders", ErrEmptyPool, nProp, nResp)
	}
	start := time.Now()

	proposals := make([]float64, 0, nRounds*(nProp+nResp))
	accepted := 0
	record := func(v float64, ok bool) {
		proposals = append(proposals, v)
		if ok {
			accepted++
		}
	}
	for k := 0; k < nRounds; k++ {
		for _, pr := range p.proposers {
			record(Play(pr, p.responders[p.rng.Intn(nResp)], p.rng))
		}
		for _, r := range p.responders {
			record(Play(p.proposers[p.rng.Intn(nProp)], r, p.rng))
		}
	}

	pc := p.Config.Population
	p.proposers = naturalSelection(p.proposers, pc.CullingRatio, pc.MutationStrength, p.rng)
	p.responders = naturalSelection(p.responders, pc.CullingRatio, pc.MutationStrength, p.rng)
	if len(p.proposers) != nProp || len(p.responders) != nResp {
		panic(fmt.Sprintf("ultimatum: pool sizes drifted from %d/%d to %d/%d",
			nProp, nResp, len(p.proposers), len(p.responders)))
	}

	p.Generation++
	g := p.stats.record(proposals, accepted, countKinds(p.proposers), countKinds(p.responders))
	p.logger.Debug("generation complete",
		"generation", p.Generation,
		"plays", g.Plays,
		"mean", g.ProposalMean,
		"stddev", g.ProposalStdDev,
		"accept_rate", g.AcceptRate,
		"elapsed", time.Since(start))
	return nil
}

// Statistics returns the generation log.
func (p *Population) Statistics() *Statistics { return p.stats }

// Size is the total number of strategies across both pools.
func (p *Population) Size() int { return len(p.proposers) + len(p.responders) }

// Proposers returns a snapshot of the proposer pool in its current order.
func (p *Population) Proposers() []Proposer {
	return append([]Proposer(nil), p.proposers...)
}

// Responders returns a snapshot of the responder pool in its current order.
func (p *Population) Responders() []Responder {
	return append([]Responder(nil), p.responders...)
}
