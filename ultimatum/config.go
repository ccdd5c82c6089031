package ultimatum

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Topologies.
const (
	TopologyDual = "dual" // separate proposer and responder pools
	TopologyMono = "mono" // one pool of individuals playing both roles
)

// Defaults.
const (
	DefaultMutationStrength = 0.05
	DefaultCullingRatio     = 0.1
	DefaultDiscount         = 0.9
	DefaultRounds           = 10
	DefaultPopulationSize   = 100
)

// Config stores the configuration parameters for a bargaining population.
type Config struct {
	Population PopulationConfig
	// Strategies is the dual-topology seed mixture, in file order.
	Strategies []StrategyCount
}

// PopulationConfig holds the [Population] section.
type PopulationConfig struct {
	Topology         string  `ini:"topology"`
	MutationStrength float64 `ini:"mutation_strength"`
	CullingRatio     float64 `ini:"culling_ratio"`
	// Discount is accepted and stored but not used by the evolution loop.
	Discount float64 `ini:"discount"`
	Rounds   int     `ini:"rounds"`
	Bins     int     `ini:"bins"`
	Seed     int64   `ini:"seed"` // 0 = seed from the clock

	// Mono topology only.
	Individuals         int    `ini:"individuals"`
	IndividualProposer  string `ini:"individual_proposer"`
	IndividualResponder string `ini:"individual_responder"`
}

// StrategyCount asks for Count fresh instances of the named strategy.
type StrategyCount struct {
	Name  string
	Count int
}

// DefaultConfig returns a dual population of DefaultPopulationSize threshold
// proposers and as many threshold responders.
func DefaultConfig() *Config {
	return &Config{
		Population: PopulationConfig{
			Topology:            TopologyDual,
			MutationStrength:    DefaultMutationStrength,
			CullingRatio:        DefaultCullingRatio,
			Discount:            DefaultDiscount,
			Rounds:              DefaultRounds,
			Bins:                DefaultBins,
			Individuals:         DefaultPopulationSize,
			IndividualProposer:  KindThresholdProposer,
			IndividualResponder: KindThresholdResponder,
		},
		Strategies: []StrategyCount{
			{Name: KindThresholdProposer, Count: DefaultPopulationSize},
			{Name: KindThresholdResponder, Count: DefaultPopulationSize},
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
func LoadConfig(filePath string) (*Config, error) {
	config, err := loadConfig(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}
	return config, nil
}

// ParseConfig parses INI content held in memory.
func ParseConfig(data []byte) (*Config, error) {
	return loadConfig(data)
}

func loadConfig(source interface{}) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{}, source)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := cfg.Section("Population").MapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	config.Population.Topology = strings.ToLower(strings.TrimSpace(config.Population.Topology))

	// A [Strategies] section replaces the default mixture entirely.
	if cfg.HasSection("Strategies") {
		config.Strategies = nil
		for _, key := range cfg.Section("Strategies").Keys() {
			n, err := key.Int()
			if err != nil {
				return nil, fmt.Errorf("config error: [Strategies] %s: %w", key.Name(), err)
			}
			config.Strategies = append(config.Strategies, StrategyCount{Name: key.Name(), Count: n})
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	p := c.Population
	if p.Topology != TopologyDual && p.Topology != TopologyMono {
		return fmt.Errorf("config error: invalid topology '%s', must be one of '%s', '%s'", p.Topology, TopologyDual, TopologyMono)
	}
	if p.MutationStrength <= 0 {
		return fmt.Errorf("config error: mutation_strength must be positive")
	}
	if p.CullingRatio < 0 || p.CullingRatio >= 1 {
		return fmt.Errorf("config error: culling_ratio must be in [0, 1)")
	}
	if p.Discount < 0 || p.Discount > 1 {
		return fmt.Errorf("config error: discount must be between 0 and 1")
	}
	if p.Rounds <= 0 {
		return fmt.Errorf("config error: rounds must be positive")
	}
	if p.Bins < 2 {
		return fmt.Errorf("config error: bins must be at least 2")
	}

	switch p.Topology {
	case TopologyDual:
		for _, sc := range c.Strategies {
			if sc.Count < 0 {
				return fmt.Errorf("config error: [Strategies] %s count cannot be negative", sc.Name)
			}
		}
	case TopologyMono:
		if p.Individuals <= 0 {
			return fmt.Errorf("config error: individuals must be positive")
		}
		if p.IndividualProposer == "" || p.IndividualResponder == "" {
			return fmt.Errorf("config error: individual_proposer and individual_responder must be specified")
		}
	}
	return nil
}
