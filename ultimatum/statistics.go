package ultimatum

import (
	"maps"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarises one Evolve call.
type GenerationStats struct {
	Generation int
	// Plays is the number of Play calls made during the generation.
	Plays int
	// ProposalMean and ProposalStdDev describe every proposal made during the
	// generation. The standard deviation is the population (not sample) one.
	ProposalMean   float64
	ProposalStdDev float64
	AcceptRate     float64
	// Counts of each strategy kind after selection.
	ProposerCounts  map[string]int
	ResponderCounts map[string]int
}

// Statistics is an append-only log with one entry per generation.
type Statistics struct {
	generations []GenerationStats
}

// NewStatistics returns an empty log.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// record appends the summary of one generation.
func (s *Statistics) record(proposals []float64, accepted int, proposerCounts, responderCounts map[string]int) GenerationStats {
	g := GenerationStats{
		Generation:      len(s.generations) + 1,
		Plays:           len(proposals),
		ProposerCounts:  proposerCounts,
		ResponderCounts: responderCounts,
	}
	if len(proposals) > 0 {
		g.ProposalMean, g.ProposalStdDev = stat.PopMeanStdDev(proposals, nil)
		g.AcceptRate = float64(accepted) / float64(len(proposals))
	}
	s.generations = append(s.generations, g)
	return g
}

// Len is the number of recorded generations.
func (s *Statistics) Len() int { return len(s.generations) }

// Generation returns a copy of the i-th (zero based) entry.
func (s *Statistics) Generation(i int) GenerationStats {
	return copyGeneration(s.generations[i])
}

// Last returns the most recent entry and false if nothing was recorded yet.
func (s *Statistics) Last() (GenerationStats, bool) {
	if len(s.generations) == 0 {
		return GenerationStats{}, false
	}
	return s.Generation(len(s.generations) - 1), true
}

// All returns a copy of every entry.
func (s *Statistics) All() []GenerationStats {
	out := make([]GenerationStats, len(s.generations))
	for i, g := range s.generations {
		out[i] = copyGeneration(g)
	}
	return out
}

// Means returns the proposal mean of every generation.
func (s *Statistics) Means() []float64 {
	return s.column(func(g GenerationStats) float64 { return g.ProposalMean })
}

// StdDevs returns the proposal standard deviation of every generation.
func (s *Statistics) StdDevs() []float64 {
	return s.column(func(g GenerationStats) float64 { return g.ProposalStdDev })
}

// AcceptRates returns the share of accepted offers of every generation.
func (s *Statistics) AcceptRates() []float64 {
	return s.column(func(g GenerationStats) float64 { return g.AcceptRate })
}

// ProposerCounts returns the proposer composition of every generation.
func (s *Statistics) ProposerCounts() []map[string]int {
	out := make([]map[string]int, len(s.generations))
	for i, g := range s.generations {
		out[i] = maps.Clone(g.ProposerCounts)
	}
	return out
}

// ResponderCounts returns the responder composition of every generation.
func (s *Statistics) ResponderCounts() []map[string]int {
	out := make([]map[string]int, len(s.generations))
	for i, g := range s.generations {
		out[i] = maps.Clone(g.ResponderCounts)
	}
	return out
}

func (s *Statistics) column(f func(GenerationStats) float64) []float64 {
	out := make([]float64, len(s.generations))
	for i, g := range s.generations {
		out[i] = f(g)
	}
	return out
}

func copyGeneration(g GenerationStats) GenerationStats {
	g.ProposerCounts = maps.Clone(g.ProposerCounts)
	g.ResponderCounts = maps.Clone(g.ResponderCounts)
	return g
}

// countKinds tallies strategies by Kind.
func countKinds[S Strategy](pool []S) map[string]int {
	counts := make(map[string]int)
	for _, s := range pool {
		counts[s.Kind()]++
	}
	return counts
}
