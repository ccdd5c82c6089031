package ultimatum

import (
	"fmt"
	"math/rand"
)

const (
	KindBinnedProposer  = "binned_proposer"
	KindBinnedResponder = "binned_responder"

	// DefaultBins is the bucket count used when none is configured.
	DefaultBins = 10

	// binnedWeightCeiling bounds a single proposer weight before normalisation.
	binnedWeightCeiling = 10
)

// BinnedProposer picks one of Bins evenly spaced offers from a probability
// distribution. Bucket k emits k/(Bins-1), so both 0 and 1 are reachable.
type BinnedProposer struct {
	fitness
	Probs []float64
}

// NewBinnedProposer creates a proposer with a random normalised distribution
// over bins buckets. bins must be at least 2.
func NewBinnedProposer(bins int, rng *rand.Rand) *BinnedProposer {
	if bins < 2 {
		panic(fmt.Sprintf("ultimatum: binned proposer needs at least 2 bins, got %d", bins))
	}
	probs := randomWeights(bins, rng)
	normalize(probs)
	return &BinnedProposer{Probs: probs}
}

func (p *BinnedProposer) Kind() string { return KindBinnedProposer }
func (p *BinnedProposer) Role() Role   { return RoleProposer }
func (p *BinnedProposer) Bins() int    { return len(p.Probs) }

func (p *BinnedProposer) Propose(rng *rand.Rand) float64 {
	k := sampleIndex(p.Probs, rng)
	return float64(k) / float64(len(p.Probs)-1)
}

// Mutate perturbs every weight, clamps to [0, 10] and renormalises.
func (p *BinnedProposer) Mutate(alpha float64, rng *rand.Rand) {
	perturb(p.Probs, alpha, 0, binnedWeightCeiling, rng)
	normalize(p.Probs)
}

func (p *BinnedProposer) Clone() Proposer {
	return &BinnedProposer{
		fitness: p.fitness,
		Probs:   append([]float64(nil), p.Probs...),
	}
}

func (p *BinnedProposer) String() string {
	return fmt.Sprintf("BinnedProposer(Bins: %d, Fitness: %.3f)", len(p.Probs), p.value)
}

// BinnedResponder holds an independent acceptance probability per bucket.
// The probabilities are not a distribution and need not sum to 1.
type BinnedResponder struct {
	fitness
	AcceptProbs []float64
}

// NewBinnedResponder creates a responder with uniformly random per-bucket
// acceptance probabilities. bins must be at least 1.
func NewBinnedResponder(bins int, rng *rand.Rand) *BinnedResponder {
	if bins < 1 {
		panic(fmt.Sprintf("ultimatum: binned responder needs at least 1 bin, got %d", bins))
	}
	return &BinnedResponder{AcceptProbs: randomWeights(bins, rng)}
}

func (r *BinnedResponder) Kind() string { return KindBinnedResponder }
func (r *BinnedResponder) Role() Role   { return RoleResponder }
func (r *BinnedResponder) Bins() int    { return len(r.AcceptProbs) }

// Respond accepts with the probability stored for the proposal's bucket.
// See binIndex for the boundary rule at 1.0.
func (r *BinnedResponder) Respond(proposal float64, rng *rand.Rand) bool {
	k := binIndex(proposal, len(r.AcceptProbs))
	return rng.Float64() < r.AcceptProbs[k]
}

func (r *BinnedResponder) Mutate(alpha float64, rng *rand.Rand) {
	perturb(r.AcceptProbs, alpha, 0, 1, rng)
}

func (r *BinnedResponder) Clone() Responder {
	return &BinnedResponder{
		fitness:     r.fitness,
		AcceptProbs: append([]float64(nil), r.AcceptProbs...),
	}
}

func (r *BinnedResponder) String() string {
	return fmt.Sprintf("BinnedResponder(Bins: %d, Fitness: %.3f)", len(r.AcceptProbs), r.value)
}
