package ultimatum

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	KindChooserProposer  = "chooser_proposer"
	KindChooserResponder = "chooser_responder"
)

// Sampler is a probability distribution over the points of a shared grid.
// Chooser strategies own one and delegate sampling and mutation to it.
type Sampler struct {
	points []float64 // shared, read-only
	Probs  []float64
}

// NewSampler creates a sampler with a random distribution over points.
func NewSampler(points []float64, rng *rand.Rand) *Sampler {
	probs := randomWeights(len(points), rng)
	normalize(probs)
	return &Sampler{points: points, Probs: probs}
}

// Points returns the grid the sampler draws from.
func (s *Sampler) Points() []float64 { return s.points }

// Sample draws one grid point.
func (s *Sampler) Sample(rng *rand.Rand) float64 {
	return s.points[sampleIndex(s.Probs, rng)]
}

// Mutate perturbs the weights, drops negative mass and renormalises.
func (s *Sampler) Mutate(alpha float64, rng *rand.Rand) {
	perturb(s.Probs, alpha, 0, math.Inf(1), rng)
	normalize(s.Probs)
}

// Clone copies the weights. The grid is shared since nobody writes to it.
func (s *Sampler) Clone() *Sampler {
	return &Sampler{
		points: s.points,
		Probs:  append([]float64(nil), s.Probs...),
	}
}

// ChooserProposer offers a point drawn from its sampler.
type ChooserProposer struct {
	fitness
	Sampler *Sampler
}

// NewChooserProposer creates a proposer over the given grid.
func NewChooserProposer(points []float64, rng *rand.Rand) *ChooserProposer {
	return &ChooserProposer{Sampler: NewSampler(points, rng)}
}

func (p *ChooserProposer) Kind() string { return KindChooserProposer }
func (p *ChooserProposer) Role() Role   { return RoleProposer }

func (p *ChooserProposer) Propose(rng *rand.Rand) float64 {
	return p.Sampler.Sample(rng)
}

func (p *ChooserProposer) Mutate(alpha float64, rng *rand.Rand) {
	p.Sampler.Mutate(alpha, rng)
}

func (p *ChooserProposer) Clone() Proposer {
	return &ChooserProposer{fitness: p.fitness, Sampler: p.Sampler.Clone()}
}

func (p *ChooserProposer) String() string {
	return fmt.Sprintf("ChooserProposer(Points: %d, Fitness: %.3f)", len(p.Sampler.points), p.value)
}

// ChooserResponder draws a reservation point on every offer and accepts
// only offers strictly above it.
type ChooserResponder struct {
	fitness
	Sampler *Sampler
}

// NewChooserResponder creates a responder over the given grid.
func NewChooserResponder(points []float64, rng *rand.Rand) *ChooserResponder {
	return &ChooserResponder{Sampler: NewSampler(points, rng)}
}

func (r *ChooserResponder) Kind() string { return KindChooserResponder }
func (r *ChooserResponder) Role() Role   { return RoleResponder }

func (r *ChooserResponder) Respond(proposal float64, rng *rand.Rand) bool {
	return proposal > r.Sampler.Sample(rng)
}

func (r *ChooserResponder) Mutate(alpha float64, rng *rand.Rand) {
	r.Sampler.Mutate(alpha, rng)
}

func (r *ChooserResponder) Clone() Responder {
	return &ChooserResponder{fitness: r.fitness, Sampler: r.Sampler.Clone()}
}

func (r *ChooserResponder) String() string {
	return fmt.Sprintf("ChooserResponder(Points: %d, Fitness: %.3f)", len(r.Sampler.points), r.value)
}
