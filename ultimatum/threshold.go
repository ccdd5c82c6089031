package ultimatum

import (
	"fmt"
	"math/rand"
)

const (
	KindThresholdProposer  = "threshold_proposer"
	KindThresholdResponder = "threshold_responder"
)

// ThresholdProposer always offers the same share.
type ThresholdProposer struct {
	fitness
	Proposition float64
}

// NewThresholdProposer creates a proposer with a uniformly random proposition.
func NewThresholdProposer(rng *rand.Rand) *ThresholdProposer {
	return &ThresholdProposer{Proposition: rng.Float64()}
}

func (p *ThresholdProposer) Kind() string { return KindThresholdProposer }
func (p *ThresholdProposer) Role() Role   { return RoleProposer }

func (p *ThresholdProposer) Propose(_ *rand.Rand) float64 {
	return p.Proposition
}

func (p *ThresholdProposer) Mutate(alpha float64, rng *rand.Rand) {
	p.Proposition = clamp(p.Proposition+alpha*rng.NormFloat64(), 0, 1)
}

// Clone copies the proposition; fitness is carried over as well.
func (p *ThresholdProposer) Clone() Proposer {
	c := *p
	return &c
}

func (p *ThresholdProposer) String() string {
	return fmt.Sprintf("ThresholdProposer(Proposition: %.3f, Fitness: %.3f)", p.Proposition, p.value)
}

// ThresholdResponder accepts every offer at or above its bound.
type ThresholdResponder struct {
	fitness
	AcceptBound float64
}

// NewThresholdResponder creates a responder with a uniformly random bound.
func NewThresholdResponder(rng *rand.Rand) *ThresholdResponder {
	return &ThresholdResponder{AcceptBound: rng.Float64()}
}

func (r *ThresholdResponder) Kind() string { return KindThresholdResponder }
func (r *ThresholdResponder) Role() Role   { return RoleResponder }

func (r *ThresholdResponder) Respond(proposal float64, _ *rand.Rand) bool {
	return proposal >= r.AcceptBound
}

func (r *ThresholdResponder) Mutate(alpha float64, rng *rand.Rand) {
	r.AcceptBound = clamp(r.AcceptBound+alpha*rng.NormFloat64(), 0, 1)
}

func (r *ThresholdResponder) Clone() Responder {
	c := *r
	return &c
}

func (r *ThresholdResponder) String() string {
	return fmt.Sprintf("ThresholdResponder(AcceptBound: %.3f, Fitness: %.3f)", r.AcceptBound, r.value)
}
