package ultimatum

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// clamp restricts a value to a given range [minVal, maxVal].
func clamp(value, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(value, maxVal))
}

// perturb adds alpha-scaled Gaussian noise to every element and clamps the
// result into [minVal, maxVal] in place.
func perturb(values []float64, alpha, minVal, maxVal float64, rng *rand.Rand) {
	for i := range values {
		values[i] = clamp(values[i]+alpha*rng.NormFloat64(), minVal, maxVal)
	}
}

// randomWeights returns n uniform draws from [0,1).
func randomWeights(n int, rng *rand.Rand) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = rng.Float64()
	}
	return w
}

// normalize scales values in place so they sum to 1. A vector with no mass
// left (all zeros after clamping) is reset to uniform.
func normalize(values []float64) {
	total := floats.Sum(values)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		for i := range values {
			values[i] = 1 / float64(len(values))
		}
		return
	}
	floats.Scale(1/total, values)
}

// sampleIndex draws an index from a normalised distribution by walking the
// cumulative mass. Rounding slack falls onto the last index.
func sampleIndex(probs []float64, rng *rand.Rand) int {
	r := rng.Float64()
	for k, p := range probs {
		r -= p
		if r <= 0 {
			return k
		}
	}
	return len(probs) - 1
}

// binIndex maps a value in [0,1] onto one of bins buckets. The value is
// shifted down by binEpsilon before truncation so that 1.0 lands in the last
// bucket; the result is clamped to [0, bins-1].
func binIndex(value float64, bins int) int {
	k := int(value*float64(bins) - binEpsilon)
	if k < 0 {
		return 0
	}
	if k >= bins {
		return bins - 1
	}
	return k
}

const binEpsilon = 1e-6
