package failure

import "math/rand"

// selectRandom performs an independent Bernoulli(probability) draw per
// candidate (spec §4.7.2.c "random").
func selectRandom(ids []string, probability float64, rng *rand.Rand) []string {
	var out []string
	for _, id := range ids {
		if rng.Float64() < probability {
			out = append(out, id)
		}
	}

	return out
}

// selectChoice samples count candidates without replacement (every
// candidate when count exceeds the pool), optionally weighted (spec
// §4.7.2.c "choice"). Candidates of weight 0 are never drawn; sampling
// stops early once the remaining pool's total weight is 0. Weighted
// sampling is a
// sequential renormalize-and-draw: repeatedly draw one candidate
// proportional to its remaining weight, then remove it from the pool —
// adapted from the teacher's deterministic, seeded-rng discipline
// (tsp/rng.go's deriveRNG/shuffleIntsInPlace never touch global
// math/rand) rather than any single named algorithm.
func selectChoice(ids []string, count int, weights map[string]float64, rng *rand.Rand) []string {
	pool := make([]string, len(ids))
	copy(pool, ids)
	w := make([]float64, len(pool))
	for i, id := range pool {
		if weights != nil {
			if wv, ok := weights[id]; ok {
				w[i] = wv
			} else {
				w[i] = 1
			}
		} else {
			w[i] = 1
		}
	}

	n := count
	if n > len(pool) {
		n = len(pool)
	}

	chosen := make([]string, 0, n)
	for k := 0; k < n; k++ {
		var total float64
		for _, x := range w {
			total += x
		}
		if total <= 0 {
			break
		}
		r := rng.Float64() * total
		idx := len(w) - 1
		var cum float64
		for i, x := range w {
			cum += x
			if r < cum {
				idx = i

				break
			}
		}
		chosen = append(chosen, pool[idx])
		pool = append(pool[:idx], pool[idx+1:]...)
		w = append(w[:idx], w[idx+1:]...)
	}

	return chosen
}

// chooseMode picks exactly one mode from modes by weighted sampling (spec
// §4.7 step 1). Returns ErrZeroSumWeights if every weight is 0.
func chooseMode(modes []Mode, rng *rand.Rand) (*Mode, error) {
	var total float64
	for _, m := range modes {
		total += m.Weight
	}
	if total <= 0 {
		return nil, ErrZeroSumWeights
	}

	r := rng.Float64() * total
	var cum float64
	for i := range modes {
		cum += modes[i].Weight
		if r < cum {
			return &modes[i], nil
		}
	}

	return &modes[len(modes)-1], nil
}
