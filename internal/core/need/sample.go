package need

import "math/rand/v2"

// DefaultSampleSize is how many needs are offered to the generator as grounding.
const DefaultSampleSize = 3

// Sample returns a uniformly random subset of size min(len(needs), k).
// The input slice is not modified. A nil rng uses the global source, so every
// call reshuffles independently; tests pass a seeded *rand.Rand.
func Sample(needs []Need, k int, rng *rand.Rand) []Need {
	if k <= 0 || len(needs) == 0 {
		return []Need{}
	}
	if k > len(needs) {
		k = len(needs)
	}

	pool := make([]Need, len(needs))
	copy(pool, needs)

	// Partial Fisher-Yates: only the first k positions need to be settled.
	for i := 0; i < k; i++ {
		j := i + intN(rng, len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

func intN(rng *rand.Rand, n int) int {
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}
