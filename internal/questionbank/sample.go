package questionbank

import "math/rand/v2"

// Sample returns min(n, len(pool)) records drawn uniformly without
// replacement, in random order. It runs a partial Fisher–Yates shuffle over
// a copy, so pool is left untouched. A nil rng uses the global source.
func Sample(pool []Record, n int, rng *rand.Rand) []Record {
	if n <= 0 || len(pool) == 0 {
		return []Record{}
	}
	k := min(n, len(pool))

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	shuffled := make([]Record, len(pool))
	copy(shuffled, pool)
	for i := 0; i < k; i++ {
		j := i + intN(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k:k]
}
