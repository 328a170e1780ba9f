package engine

import "math/rand"

// randomFill augments a copy of a below-C_min schedule from the open pool
// (§4.6): shuffle the pool under the search RNG, greedily add whatever
// fits, stop at C_max or pool exhaustion. Returns the augmented copy and
// whether anything was actually added.
func randomFill(s Schedule, cc *CompiledConstraints, rng *rand.Rand) (Schedule, bool) {
	pool := make([]Course, len(cc.OpenPool))
	copy(pool, cc.OpenPool)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := s.clone()
	added := false
	for _, c := range pool {
		if out.TotalCredits >= cc.MaxCredits {
			break
		}
		if out.TotalCredits+c.Credits > cc.MaxCredits {
			continue
		}
		if conflicts(cc.ForbiddenMask, c.TimeMask) {
			continue
		}
		if out.addCourse(c) {
			added = true
		}
	}
	if added {
		out.RandomFilled = true
	}
	return out, added
}
