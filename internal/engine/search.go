package engine

import "math/rand"

// searchRun holds the per-invocation mutable state for one call to search
// (§4.5): the running pure-accept count against this call's batch limit,
// and the local fill buffer that is only drained into the store after the
// DFS returns.
type searchRun struct {
	cc         *CompiledConstraints
	desires    []Course
	batchLimit int
	allowFill  bool
	store      *resultStore
	rng        *rand.Rand
	opts       Options

	foundPure  int
	fillBuffer []Schedule
}

// search runs one bounded randomized DFS rooted at base over the (already
// shuffled, by the caller) desire ordering, returning the number of results
// newly accepted into store (§4.5 "Return the total number of results").
func search(base Schedule, cc *CompiledConstraints, desires []Course, batchLimit int, allowFill bool, store *resultStore, rng *rand.Rand, opts Options) int {
	// A base drawn from a requirement group that compile kept despite the
	// forbidden mask (§4.3 step 2 fallback) can never yield a valid result.
	if conflicts(base.UnionMask, cc.ForbiddenMask) {
		return 0
	}
	run := &searchRun{
		cc:         cc,
		desires:    desires,
		batchLimit: batchLimit,
		allowFill:  allowFill,
		store:      store,
		rng:        rng,
		opts:       opts,
	}
	before := store.len()
	s := base
	run.frame(&s, 0)
	accepted := store.len() - before

	if run.foundPure < run.batchLimit && run.allowFill {
		rng.Shuffle(len(run.fillBuffer), func(i, j int) {
			run.fillBuffer[i], run.fillBuffer[j] = run.fillBuffer[j], run.fillBuffer[i]
		})
		for _, candidate := range run.fillBuffer {
			if store.len()-before >= run.batchLimit {
				break
			}
			if store.tryAccept(candidate) {
				accepted++
			}
		}
	}
	return accepted
}

// frame is one DFS stack frame that extends s with candidates from
// run.desires[idx:].
func (run *searchRun) frame(s *Schedule, idx int) {
	if run.opts.aborted() {
		return
	}
	if s.TotalCredits > run.cc.MaxCredits {
		return
	}
	if !run.allowFill && s.TotalCredits < run.cc.MinCredits {
		remaining := sumCredits(run.desires[idx:])
		if s.TotalCredits+remaining < run.cc.MinCredits {
			return
		}
	}

	extended := false
	for i := idx; i < len(run.desires); i++ {
		if run.foundPure >= run.batchLimit {
			break
		}
		candidate := run.desires[i]
		if s.TotalCredits+candidate.Credits > run.cc.MaxCredits {
			continue
		}
		if !s.addCourse(candidate) {
			continue
		}
		extended = true
		run.frame(s, i+1)
		s.removeCourse(candidate)
	}

	if !extended {
		run.leaf(s)
	}
}

// leaf is the leaf handler (§4.5): accept in-window schedules immediately
// (pure), or buffer an attempted fill for later adoption.
func (run *searchRun) leaf(s *Schedule) {
	if s.TotalCredits >= run.cc.MinCredits && s.TotalCredits <= run.cc.MaxCredits {
		if run.store.tryAccept(s.clone()) {
			run.foundPure++
		}
		return
	}
	if s.TotalCredits < run.cc.MinCredits && run.allowFill && len(run.fillBuffer) < run.batchLimit {
		filled, ok := randomFill(*s, run.cc, run.rng)
		if ok {
			run.fillBuffer = append(run.fillBuffer, filled)
		}
	}
}

func sumCredits(courses []Course) int {
	total := 0
	for _, c := range courses {
		total += c.Credits
	}
	return total
}
