package engine

import (
	"fmt"
	"math/rand"
)

// runController drives the restart/saturation loop (§4.7). It owns the
// engine RNG, the result store, and all phase-transition state; nothing
// outside this function touches them.
func runController(cc *CompiledConstraints, opts Options) ([]Schedule, error) {
	bases := requiredCombinations(cc.RequirementGroups)
	if len(bases) == 0 {
		return nil, newError(KindRequirementsIncompatible, "")
	}

	store := newResultStore(opts.HardCap)
	rng := rand.New(rand.NewSource(int64(opts.Seed)))

	allowFill := false
	consecutivePureFailures := 0
	hasEverFoundPure := false
	recentFinds := newRingBuffer(opts.SaturationWindow)
	restartCount := 0

	for store.len() < opts.Target {
		if opts.aborted() {
			break
		}
		restartCount++
		if restartCount > opts.MaxRestarts {
			break
		}

		shuffledBases := shuffleCopySchedules(bases, rng)
		shuffledDesires := shuffleCopy(cc.DesireCandidates, rng)

		foundThisRound := 0
		for _, base := range shuffledBases {
			if opts.aborted() || store.atCap() {
				break
			}
			if foundThisRound >= opts.BatchLimit {
				break
			}
			accepted := search(base, cc, shuffledDesires, opts.BatchLimit-foundThisRound, allowFill, store, rng, opts)
			foundThisRound += accepted
		}

		recentFinds.push(foundThisRound)

		if restartCount%opts.ProgressInterval == 0 {
			opts.report(fmt.Sprintf("restart %d: %d results, allow_fill=%v", restartCount, store.len(), allowFill))
		}

		if !allowFill {
			if foundThisRound > 0 {
				hasEverFoundPure = true
				consecutivePureFailures = 0
			} else if !hasEverFoundPure {
				consecutivePureFailures++
				if consecutivePureFailures >= opts.MaxPureFailures {
					allowFill = true
					consecutivePureFailures = 0
					opts.report(fmt.Sprintf("restart %d: switching to random-fill mode", restartCount))
				}
			}
		}

		if store.atCap() {
			opts.report(fmt.Sprintf("restart %d: hard cap reached, stopping", restartCount))
			break
		}

		if recentFinds.full() && recentFinds.sum() < opts.SaturationThreshold {
			opts.report(fmt.Sprintf("restart %d: saturated at %d results, stopping", restartCount, store.len()))
			break
		}
	}

	opts.report(fmt.Sprintf("done: %d results after %d restarts", store.len(), restartCount))
	return store.results, nil
}

func shuffleCopy(in []Course, rng *rand.Rand) []Course {
	out := make([]Course, len(in))
	copy(out, in)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// shuffleCopySchedules returns a shuffled, deep-copied list of bases: each
// base carries its own names map, since search mutates the frame's running
// Schedule in place and bases are reused across every restart.
func shuffleCopySchedules(in []Schedule, rng *rand.Rand) []Schedule {
	out := make([]Schedule, len(in))
	for i, s := range in {
		out[i] = s.clone()
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
