// Package engine implements the timetable enumeration core: bitmask
// conflict detection, constraint compilation, a required-combination
// enumerator, randomized backtracking search with credit-window pruning,
// random-fill fallback, and a restart/saturation controller that
// accumulates a deduplicated, ordered list of schedules.
//
// The package is a pure library: it performs no I/O, owns no goroutines,
// and is safe to call from any single goroutine. A caller wanting
// background execution or cancellation across a thread boundary wraps
// Generate itself (see internal/jobs).
package engine

// Generate is the engine's single entry point (§6). It compiles the
// configuration against the catalog, enumerates required-group bases, and
// drives the restart/saturation controller until Options.Target schedules
// are found, Options.MaxRestarts is exceeded, or the search saturates.
//
// Given the same seed, catalog, and configuration it returns byte-identical
// output (§5 "Ordering guarantees", §8 property 8).
func Generate(catalog []Course, cfg Configuration, opts Options) ([]Schedule, error) {
	resolved := resolveOptions(opts)

	cc, err := CompileConstraints(catalog, cfg, resolved)
	if err != nil {
		return nil, err
	}

	return GenerateFromCompiled(cc, resolved)
}

// CompileConstraints runs just the compilation step (§4.3): matching
// requirement/desire filters against the catalog and building the
// forbidden-interval mask. Its result is deterministic for a given
// (catalog, cfg, opts.AllGradesMarker, opts.OpenPoolBlocklist) tuple and
// safe to cache across calls to GenerateFromCompiled with a different seed
// or target.
func CompileConstraints(catalog []Course, cfg Configuration, opts Options) (*CompiledConstraints, error) {
	return compileConstraints(catalog, cfg, resolveOptions(opts))
}

// GenerateFromCompiled runs the restart/saturation controller against an
// already-compiled CompiledConstraints, skipping recompilation entirely.
// Callers that cache CompiledConstraints (internal/compilecache) call this
// instead of Generate on a cache hit.
func GenerateFromCompiled(cc *CompiledConstraints, opts Options) ([]Schedule, error) {
	resolved := resolveOptions(opts)
	results, err := runController(cc, resolved)
	if err != nil {
		return nil, err
	}
	return results, nil
}
