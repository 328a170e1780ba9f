package engine

// AbortSignal is polled at the top of each restart iteration and at each
// DFS frame entry (§5 "Cancellation"). A nil signal is never polled.
type AbortSignal interface {
	Aborted() bool
}

// ProgressFunc is a fire-and-forget string sink invoked at restart
// checkpoints and phase transitions, never inside a hot DFS frame (§4.8,
// §9). The engine runs it synchronously on its own goroutine; a host that
// needs to hop threads must do so itself.
type ProgressFunc func(message string)

// Options governs the search/restart behavior (§6 "options", §4.7
// defaults). Zero-value fields are replaced by the documented defaults in
// resolveOptions.
type Options struct {
	Target              int
	BatchLimit          int
	MaxRestarts         int
	SaturationWindow    int
	SaturationThreshold int
	MaxPureFailures     int
	HardCap             int
	ProgressInterval    int
	Seed                uint64
	Progress            ProgressFunc
	Abort               AbortSignal

	// AllGradesMarker and OpenPoolBlocklist govern the open-enrollment pool
	// (§4.3 step 6); both are configuration, never hard-coded (§9 open
	// questions).
	AllGradesMarker   string
	OpenPoolBlocklist []string
}

func resolveOptions(o Options) Options {
	if o.Target <= 0 {
		o.Target = 10000
	}
	if o.BatchLimit <= 0 {
		o.BatchLimit = 20
	}
	if o.MaxRestarts <= 0 {
		o.MaxRestarts = 1000
	}
	if o.SaturationWindow <= 0 {
		o.SaturationWindow = 100
	}
	if o.SaturationThreshold <= 0 {
		o.SaturationThreshold = 3
	}
	if o.MaxPureFailures <= 0 {
		o.MaxPureFailures = 50
	}
	if o.HardCap <= 0 {
		o.HardCap = 100000
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 50
	}
	return o
}

func (o Options) aborted() bool {
	return o.Abort != nil && o.Abort.Aborted()
}

func (o Options) report(msg string) {
	if o.Progress != nil {
		o.Progress(msg)
	}
}
