// Package configstore round-trips an engine.Configuration to/from the JSON
// schema named in spec §6's "config" contract, mirroring the Python
// original's load_config_from_json/save_config_to_json (minus its
// legacy Korean-keyed schema, which was an artifact of that program's own
// migration rather than a format this system ever produced).
package configstore

import (
	"encoding/json"
	"io"

	"github.com/classwise/timetabler/internal/engine"
)

type document struct {
	MinCredits        int           `json:"min_credits"`
	MaxCredits        int           `json:"max_credits"`
	Required          []filterDoc   `json:"required"`
	Desired           []filterDoc   `json:"desired"`
	ExcludedDays      []int         `json:"excluded_days"`
	ExcludedIntervals []intervalDoc `json:"excluded_intervals"`
}

type filterDoc struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Professor string `json:"professor,omitempty"`
}

type intervalDoc struct {
	Day   int `json:"day"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Defaults mirror the original's ScheduleConfig(12, 18, [], [], [], [])
// fallback used when no file is present.
func Defaults() engine.Configuration {
	return engine.Configuration{MinCredits: 12, MaxCredits: 18}
}

// Load reads a Configuration from r. An empty input yields Defaults().
func Load(r io.Reader) (engine.Configuration, error) {
	var doc document
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.Configuration{}, err
	}
	if len(data) == 0 {
		return Defaults(), nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return engine.Configuration{}, err
	}
	return fromDocument(doc), nil
}

// Save writes cfg to w in the current schema.
func Save(w io.Writer, cfg engine.Configuration) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toDocument(cfg))
}

func fromDocument(doc document) engine.Configuration {
	cfg := engine.Configuration{
		MinCredits: doc.MinCredits,
		MaxCredits: doc.MaxCredits,
	}
	for _, f := range doc.Required {
		cfg.Required = append(cfg.Required, engine.Filter{ID: f.ID, Name: f.Name, Professor: f.Professor})
	}
	for _, f := range doc.Desired {
		cfg.Desired = append(cfg.Desired, engine.Filter{ID: f.ID, Name: f.Name, Professor: f.Professor})
	}
	for _, d := range doc.ExcludedDays {
		cfg.ExcludedDays = append(cfg.ExcludedDays, engine.Day(d))
	}
	for _, iv := range doc.ExcludedIntervals {
		cfg.ExcludedIntervals = append(cfg.ExcludedIntervals, engine.ExcludedInterval{
			Day: engine.Day(iv.Day), Start: iv.Start, End: iv.End,
		})
	}
	return cfg
}

func toDocument(cfg engine.Configuration) document {
	doc := document{MinCredits: cfg.MinCredits, MaxCredits: cfg.MaxCredits}
	for _, f := range cfg.Required {
		doc.Required = append(doc.Required, filterDoc{ID: f.ID, Name: f.Name, Professor: f.Professor})
	}
	for _, f := range cfg.Desired {
		doc.Desired = append(doc.Desired, filterDoc{ID: f.ID, Name: f.Name, Professor: f.Professor})
	}
	for _, d := range cfg.ExcludedDays {
		doc.ExcludedDays = append(doc.ExcludedDays, int(d))
	}
	for _, iv := range cfg.ExcludedIntervals {
		doc.ExcludedIntervals = append(doc.ExcludedIntervals, intervalDoc{Day: int(iv.Day), Start: iv.Start, End: iv.End})
	}
	return doc
}
