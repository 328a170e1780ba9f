package engine

import (
	"fmt"
	"strings"
)

// defaultAllGradesMarker is the open-pool category/grade marker used by the
// source domain's catalogs. Overridable via Options.AllGradesMarker.
const defaultAllGradesMarker = "전학년"

func compileConstraints(catalog []Course, cfg Configuration, opts Options) (*CompiledConstraints, error) {
	if cfg.MinCredits > cfg.MaxCredits || cfg.MinCredits < 0 {
		return nil, newError(KindInvalidCreditWindow, fmt.Sprintf("min=%d max=%d", cfg.MinCredits, cfg.MaxCredits))
	}
	if _, err := buildCatalogIndex(catalog); err != nil {
		return nil, err
	}
	for _, f := range cfg.Required {
		if f.empty() {
			return nil, newError(KindEmptyFilter, "required filter has no predicate")
		}
	}
	for _, f := range cfg.Desired {
		if f.empty() {
			return nil, newError(KindEmptyFilter, "desired filter has no predicate")
		}
	}
	for _, iv := range cfg.ExcludedIntervals {
		if !(TimeSlot{Day: iv.Day, Start: iv.Start, End: iv.End}).aligned() {
			return nil, newError(KindMisalignedTime, fmt.Sprintf("excluded interval %s %d-%d", iv.Day, iv.Start, iv.End))
		}
	}

	forbidden := buildForbiddenMask(cfg)

	requirementGroups := make([][]Course, 0, len(cfg.Required))
	inRequirement := make(map[string]struct{})
	for _, f := range cfg.Required {
		matched := matchAll(f, catalog)
		if len(matched) == 0 {
			return nil, newError(KindRequirementUnresolved, describeFilter(f))
		}
		group := filterForbidden(matched, forbidden)
		if len(group) == 0 {
			// Step 2's fallback: dropping forbidden-intersecting courses would
			// empty the group, so retain the original list and let the search
			// fail naturally rather than spuriously rejecting the filter here.
			group = matched
		}
		requirementGroups = append(requirementGroups, group)
		for _, c := range matched {
			inRequirement[c.ID] = struct{}{}
		}
	}

	var desireCandidates []Course
	for _, f := range cfg.Desired {
		matched := matchAll(f, catalog)
		for _, c := range matched {
			if _, isRequired := inRequirement[c.ID]; isRequired {
				continue
			}
			if conflicts(forbidden, c.TimeMask) {
				continue
			}
			desireCandidates = append(desireCandidates, c)
		}
	}
	sortDesireCandidates(desireCandidates)

	marker := opts.AllGradesMarker
	if marker == "" {
		marker = defaultAllGradesMarker
	}
	blocked := make(map[string]struct{}, len(opts.OpenPoolBlocklist))
	for _, name := range opts.OpenPoolBlocklist {
		blocked[name] = struct{}{}
	}
	var openPool []Course
	for _, c := range catalog {
		if !containsMarker(c, marker) {
			continue
		}
		if _, skip := blocked[c.Name]; skip {
			continue
		}
		openPool = append(openPool, c)
	}

	return &CompiledConstraints{
		MinCredits:        cfg.MinCredits,
		MaxCredits:        cfg.MaxCredits,
		ForbiddenMask:     forbidden,
		RequirementGroups: requirementGroups,
		DesireCandidates:  desireCandidates,
		OpenPool:          openPool,
	}, nil
}

func buildForbiddenMask(cfg Configuration) WeekMask {
	var mask WeekMask
	for _, d := range cfg.ExcludedDays {
		mask.setRange(slotIndex(int(d), 0), slotIndex(int(d), 24*60))
	}
	for _, iv := range cfg.ExcludedIntervals {
		mask.setRange(slotIndex(int(iv.Day), iv.Start), slotIndex(int(iv.Day), iv.End))
	}
	return mask
}

func filterForbidden(courses []Course, forbidden WeekMask) []Course {
	var out []Course
	for _, c := range courses {
		if !conflicts(forbidden, c.TimeMask) {
			out = append(out, c)
		}
	}
	return out
}

func containsMarker(c Course, marker string) bool {
	return marker != "" && (strings.Contains(c.Category, marker) || strings.Contains(c.TargetGrade, marker))
}

func describeFilter(f Filter) string {
	if f.ID != "" {
		return "id=" + f.ID
	}
	return fmt.Sprintf("name=%q professor=%q", f.Name, f.Professor)
}
