// Package overlap selects and ranks authored cross-regulation overlap
// mappings against the set of regulations a user has assessed. Overlap
// percentages are authored estimates, never derived from scores.
package overlap

import (
	"sort"

	"github.com/sells-group/compliance-hub/internal/model"
)

// pairKey canonicalizes a regulation pair so that (a, b) and (b, a)
// collapse to the same key.
func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// FindSynergies returns the catalogue entries whose both regulations are in
// the assessed set, deduplicated per pair regardless of argument order and
// ranked by overlap percentage descending. Ties break on the canonical
// pair key for deterministic output.
func FindSynergies(catalogue []model.OverlapMapping, assessed []string) []model.OverlapMapping {
	inSet := make(map[string]bool, len(assessed))
	for _, id := range assessed {
		inSet[id] = true
	}

	seen := make(map[[2]string]bool, len(catalogue))
	var selected []model.OverlapMapping
	for _, m := range catalogue {
		if !inSet[m.RegA] || !inSet[m.RegB] {
			continue
		}
		key := pairKey(m.RegA, m.RegB)
		if seen[key] {
			continue
		}
		seen[key] = true
		selected = append(selected, m)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].OverlapPercent != selected[j].OverlapPercent {
			return selected[i].OverlapPercent > selected[j].OverlapPercent
		}
		ki, kj := pairKey(selected[i].RegA, selected[i].RegB), pairKey(selected[j].RegA, selected[j].RegB)
		if ki[0] != kj[0] {
			return ki[0] < kj[0]
		}
		return ki[1] < kj[1]
	})

	return selected
}

// Annotate attaches the current overall score of each side of every mapping,
// where the score store has data for that regulation. It performs no other
// transformation.
func Annotate(selected []model.OverlapMapping, scores map[string]float64) []model.SynergyEntry {
	entries := make([]model.SynergyEntry, 0, len(selected))
	for _, m := range selected {
		e := model.SynergyEntry{OverlapMapping: m}
		if s, ok := scores[m.RegA]; ok {
			v := s
			e.RegAScore = &v
		}
		if s, ok := scores[m.RegB]; ok {
			v := s
			e.RegBScore = &v
		}
		entries = append(entries, e)
	}
	return entries
}
