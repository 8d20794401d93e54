package competitor

import (
	"sort"
	"strings"

	"marketstudy/pkg/contracts/domain"
)

// TopStrengthsLimit caps the number of strengths reported by Analyze.
const TopStrengthsLimit = 5

// Analyze computes aggregate statistics over a competitor table. It never
// fails: blank cells count as zero items and an empty table yields a zero
// result.
func Analyze(records []domain.CompetitorRecord) domain.CompetitorAnalysis {
	analysis := domain.CompetitorAnalysis{
		TotalCompetitors:           len(records),
		MarketPositionDistribution: make(map[string]int),
		TopStrengths:               []domain.TokenCount{},
		SpecializationFrequency:    []domain.TokenCount{},
	}
	if len(records) == 0 {
		return analysis
	}

	strengths := newTally()
	specializations := newTally()
	var strengthItems, weaknessItems int

	for _, r := range records {
		items := SplitList(r.Strengths)
		strengthItems += len(items)
		strengths.add(items...)

		weaknessItems += len(SplitList(r.Weaknesses))
		specializations.add(SplitList(r.Specialization)...)

		if strings.TrimSpace(r.MarketPosition) != "" {
			analysis.MarketPositionDistribution[r.MarketPosition]++
		}
	}

	n := float64(len(records))
	analysis.AvgStrengthsPerCompetitor = float64(strengthItems) / n
	analysis.AvgWeaknessesPerCompetitor = float64(weaknessItems) / n
	analysis.TopStrengths = strengths.top(TopStrengthsLimit)
	analysis.SpecializationFrequency = specializations.top(0)
	return analysis
}

// SplitList splits a comma-separated cell into trimmed, non-empty items.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// tally counts items and remembers the order they were first seen in.
type tally struct {
	index  map[string]int
	counts []domain.TokenCount
}

func newTally() *tally {
	return &tally{index: make(map[string]int)}
}

func (t *tally) add(items ...string) {
	for _, item := range items {
		if i, ok := t.index[item]; ok {
			t.counts[i].Count++
			continue
		}
		t.index[item] = len(t.counts)
		t.counts = append(t.counts, domain.TokenCount{Text: item, Count: 1})
	}
}

// top returns the most frequent items, ties in first-seen order. A limit
// of zero returns every item.
func (t *tally) top(limit int) []domain.TokenCount {
	out := make([]domain.TokenCount, len(t.counts))
	copy(out, t.counts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
