package reports

import (
	"math"
	"sort"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sortedPositions orders market positions by count, then name.
func sortedPositions(dist map[string]int) []string {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if dist[keys[i]] != dist[keys[j]] {
			return dist[keys[i]] > dist[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
