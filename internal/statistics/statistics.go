package statistics

// HandStatistics aggregates all decisions matching the given signature.
// The second return is false when no record matches.
func HandStatistics(records []Decision, signature string) (HandStats, bool) {
	stats := HandStats{HandSignature: signature}
	for _, d := range records {
		if d.HandSignature != signature {
			continue
		}
		switch d.Verdict {
		case VerdictKeep:
			stats.TimesKept++
		case VerdictMull:
			stats.TimesMulled++
		}
	}
	if stats.TotalDecisions() == 0 {
		return HandStats{}, false
	}
	stats.KeepPercentage = 100 * float64(stats.TimesKept) / float64(stats.TotalDecisions())
	return stats, true
}

// AllHandStatistics returns stats for every distinct signature present in
// records. Order is not significant; callers sort for display.
func AllHandStatistics(records []Decision) []HandStats {
	seen := make(map[string]bool)
	var all []HandStats
	for _, d := range records {
		if seen[d.HandSignature] {
			continue
		}
		seen[d.HandSignature] = true
		if stats, ok := HandStatistics(records, d.HandSignature); ok {
			all = append(all, stats)
		}
	}
	return all
}

// DeckMulliganDistribution groups keep decisions by mulligan depth,
// mapping depth to the number of games kept there. Mull decisions are
// excluded: they do not represent a completed game.
func DeckMulliganDistribution(records []Decision) map[int]int {
	dist := make(map[int]int)
	for _, d := range records {
		if d.Verdict == VerdictKeep {
			dist[d.MulliganCount]++
		}
	}
	return dist
}

// AverageMulliganCount returns the mean mulligan count over keep decisions
// only, i.e. average mulligans per completed game rather than per hand
// seen. Returns 0 when no keep decisions exist.
func AverageMulliganCount(records []Decision) float64 {
	var sum, kept int
	for _, d := range records {
		if d.Verdict == VerdictKeep {
			sum += d.MulliganCount
			kept++
		}
	}
	if kept == 0 {
		return 0
	}
	return float64(sum) / float64(kept)
}

// KeepRateByMulliganDepth answers, for each depth, "of all hands seen at
// this depth, what fraction were kept". A mull at depth d counts as a hand
// seen at d that the player sent back. Depths with no recorded decisions
// are omitted from the map rather than zero-filled.
func KeepRateByMulliganDepth(records []Decision) map[int]float64 {
	keeps := make(map[int]int)
	mulls := make(map[int]int)
	for _, d := range records {
		switch d.Verdict {
		case VerdictKeep:
			keeps[d.MulliganCount]++
		case VerdictMull:
			mulls[d.MulliganCount]++
		}
	}

	rates := make(map[int]float64)
	for depth := range keeps {
		total := keeps[depth] + mulls[depth]
		rates[depth] = 100 * float64(keeps[depth]) / float64(total)
	}
	for depth := range mulls {
		if _, ok := rates[depth]; !ok {
			rates[depth] = 0
		}
	}
	return rates
}
