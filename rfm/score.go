package rfm

import (
	"sort"

	"minimart/model"
)

// Score assigns quartile scores to each RFM row and classifies it against
// the segment rules. Recency is scored inverted on raw values (recent is
// better), Frequency and Monetary are scored on first-method ranks so that
// heavily tied distributions still split into four buckets.
func Score(rows []model.RFMRow, rules []model.SegmentRule) []model.ScoredRFM {
	if len(rows) == 0 {
		return nil
	}

	recency := make([]float64, len(rows))
	frequency := make([]float64, len(rows))
	monetary := make([]float64, len(rows))
	for i, r := range rows {
		recency[i] = float64(r.Recency)
		frequency[i] = float64(r.Frequency)
		monetary[i] = r.Monetary
	}

	rBuckets, rCount := quartileBuckets(recency)
	fBuckets, _ := quartileBuckets(rankFirst(frequency))
	mBuckets, _ := quartileBuckets(rankFirst(monetary))

	scored := make([]model.ScoredRFM, len(rows))
	for i, r := range rows {
		s := model.ScoredRFM{RFMRow: r}
		// Inverted: the lowest-recency bucket gets the highest score.
		s.RScore = rCount + 1 - rBuckets[i]
		s.FScore = fBuckets[i]
		s.MScore = mBuckets[i]
		s.Score = float64(s.RScore+s.FScore+s.MScore) / 3
		s.Segment = Classify(s.Score, rules)
		scored[i] = s
	}
	return scored
}

// Classify walks the rules top-down and returns the first segment whose
// threshold the score meets. Rules are expected ordered by descending Min
// with a zero-threshold catch-all last, as in model.DefaultSegmentRules.
func Classify(score float64, rules []model.SegmentRule) string {
	for _, rule := range rules {
		if score >= rule.Min {
			return rule.Name
		}
	}
	if len(rules) > 0 {
		return rules[len(rules)-1].Name
	}
	return ""
}

// quartileBuckets cuts values into up to 4 groups at the 25/50/75 percentile
// points and returns the 1-based bucket per value plus the bucket count.
// Duplicate cut points collapse to fewer groups instead of faulting.
func quartileBuckets(values []float64) ([]int, int) {
	edges := cutPoints(values, 4)
	buckets := make([]int, len(values))
	for i, v := range values {
		b := 1
		for _, e := range edges {
			if v > e {
				b++
			}
		}
		buckets[i] = b
	}
	return buckets, len(edges) + 1
}

// cutPoints returns the distinct interior quantile edges for a q-way cut,
// using linear interpolation between order statistics.
func cutPoints(values []float64, q int) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	min, max := sorted[0], sorted[len(sorted)-1]
	edges := make([]float64, 0, q-1)
	for i := 1; i < q; i++ {
		e := quantile(sorted, float64(i)/float64(q))
		// Degenerate distributions produce repeated or boundary edges.
		// Dropping them collapses to fewer buckets.
		if e <= min || e >= max {
			continue
		}
		if len(edges) > 0 && e == edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// rankFirst replaces each value with its 1-based rank, ties broken by input
// order. Ranks are all distinct, which keeps the quartile edges well-defined
// even when most values are equal.
func rankFirst(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	for pos, i := range idx {
		ranks[i] = float64(pos + 1)
	}
	return ranks
}
