package rfm

import (
	"sort"

	"minimart/model"
)

// Summarize aggregates the scored rows per segment, ordered the way the
// rules are. Segments with no customers are omitted.
func Summarize(scored []model.ScoredRFM, rules []model.SegmentRule) []model.SegmentSummary {
	if len(scored) == 0 {
		return nil
	}

	byName := make(map[string]*model.SegmentSummary, len(rules))
	for _, s := range scored {
		sum, ok := byName[s.Segment]
		if !ok {
			sum = &model.SegmentSummary{Segment: s.Segment}
			byName[s.Segment] = sum
		}
		sum.Customers++
		sum.MeanRecency += float64(s.Recency)
		sum.MeanFrequency += float64(s.Frequency)
		sum.MeanMonetary += s.Monetary
	}

	total := float64(len(scored))
	out := make([]model.SegmentSummary, 0, len(byName))
	for _, rule := range rules {
		sum, ok := byName[rule.Name]
		if !ok {
			continue
		}
		n := float64(sum.Customers)
		sum.Share = n / total * 100
		sum.MeanRecency /= n
		sum.MeanFrequency /= n
		sum.MeanMonetary /= n
		out = append(out, *sum)
		delete(byName, rule.Name)
	}
	return out
}

// TopCustomers returns the n highest-Monetary rows without reordering the
// input.
func TopCustomers(scored []model.ScoredRFM, n int) []model.ScoredRFM {
	if n <= 0 || len(scored) == 0 {
		return nil
	}
	top := append([]model.ScoredRFM(nil), scored...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Monetary > top[j].Monetary })
	if n < len(top) {
		top = top[:n]
	}
	return top
}
