package rfm

import (
	"fmt"
	"testing"

	"minimart/model"

	"github.com/stretchr/testify/assert"
)

func rows(n int, build func(i int) model.RFMRow) []model.RFMRow {
	out := make([]model.RFMRow, n)
	for i := range out {
		out[i] = build(i)
	}
	return out
}

func TestScoreEmptyInput(t *testing.T) {
	assert.Nil(t, Score(nil, model.DefaultSegmentRules()))
}

func TestScoreRecencyInverted(t *testing.T) {
	// Eight customers with spread recencies: the most recent buyer gets the
	// top score, the stalest the bottom one.
	input := rows(8, func(i int) model.RFMRow {
		return model.RFMRow{
			CustomerID: fmt.Sprintf("C%d", i),
			Recency:    (i + 1) * 10,
			Frequency:  i + 1,
			Monetary:   float64((i + 1) * 100),
		}
	})
	scored := Score(input, model.DefaultSegmentRules())

	byID := map[string]model.ScoredRFM{}
	for _, s := range scored {
		byID[s.CustomerID] = s
	}
	assert.Equal(t, 4, byID["C0"].RScore, "minimum recency scores highest")
	assert.Equal(t, 1, byID["C7"].RScore, "maximum recency scores lowest")
	assert.Equal(t, 1, byID["C0"].FScore)
	assert.Equal(t, 4, byID["C7"].FScore)
	assert.Equal(t, 1, byID["C0"].MScore)
	assert.Equal(t, 4, byID["C7"].MScore)
}

func TestScoreTiedFrequenciesStillFourBuckets(t *testing.T) {
	// Every customer has Frequency 1. Rank-based tie-breaking must still
	// spread them over four buckets instead of faulting on duplicate edges.
	input := rows(8, func(i int) model.RFMRow {
		return model.RFMRow{
			CustomerID: fmt.Sprintf("C%d", i),
			Recency:    i + 1,
			Frequency:  1,
			Monetary:   100,
		}
	})
	scored := Score(input, model.DefaultSegmentRules())

	seen := map[int]int{}
	for _, s := range scored {
		seen[s.FScore]++
	}
	assert.Equal(t, map[int]int{1: 2, 2: 2, 3: 2, 4: 2}, seen)
}

func TestScoreDegenerateRecencyCollapses(t *testing.T) {
	input := rows(6, func(i int) model.RFMRow {
		return model.RFMRow{CustomerID: fmt.Sprintf("C%d", i), Recency: 5, Frequency: i + 1, Monetary: float64(i)}
	})
	scored := Score(input, model.DefaultSegmentRules())

	for _, s := range scored {
		assert.Equal(t, 1, s.RScore, "constant recency collapses to a single bucket")
	}
}

func TestScoreCompositeInRange(t *testing.T) {
	input := rows(12, func(i int) model.RFMRow {
		return model.RFMRow{
			CustomerID: fmt.Sprintf("C%d", i),
			Recency:    i * 3,
			Frequency:  i % 5,
			Monetary:   float64(i * i),
		}
	})
	for _, s := range Score(input, model.DefaultSegmentRules()) {
		assert.GreaterOrEqual(t, s.Score, 1.0)
		assert.LessOrEqual(t, s.Score, 4.0)
		assert.NotEmpty(t, s.Segment)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	rules := model.DefaultSegmentRules()
	cases := []struct {
		score float64
		want  string
	}{
		{3.6, "Campeones"},
		{3.5, "Campeones"},
		{3.49, "Leales"},
		{3.0, "Leales"},
		{2.5, "Potenciales"},
		{2.0, "En Riesgo"},
		{1.99, "Inactivos"},
		{1.0, "Inactivos"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.score, rules), "score %.2f", tc.score)
	}
}

func TestClassifyCustomRules(t *testing.T) {
	rules := []model.SegmentRule{
		{Min: 3.0, Name: "Alto"},
		{Min: 0, Name: "Bajo"},
	}
	assert.Equal(t, "Alto", Classify(3.2, rules))
	assert.Equal(t, "Bajo", Classify(2.9, rules))
}

func TestSummarize(t *testing.T) {
	input := rows(8, func(i int) model.RFMRow {
		return model.RFMRow{
			CustomerID: fmt.Sprintf("C%d", i),
			Recency:    (i + 1) * 10,
			Frequency:  i + 1,
			Monetary:   float64((i + 1) * 100),
		}
	})
	rules := model.DefaultSegmentRules()
	summaries := Summarize(Score(input, rules), rules)

	assert.NotEmpty(t, summaries)
	var total int
	var share float64
	for _, s := range summaries {
		total += s.Customers
		share += s.Share
		assert.Greater(t, s.Customers, 0)
	}
	assert.Equal(t, len(input), total)
	assert.InDelta(t, 100.0, share, 1e-9)
}

func TestTopCustomers(t *testing.T) {
	scored := []model.ScoredRFM{
		{RFMRow: model.RFMRow{CustomerID: "C1", Monetary: 50}},
		{RFMRow: model.RFMRow{CustomerID: "C2", Monetary: 200}},
		{RFMRow: model.RFMRow{CustomerID: "C3", Monetary: 120}},
	}
	top := TopCustomers(scored, 2)
	assert.Len(t, top, 2)
	assert.Equal(t, "C2", top[0].CustomerID)
	assert.Equal(t, "C3", top[1].CustomerID)

	// Input order untouched.
	assert.Equal(t, "C1", scored[0].CustomerID)
}

func TestQuartileBucketsSmallInputs(t *testing.T) {
	buckets, count := quartileBuckets([]float64{42})
	assert.Equal(t, []int{1}, buckets)
	assert.Equal(t, 1, count)

	// Two distinct values still interpolate three interior edges, so the
	// extremes land in the outermost buckets.
	buckets, count = quartileBuckets([]float64{1, 2})
	assert.Equal(t, 4, count)
	assert.Equal(t, []int{1, 4}, buckets)
}
