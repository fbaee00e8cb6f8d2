package rfm

import (
	"math"

	"minimart/model"
)

// CorrelationMatrix is the pairwise Pearson correlation of the three RFM
// metrics, in label order.
type CorrelationMatrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// Correlation computes the matrix over the given rows. With fewer than two
// rows, or a constant column, the affected coefficients are 0 so the result
// stays JSON-encodable.
func Correlation(rows []model.RFMRow) CorrelationMatrix {
	labels := []string{"Recencia", "Frecuencia", "Monetario"}

	series := make([][]float64, 3)
	for i := range series {
		series[i] = make([]float64, len(rows))
	}
	for i, r := range rows {
		series[0][i] = float64(r.Recency)
		series[1][i] = float64(r.Frequency)
		series[2][i] = r.Monetary
	}

	values := make([][]float64, 3)
	for i := range values {
		values[i] = make([]float64, 3)
		for j := range values[i] {
			values[i][j] = pearson(series[i], series[j])
		}
	}
	return CorrelationMatrix{Labels: labels, Values: values}
}

func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n < 2 {
		return 0
	}

	var meanX, meanY float64
	for i := range x {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
