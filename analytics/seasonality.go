package analytics

import (
	"time"

	"minimart/model"
)

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

var monthLabels = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// WeekdayRevenue is one weekday bucket, Monday first.
type WeekdayRevenue struct {
	Weekday string  `json:"weekday"`
	Revenue float64 `json:"revenue"`
}

// RevenueByWeekday sums revenue per day of week, Monday through Sunday.
// Every weekday appears even with zero revenue.
func RevenueByWeekday(records []model.ConsolidatedRecord) []WeekdayRevenue {
	sums := make(map[time.Weekday]float64)
	for i := range records {
		sums[records[i].Date.Weekday()] += records[i].Amount.Or(0)
	}

	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday, time.Sunday}
	out := make([]WeekdayRevenue, 0, len(order))
	for _, wd := range order {
		out = append(out, WeekdayRevenue{Weekday: weekdayLabels[wd], Revenue: sums[wd]})
	}
	return out
}

// MonthRevenue is one calendar-month bucket.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// RevenueByMonth sums revenue per calendar month, January through December,
// omitting months with no rows in the view.
func RevenueByMonth(records []model.ConsolidatedRecord) []MonthRevenue {
	sums := make(map[time.Month]float64)
	for i := range records {
		sums[records[i].Date.Month()] += records[i].Amount.Or(0)
	}

	out := make([]MonthRevenue, 0, len(sums))
	for m := time.January; m <= time.December; m++ {
		if revenue, ok := sums[m]; ok {
			out = append(out, MonthRevenue{Month: monthLabels[m-1], Revenue: revenue})
		}
	}
	return out
}

// MonthDayMatrix is the month-by-day revenue heatmap data: Values[i][d-1] is
// the revenue of day d in Months[i].
type MonthDayMatrix struct {
	Months []string    `json:"months"`
	Days   []int       `json:"days"`
	Values [][]float64 `json:"values"`
}

// RevenueMatrix builds the month × day-of-month matrix over the view, months
// with no rows omitted, days fixed at 1..31.
func RevenueMatrix(records []model.ConsolidatedRecord) MonthDayMatrix {
	sums := make(map[time.Month][31]float64)
	for i := range records {
		r := &records[i]
		row := sums[r.Date.Month()]
		row[r.Date.Day()-1] += r.Amount.Or(0)
		sums[r.Date.Month()] = row
	}

	matrix := MonthDayMatrix{Days: make([]int, 31)}
	for d := range matrix.Days {
		matrix.Days[d] = d + 1
	}
	for m := time.January; m <= time.December; m++ {
		row, ok := sums[m]
		if !ok {
			continue
		}
		matrix.Months = append(matrix.Months, monthLabels[m-1])
		matrix.Values = append(matrix.Values, row[:])
	}
	return matrix
}
