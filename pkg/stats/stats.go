// Package stats holds the pure aggregation helpers behind the summary,
// dashboard, and trend views. Every function operates on an already
// fetched activity slice; none touch storage.
package stats

import (
	"sort"

	"github.com/rekamjejak/backend/domain"
)

// TotalDuration sums duration minutes across all activities.
func TotalDuration(activities []domain.Activity) int {
	total := 0
	for _, a := range activities {
		total += a.DurationMinutes
	}
	return total
}

// GroupByCategory sums duration minutes per category. Categories with no
// activity are absent from the result, not zero.
func GroupByCategory(activities []domain.Activity) map[string]int {
	grouped := make(map[string]int)
	for _, a := range activities {
		grouped[a.Category] += a.DurationMinutes
	}
	return grouped
}

// Window retains activities whose date falls in [start, end], both
// endpoints inclusive. Dates are compared lexicographically, which is
// chronological for domain.DateFormat values.
func Window(activities []domain.Activity, start, end string) []domain.Activity {
	var filtered []domain.Activity
	for _, a := range activities {
		if a.Date >= start && a.Date <= end {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// PivotRow is one date of the date-by-category pivot. Minutes carries an
// entry for every category present anywhere in the input, zero-filled.
type PivotRow struct {
	Date    string         `json:"tanggal"`
	Minutes map[string]int `json:"durasi"`
}

// DailyPivot reshapes activities into rows indexed by date with one column
// per category seen in the input. Rows are ordered by ascending date and
// missing date-category combinations hold 0.
func DailyPivot(activities []domain.Activity) []PivotRow {
	categories := make(map[string]struct{})
	byDate := make(map[string]map[string]int)
	for _, a := range activities {
		categories[a.Category] = struct{}{}
		if byDate[a.Date] == nil {
			byDate[a.Date] = make(map[string]int)
		}
		byDate[a.Date][a.Category] += a.DurationMinutes
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]PivotRow, 0, len(dates))
	for _, date := range dates {
		minutes := make(map[string]int, len(categories))
		for category := range categories {
			minutes[category] = byDate[date][category]
		}
		rows = append(rows, PivotRow{Date: date, Minutes: minutes})
	}
	return rows
}

// DailyTotal is one (date, summed duration) sample of a category's series.
type DailyTotal struct {
	Date    string `json:"tanggal"`
	Minutes int    `json:"durasi"`
}

// DailyTotals sums durations per date for activities of a single category,
// ordered by ascending date. Callers feed the result to LinearTrend.
func DailyTotals(activities []domain.Activity, category string) []DailyTotal {
	byDate := make(map[string]int)
	for _, a := range activities {
		if a.Category == category {
			byDate[a.Date] += a.DurationMinutes
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	totals := make([]DailyTotal, 0, len(dates))
	for _, date := range dates {
		totals = append(totals, DailyTotal{Date: date, Minutes: byDate[date]})
	}
	return totals
}

// LinearTrend fits a least-squares line through y values indexed 0..n-1
// and returns its slope and intercept. Fewer than two points cannot
// determine a line; that case fails with domain.ErrInsufficientData.
func LinearTrend(values []float64) (slope, intercept float64, err error) {
	n := float64(len(values))
	if len(values) < 2 {
		return 0, 0, domain.ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, nil
}
