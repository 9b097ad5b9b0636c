package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rekamjejak/backend/domain"
)

func sampleActivities() []domain.Activity {
	return []domain.Activity{
		{ID: 1, Username: "izza", Date: "2025-06-01", Category: "Coding", DurationMinutes: 30},
		{ID: 2, Username: "izza", Date: "2025-06-02", Category: "Coding", DurationMinutes: 20},
		{ID: 3, Username: "izza", Date: "2025-06-02", Category: "Belajar", DurationMinutes: 10},
		{ID: 4, Username: "izza", Date: "2025-06-05", Category: "Hiburan", DurationMinutes: 45},
	}
}

func TestTotalDuration(t *testing.T) {
	require.Equal(t, 105, TotalDuration(sampleActivities()))
	require.Equal(t, 0, TotalDuration(nil))
}

func TestGroupByCategory(t *testing.T) {
	activities := []domain.Activity{
		{Category: "Coding", DurationMinutes: 30},
		{Category: "Coding", DurationMinutes: 20},
		{Category: "Belajar", DurationMinutes: 10},
	}

	grouped := GroupByCategory(activities)
	require.Equal(t, map[string]int{"Coding": 50, "Belajar": 10}, grouped)

	// Untouched categories must be absent, not zero.
	_, ok := grouped["Olahraga"]
	require.False(t, ok)
}

func TestWindowInclusiveEndpoints(t *testing.T) {
	var activities []domain.Activity
	days := []string{
		"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05",
		"2025-06-06", "2025-06-07", "2025-06-08", "2025-06-09", "2025-06-10",
	}
	for i, day := range days {
		activities = append(activities, domain.Activity{ID: int64(i + 1), Date: day, Category: "Coding", DurationMinutes: 10})
	}

	windowed := Window(activities, "2025-06-03", "2025-06-07")
	require.Len(t, windowed, 5)
	require.Equal(t, "2025-06-03", windowed[0].Date)
	require.Equal(t, "2025-06-07", windowed[len(windowed)-1].Date)
}

func TestDailyPivotZeroFillsAndOrders(t *testing.T) {
	rows := DailyPivot(sampleActivities())
	require.Len(t, rows, 3)

	require.Equal(t, "2025-06-01", rows[0].Date)
	require.Equal(t, "2025-06-02", rows[1].Date)
	require.Equal(t, "2025-06-05", rows[2].Date)

	// Every row carries every category seen in the input.
	for _, row := range rows {
		require.Len(t, row.Minutes, 3)
	}

	require.Equal(t, 30, rows[0].Minutes["Coding"])
	require.Equal(t, 0, rows[0].Minutes["Belajar"])
	require.Equal(t, 0, rows[0].Minutes["Hiburan"])
	require.Equal(t, 20, rows[1].Minutes["Coding"])
	require.Equal(t, 10, rows[1].Minutes["Belajar"])
	require.Equal(t, 45, rows[2].Minutes["Hiburan"])
}

func TestDailyTotalsSumsPerDate(t *testing.T) {
	activities := []domain.Activity{
		{Date: "2025-06-02", Category: "Coding", DurationMinutes: 20},
		{Date: "2025-06-01", Category: "Coding", DurationMinutes: 30},
		{Date: "2025-06-02", Category: "Coding", DurationMinutes: 15},
		{Date: "2025-06-02", Category: "Belajar", DurationMinutes: 99},
	}

	totals := DailyTotals(activities, "Coding")
	require.Equal(t, []DailyTotal{
		{Date: "2025-06-01", Minutes: 30},
		{Date: "2025-06-02", Minutes: 35},
	}, totals)
}

func TestLinearTrendExactFit(t *testing.T) {
	slope, intercept, err := LinearTrend([]float64{10, 20, 30})
	require.NoError(t, err)
	require.InDelta(t, 10.0, slope, 1e-9)
	require.InDelta(t, 10.0, intercept, 1e-9)
}

func TestLinearTrendInsufficientData(t *testing.T) {
	_, _, err := LinearTrend([]float64{42})
	require.ErrorIs(t, err, domain.ErrInsufficientData)

	_, _, err = LinearTrend(nil)
	require.ErrorIs(t, err, domain.ErrInsufficientData)
}
