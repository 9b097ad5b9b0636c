package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rekamjejak/backend/domain"
	"github.com/rekamjejak/backend/pkg/stats"
	"github.com/rekamjejak/backend/repository"
)

// Dashboard range names and their window lengths in days.
const (
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"

	weeklyDays  = 7
	monthlyDays = 30
)

// csvHeader matches the activity columns as persisted.
var csvHeader = []string{"id", "username", "tanggal", "kategori", "deskripsi", "durasi"}

// UseCase derives the summary, dashboard, and export views from one
// owner's fetched activities. All aggregation happens in memory via
// pkg/stats; nothing here writes to storage.
type UseCase struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
}

func New(activities repository.ActivityRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		activities: activities,
		logger:     logger,
	}
}

// Summary is the "Ringkasan" view: every record plus the grouped totals.
type Summary struct {
	Activities   []domain.Activity `json:"activities"`
	TotalMinutes int               `json:"total_minutes"`
	ByCategory   map[string]int    `json:"by_category"`
}

func (uc *UseCase) Summary(ctx context.Context, owner string) (*Summary, error) {
	activities, err := uc.activities.ListByOwner(ctx, repository.ActivityFilter{Username: owner})
	if err != nil {
		return nil, err
	}
	return &Summary{
		Activities:   activities,
		TotalMinutes: stats.TotalDuration(activities),
		ByCategory:   stats.GroupByCategory(activities),
	}, nil
}

// CategoryTrend is one category's daily series with its fitted line.
// Categories with fewer than two distinct days carry no fit.
type CategoryTrend struct {
	Category  string             `json:"kategori"`
	Points    []stats.DailyTotal `json:"points"`
	Slope     float64            `json:"slope"`
	Intercept float64            `json:"intercept"`
	HasTrend  bool               `json:"has_trend"`
}

// Dashboard is the windowed statistics view: the date-by-category pivot
// feeding area/bar charts plus a trendline per category.
type Dashboard struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Pivot     []stats.PivotRow `json:"pivot"`
	Trends    []CategoryTrend  `json:"trends"`
}

// Dashboard builds the view for the named range ("weekly" or "monthly"),
// a window ending today.
func (uc *UseCase) Dashboard(ctx context.Context, owner, rangeName string) (*Dashboard, error) {
	days := weeklyDays
	switch rangeName {
	case RangeWeekly, "":
	case RangeMonthly:
		days = monthlyDays
	default:
		return nil, domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unknown range %q", rangeName))
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))
	startDate := start.Format(domain.DateFormat)
	endDate := end.Format(domain.DateFormat)

	activities, err := uc.activities.ListByOwner(ctx, repository.ActivityFilter{
		Username:  owner,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, err
	}

	windowed := stats.Window(activities, startDate, endDate)

	categories := make([]string, 0)
	for category := range stats.GroupByCategory(windowed) {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	trends := make([]CategoryTrend, 0, len(categories))
	for _, category := range categories {
		trends = append(trends, buildTrend(category, windowed))
	}

	return &Dashboard{
		StartDate: startDate,
		EndDate:   endDate,
		Pivot:     stats.DailyPivot(windowed),
		Trends:    trends,
	}, nil
}

func buildTrend(category string, activities []domain.Activity) CategoryTrend {
	points := stats.DailyTotals(activities, category)
	trend := CategoryTrend{Category: category, Points: points}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Minutes)
	}

	slope, intercept, err := stats.LinearTrend(values)
	if err != nil {
		// Below two points: report the series without a fit.
		return trend
	}

	trend.Slope = slope
	trend.Intercept = intercept
	trend.HasTrend = true
	return trend
}

// Export is a rendered CSV download.
type Export struct {
	Filename string
	Data     []byte
}

// ExportCSV serializes the owner's full activity set, one row per record
// in fetch order, UTF-8, comma-delimited with a header row. The id column
// is included so exported rows stay addressable; the file mirrors the
// persisted layout, not just the user-entered fields.
func (uc *UseCase) ExportCSV(ctx context.Context, owner string) (*Export, error) {
	activities, err := uc.activities.ListByOwner(ctx, repository.ActivityFilter{Username: owner})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, a := range activities {
		record := []string{
			strconv.FormatInt(a.ID, 10),
			a.Username,
			a.Date,
			a.Category,
			a.Description,
			strconv.Itoa(a.DurationMinutes),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	uc.logger.Info("csv export generated",
		zap.String("username", owner),
		zap.Int("rows", len(activities)),
	)

	return &Export{
		Filename: fmt.Sprintf("%s_aktivitas.csv", owner),
		Data:     buf.Bytes(),
	}, nil
}
