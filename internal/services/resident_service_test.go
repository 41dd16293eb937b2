package services

import (
	"sort"
	"testing"
	"time"

	"barangay-backend/internal/models"
	"barangay-backend/internal/timeutil"
)

func TestRegistrationSeriesMonthly(t *testing.T) {
	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 10, 0, 0, 0, timeutil.PHT)
	}
	residents := []*models.Resident{
		{ID: 1, CreatedAt: at(2026, 3, 5)},
		{ID: 2, CreatedAt: at(2026, 3, 20)},
		{ID: 3, CreatedAt: at(2026, 1, 2)},
		{ID: 4, CreatedAt: at(2025, 12, 31)},
	}

	series := RegistrationSeries(residents, "monthly")

	if len(series) != 3 {
		t.Fatalf("got %d buckets, want 3", len(series))
	}

	// Ascending by month
	if !sort.SliceIsSorted(series, func(i, j int) bool { return series[i].Month < series[j].Month }) {
		t.Errorf("series not ascending: %+v", series)
	}
	if series[0].Month != "2025-12" || series[0].Count != 1 {
		t.Errorf("first bucket = %+v, want 2025-12 x1", series[0])
	}
	if series[2].Month != "2026-03" || series[2].Count != 2 {
		t.Errorf("last bucket = %+v, want 2026-03 x2", series[2])
	}

	// Counts sum to the roster size
	total := 0
	for _, b := range series {
		total += b.Count
	}
	if total != len(residents) {
		t.Errorf("bucket counts sum to %d, want %d", total, len(residents))
	}
}

func TestRegistrationSeriesDaily(t *testing.T) {
	day := time.Date(2026, 8, 15, 9, 0, 0, 0, timeutil.PHT)
	residents := []*models.Resident{
		{ID: 1, CreatedAt: day},
		{ID: 2, CreatedAt: day.Add(2 * time.Hour)},
		{ID: 3, CreatedAt: day.AddDate(0, 0, 1)},
	}

	series := RegistrationSeries(residents, "daily")
	if len(series) != 2 {
		t.Fatalf("got %d buckets, want 2", len(series))
	}
	if series[0].Month != "2026-08-15" || series[0].Count != 2 {
		t.Errorf("first bucket = %+v, want 2026-08-15 x2", series[0])
	}
}

func TestRegistrationSeriesFallsBackToUpdatedAt(t *testing.T) {
	residents := []*models.Resident{
		{ID: 1, UpdatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, timeutil.PHT)},
	}
	series := RegistrationSeries(residents, "monthly")
	if len(series) != 1 || series[0].Month != "2026-05" {
		t.Errorf("series = %+v, want single 2026-05 bucket", series)
	}
}

func TestRegistrationSeriesEmpty(t *testing.T) {
	if series := RegistrationSeries(nil, "monthly"); len(series) != 0 {
		t.Errorf("expected empty series, got %+v", series)
	}
}
