package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"barangay-backend/internal/models"
	"barangay-backend/internal/timeutil"
)

func TestBuildResidentsCSVEmpty(t *testing.T) {
	_, err := BuildResidentsCSV(nil, time.Now())
	if !errors.Is(err, ErrNoResidents) {
		t.Errorf("expected ErrNoResidents, got %v", err)
	}
}

func TestBuildResidentsCSVHeader(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, timeutil.PHT)
	residents := []*models.Resident{
		{ID: 1, FirstName: "Juan", LastName: "Dela Cruz", UpdatedAt: now.AddDate(0, -1, 0)},
	}

	data, err := BuildResidentsCSV(residents, now)
	if err != nil {
		t.Fatalf("BuildResidentsCSV() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "Resident ID,Name,Status,Verification,Last Modified,For Review" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], "1,Juan Dela Cruz,Active,") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], ",No") {
		t.Errorf("row %q should end with for-review No", lines[1])
	}
}

func TestBuildResidentsCSVQuoting(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, timeutil.PHT)
	residents := []*models.Resident{
		{ID: 2, FirstName: "Maria, Clara", LastName: "Reyes", UpdatedAt: now, ForReview: true},
	}

	data, err := BuildResidentsCSV(residents, now)
	if err != nil {
		t.Fatalf("BuildResidentsCSV() error: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"Maria, Clara Reyes"`) {
		t.Errorf("comma-bearing name not quoted: %q", out)
	}
	if !strings.Contains(out, ",Yes") {
		t.Errorf("for-review flag missing: %q", out)
	}
}

func TestBuildResidentsCSVRowPerResident(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, timeutil.PHT)
	var residents []*models.Resident
	for i := 1; i <= 5; i++ {
		residents = append(residents, &models.Resident{
			ID: i, FirstName: "R", LastName: "Test", UpdatedAt: now,
		})
	}

	data, err := BuildResidentsCSV(residents, now)
	if err != nil {
		t.Fatalf("BuildResidentsCSV() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 6 {
		t.Errorf("got %d lines, want 6 (header + 5 rows)", len(lines))
	}
}
