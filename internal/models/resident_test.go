package models

import (
	"testing"
	"time"
)

func TestResidentFullName(t *testing.T) {
	tests := []struct {
		name     string
		resident Resident
		want     string
	}{
		{
			name:     "all parts",
			resident: Resident{FirstName: "Juan", MiddleName: "Santos", LastName: "Dela Cruz", Suffix: "Jr."},
			want:     "Juan Santos Dela Cruz Jr.",
		},
		{
			name:     "no middle name",
			resident: Resident{FirstName: "Maria", LastName: "Reyes"},
			want:     "Maria Reyes",
		},
		{
			name:     "suffix none is omitted",
			resident: Resident{FirstName: "Pedro", LastName: "Garcia", Suffix: "none"},
			want:     "Pedro Garcia",
		},
		{
			name:     "suffix NONE uppercase is omitted",
			resident: Resident{FirstName: "Pedro", LastName: "Garcia", Suffix: "NONE"},
			want:     "Pedro Garcia",
		},
		{
			name:     "only first name",
			resident: Resident{FirstName: "Ana"},
			want:     "Ana",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resident.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResidentStatus(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		resident Resident
		want     string
	}{
		{
			name:     "updated last month is active",
			resident: Resident{UpdatedAt: now.AddDate(0, -1, 0)},
			want:     StatusActive,
		},
		{
			name:     "updated just under six months is active",
			resident: Resident{UpdatedAt: now.AddDate(0, -6, 1)},
			want:     StatusActive,
		},
		{
			name:     "updated eight months ago is outdated",
			resident: Resident{UpdatedAt: now.AddDate(0, -8, 0)},
			want:     StatusOutdated,
		},
		{
			name:     "updated two years ago needs verification",
			resident: Resident{UpdatedAt: now.AddDate(-2, 0, 0)},
			want:     StatusNeedsVerification,
		},
		{
			name:     "never modified needs verification",
			resident: Resident{},
			want:     StatusNeedsVerification,
		},
		{
			name:     "explicit override wins over recent update",
			resident: Resident{UpdateStatus: "Archived", UpdatedAt: now.AddDate(0, -1, 0)},
			want:     "Archived",
		},
		{
			name:     "falls back to created time",
			resident: Resident{CreatedAt: now.AddDate(0, -2, 0)},
			want:     StatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resident.Status(now); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}
