package services

import (
	"errors"
	"testing"

	"barangay-backend/internal/models"
)

func TestCompletionPercent(t *testing.T) {
	full := &models.User{
		FirstName: "Juan", MiddleName: "Santos", LastName: "Dela Cruz",
		Email: "juan@barangay.gov.ph", Phone: "09171234567",
		Position: "Secretary", Address: "Purok 1", BirthDate: "1990-01-01",
		PhotoURL: "https://cdn/photo.jpg", Bio: "Staff since 2020",
	}

	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{
			name: "empty profile",
			user: &models.User{},
			want: 0,
		},
		{
			name: "everything filled is exactly 100",
			user: full,
			want: 100,
		},
		{
			name: "core only",
			user: &models.User{FirstName: "Juan", LastName: "Dela Cruz", Email: "j@x.ph", Phone: "09171234567"},
			want: 50,
		},
		{
			name: "one additional field missing stays below 100",
			user: &models.User{
				FirstName: "Juan", MiddleName: "Santos", LastName: "Dela Cruz",
				Email: "juan@barangay.gov.ph", Phone: "09171234567",
				Position: "Secretary", Address: "Purok 1", BirthDate: "1990-01-01",
				PhotoURL: "https://cdn/photo.jpg",
			},
			want: 95,
		},
		{
			name: "whitespace does not count as filled",
			user: &models.User{FirstName: "  ", LastName: "\t"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionPercent(tt.user); got != tt.want {
				t.Errorf("CompletionPercent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionPercentMonotone(t *testing.T) {
	u := &models.User{}
	prev := CompletionPercent(u)

	fills := []func(){
		func() { u.FirstName = "Juan" },
		func() { u.LastName = "Dela Cruz" },
		func() { u.Email = "j@x.ph" },
		func() { u.Phone = "09171234567" },
		func() { u.Position = "Secretary" },
		func() { u.Address = "Purok 1" },
		func() { u.BirthDate = "1990-01-01" },
		func() { u.MiddleName = "Santos" },
		func() { u.PhotoURL = "p.jpg" },
		func() { u.Bio = "bio" },
	}
	for i, fill := range fills {
		fill()
		got := CompletionPercent(u)
		if got < prev {
			t.Errorf("step %d: completion dropped from %d to %d", i, prev, got)
		}
		prev = got
	}
	if prev != 100 {
		t.Errorf("final completion = %d, want 100", prev)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09171234567", "09171234567", false},
		{"+639171234567", "09171234567", false},
		{"639171234567", "09171234567", false},
		{"9171234567", "09171234567", false},
		{"0917 123 4567", "09171234567", false},
		{"0917-123-4567", "09171234567", false},
		{"08171234567", "", true},  // not a mobile prefix
		{"091712345", "", true},    // too short
		{"091712345678", "", true}, // too long
		{"text", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPhone) {
					t.Errorf("NormalizePhone(%q) err = %v, want ErrInvalidPhone", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhone(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
