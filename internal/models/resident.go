package models

import (
	"strings"
	"time"
)

// Resident status values derived from record age
const (
	StatusActive            = "Active"
	StatusOutdated          = "Outdated"
	StatusNeedsVerification = "Needs Verification"
)

type Resident struct {
	ID            int       `json:"id"`
	FirstName     string    `json:"first_name"`
	MiddleName    string    `json:"middle_name"`
	LastName      string    `json:"last_name"`
	Suffix        string    `json:"suffix"`
	Age           int       `json:"age"`
	Sex           string    `json:"sex"`
	CivilStatus   string    `json:"civil_status"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	HouseholdCode string    `json:"household_code"` // empty when not in a household
	UpdateStatus  string    `json:"update_status"`  // explicit override, wins over date-based status
	ForReview     bool      `json:"for_review"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName joins the name parts with single spaces, skipping empty
// segments. A suffix of "none" (any case) is treated as absent.
func (r *Resident) FullName() string {
	suffix := r.Suffix
	if strings.EqualFold(suffix, "none") {
		suffix = ""
	}

	var parts []string
	for _, p := range []string{r.FirstName, r.MiddleName, r.LastName, suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Status classifies the record by age of its last modification.
// An explicit UpdateStatus always wins. Records never modified (zero
// timestamp) need verification.
func (r *Resident) Status(now time.Time) string {
	if r.UpdateStatus != "" {
		return r.UpdateStatus
	}

	lastModified := r.UpdatedAt
	if lastModified.IsZero() {
		lastModified = r.CreatedAt
	}
	if lastModified.IsZero() {
		return StatusNeedsVerification
	}

	switch {
	case lastModified.After(now.AddDate(0, -6, 0)):
		return StatusActive
	case lastModified.After(now.AddDate(0, -12, 0)):
		return StatusOutdated
	default:
		return StatusNeedsVerification
	}
}

// CreateResidentRequest represents the request body for creating a resident
type CreateResidentRequest struct {
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	Suffix      string `json:"suffix"`
	Age         int    `json:"age"`
	Sex         string `json:"sex"`
	CivilStatus string `json:"civil_status"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// UpdateResidentRequest represents the request body for updating a resident
type UpdateResidentRequest struct {
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	Suffix      string `json:"suffix"`
	Age         int    `json:"age"`
	Sex         string `json:"sex"`
	CivilStatus string `json:"civil_status"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ForReview   bool   `json:"for_review"`
}
