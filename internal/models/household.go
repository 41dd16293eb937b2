package models

import "time"

type Household struct {
	ID             int       `json:"id"`
	Code           string    `json:"code"` // human-readable, e.g. HH-001
	Address        string    `json:"address"`
	HeadResidentID *int      `json:"head_resident_id,omitempty"`
	MembersCount   int       `json:"members_count"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HouseholdDetail is a household with its resolved member list,
// deduplicated and ordered with the head resident first.
type HouseholdDetail struct {
	Household *Household  `json:"household"`
	Members   []*Resident `json:"members"`
}

// SaveHouseholdRequest is the body for creating or updating a household.
// MembersCount is accepted for wire compatibility with older clients but
// is always recomputed from the final member set before saving.
type SaveHouseholdRequest struct {
	Code           string `json:"code"`
	Address        string `json:"address"`
	HeadResidentID int    `json:"head_resident_id"`
	MemberIDs      []int  `json:"member_ids"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	MembersCount   int    `json:"members_count"`
}
