package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"barangay-backend/internal/models"
)

type stubResidents struct {
	byID map[int]*models.Resident
}

func (s *stubResidents) Get(ctx context.Context, id int) (*models.Resident, error) {
	if r, ok := s.byID[id]; ok {
		return r, nil
	}
	return nil, errors.New("no rows in result set")
}

func (s *stubResidents) ListByHouseholdCode(ctx context.Context, code string) ([]*models.Resident, error) {
	return nil, nil
}

func (s *stubResidents) CountByHouseholdCode(ctx context.Context, code string) (int, error) {
	return 0, nil
}

// stubHouseholds records every write so tests can assert nothing was
// persisted on a rejected save
type stubHouseholds struct {
	byID   map[int]*models.Household
	byCode map[string]*models.Household
	writes int
}

func (s *stubHouseholds) Get(ctx context.Context, id int) (*models.Household, error) {
	if h, ok := s.byID[id]; ok {
		return h, nil
	}
	return nil, errors.New("no rows in result set")
}

func (s *stubHouseholds) GetByCode(ctx context.Context, code string) (*models.Household, error) {
	if h, ok := s.byCode[code]; ok {
		return h, nil
	}
	return nil, errors.New("no rows in result set")
}

func (s *stubHouseholds) List(ctx context.Context) ([]*models.Household, error) {
	return nil, nil
}

func (s *stubHouseholds) CreateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error {
	s.writes++
	h.MembersCount = len(memberIDs)
	return nil
}

func (s *stubHouseholds) UpdateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error {
	s.writes++
	h.MembersCount = len(memberIDs)
	return nil
}

func (s *stubHouseholds) UpdateMembersCount(ctx context.Context, id, count int) error {
	s.writes++
	return nil
}

func (s *stubHouseholds) Delete(ctx context.Context, id int) error {
	s.writes++
	return nil
}

func TestSaveRejectsHeadInAnotherHousehold(t *testing.T) {
	households := &stubHouseholds{}
	residents := &stubResidents{byID: map[int]*models.Resident{
		4: {ID: 4, FirstName: "Rosa", LastName: "Dela Cruz", HouseholdCode: "HH-002"},
	}}
	svc := NewHouseholdService(households, residents)

	_, err := svc.Save(context.Background(), 0, &models.SaveHouseholdRequest{
		Code:           "HH-001",
		Address:        "Purok 1",
		HeadResidentID: 4,
	})

	if !errors.Is(err, ErrHeadIsMemberElsewhere) {
		t.Fatalf("Save() error = %v, want ErrHeadIsMemberElsewhere", err)
	}
	if households.writes != 0 {
		t.Errorf("rejected save wrote %d times, want 0", households.writes)
	}
}

func TestSaveRejectsMemberInAnotherHousehold(t *testing.T) {
	households := &stubHouseholds{}
	residents := &stubResidents{byID: map[int]*models.Resident{
		1: {ID: 1},
		2: {ID: 2, HouseholdCode: "HH-009"},
	}}
	svc := NewHouseholdService(households, residents)

	_, err := svc.Save(context.Background(), 0, &models.SaveHouseholdRequest{
		Code:           "HH-001",
		Address:        "Purok 1",
		HeadResidentID: 1,
		MemberIDs:      []int{2},
	})

	if !errors.Is(err, ErrMembershipConflict) {
		t.Fatalf("Save() error = %v, want ErrMembershipConflict", err)
	}
	if errors.Is(err, ErrHeadIsMemberElsewhere) {
		t.Errorf("member conflict reported as head conflict: %v", err)
	}
	if households.writes != 0 {
		t.Errorf("rejected save wrote %d times, want 0", households.writes)
	}
}

func TestSaveKeepsMembersOnCodeChange(t *testing.T) {
	// Editing a household to a new code must not treat members bound to
	// its current code as belonging elsewhere
	households := &stubHouseholds{byID: map[int]*models.Household{
		5: {ID: 5, Code: "HH-001", Address: "Purok 1"},
	}}
	residents := &stubResidents{byID: map[int]*models.Resident{
		1: {ID: 1, HouseholdCode: "HH-001"},
		2: {ID: 2, HouseholdCode: "HH-001"},
	}}
	svc := NewHouseholdService(households, residents)

	h, err := svc.Save(context.Background(), 5, &models.SaveHouseholdRequest{
		Code:           "HH-001A",
		Address:        "Purok 1",
		HeadResidentID: 1,
		MemberIDs:      []int{2},
	})

	if err != nil {
		t.Fatalf("Save() error = %v, want nil", err)
	}
	if h.Code != "HH-001A" {
		t.Errorf("saved code = %s, want HH-001A", h.Code)
	}
	if h.MembersCount != 2 {
		t.Errorf("members count = %d, want 2", h.MembersCount)
	}
	if households.writes != 1 {
		t.Errorf("got %d writes, want 1", households.writes)
	}
}

func TestSaveRejectsCodeTakenByOtherHousehold(t *testing.T) {
	households := &stubHouseholds{
		byID: map[int]*models.Household{
			5: {ID: 5, Code: "HH-001", Address: "Purok 1"},
		},
		byCode: map[string]*models.Household{
			"HH-002": {ID: 9, Code: "HH-002", Address: "Purok 2"},
		},
	}
	residents := &stubResidents{byID: map[int]*models.Resident{
		1: {ID: 1, HouseholdCode: "HH-001"},
	}}
	svc := NewHouseholdService(households, residents)

	_, err := svc.Save(context.Background(), 5, &models.SaveHouseholdRequest{
		Code:           "HH-002",
		Address:        "Purok 1",
		HeadResidentID: 1,
	})

	if err == nil {
		t.Fatal("Save() accepted a code already used by another household")
	}
	if households.writes != 0 {
		t.Errorf("rejected save wrote %d times, want 0", households.writes)
	}
}

func TestFinalizeMembers(t *testing.T) {
	tests := []struct {
		name      string
		headID    int
		memberIDs []int
		want      []int
	}{
		{
			name:      "head added to members",
			headID:    1,
			memberIDs: []int{2, 3},
			want:      []int{1, 2, 3},
		},
		{
			name:      "head already in members not duplicated",
			headID:    2,
			memberIDs: []int{2, 3},
			want:      []int{2, 3},
		},
		{
			name:      "duplicate members collapsed",
			headID:    1,
			memberIDs: []int{2, 2, 3, 3, 3},
			want:      []int{1, 2, 3},
		},
		{
			name:      "head only",
			headID:    5,
			memberIDs: nil,
			want:      []int{5},
		},
		{
			name:      "invalid ids dropped",
			headID:    1,
			memberIDs: []int{0, -4, 2},
			want:      []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalizeMembers(tt.headID, tt.memberIDs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FinalizeMembers() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinalizeMembersCountIgnoresClientValue(t *testing.T) {
	// The stored count is always the size of the final set, no matter
	// what the request claimed
	req := &models.SaveHouseholdRequest{
		HeadResidentID: 1,
		MemberIDs:      []int{1, 2, 2, 3},
		MembersCount:   99,
	}
	final := FinalizeMembers(req.HeadResidentID, req.MemberIDs)
	if len(final) != 3 {
		t.Errorf("final set size = %d, want 3 (client count %d must be ignored)", len(final), req.MembersCount)
	}
}

func TestOrderMembers(t *testing.T) {
	r := func(id int) *models.Resident { return &models.Resident{ID: id} }

	tests := []struct {
		name    string
		members []*models.Resident
		headID  int
		wantIDs []int
	}{
		{
			name:    "head moved to front",
			members: []*models.Resident{r(2), r(3), r(1)},
			headID:  1,
			wantIDs: []int{1, 2, 3},
		},
		{
			name:    "duplicates removed",
			members: []*models.Resident{r(2), r(2), r(1), r(3)},
			headID:  1,
			wantIDs: []int{1, 2, 3},
		},
		{
			name:    "head absent keeps order",
			members: []*models.Resident{r(4), r(5)},
			headID:  9,
			wantIDs: []int{4, 5},
		},
		{
			name:    "empty list",
			members: nil,
			headID:  1,
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderMembers(tt.members, tt.headID)
			var gotIDs []int
			for _, m := range got {
				gotIDs = append(gotIDs, m.ID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("OrderMembers() ids = %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}
