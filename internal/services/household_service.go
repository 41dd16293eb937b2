package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"barangay-backend/internal/metrics"
	"barangay-backend/internal/models"
	"barangay-backend/internal/timeutil"
)

var (
	ErrMembershipConflict    = errors.New("resident already belongs to another household")
	ErrHeadIsMemberElsewhere = fmt.Errorf("head %w", ErrMembershipConflict)
)

// Storage seams for the household service. Satisfied by
// repositories.HouseholdRepository and repositories.ResidentRepository.
type householdStore interface {
	Get(ctx context.Context, id int) (*models.Household, error)
	GetByCode(ctx context.Context, code string) (*models.Household, error)
	List(ctx context.Context) ([]*models.Household, error)
	CreateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error
	UpdateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error
	UpdateMembersCount(ctx context.Context, id, count int) error
	Delete(ctx context.Context, id int) error
}

type residentLookup interface {
	Get(ctx context.Context, id int) (*models.Resident, error)
	ListByHouseholdCode(ctx context.Context, code string) ([]*models.Resident, error)
	CountByHouseholdCode(ctx context.Context, code string) (int, error)
}

type HouseholdService struct {
	households householdStore
	residents  residentLookup
}

func NewHouseholdService(households householdStore, residents residentLookup) *HouseholdService {
	return &HouseholdService{households: households, residents: residents}
}

func (s *HouseholdService) List(ctx context.Context) ([]*models.Household, error) {
	return s.households.List(ctx)
}

// Save creates (id == 0) or updates a household. The member set is the
// union of the submitted members and the head, deduplicated, and the
// stored count always reflects that set regardless of what the client
// sent. Membership conflicts are rejected before anything is written.
func (s *HouseholdService) Save(ctx context.Context, id int, req *models.SaveHouseholdRequest) (*models.Household, error) {
	if req.Code == "" || req.Address == "" {
		return nil, errors.New("code and address are required")
	}
	if req.HeadResidentID <= 0 {
		return nil, errors.New("head resident is required")
	}

	memberIDs := FinalizeMembers(req.HeadResidentID, req.MemberIDs)

	var existing *models.Household
	if id != 0 {
		var err error
		existing, err = s.households.Get(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if existing == nil || req.Code != existing.Code {
		if other, err := s.households.GetByCode(ctx, req.Code); err == nil && other != nil {
			if existing == nil || other.ID != existing.ID {
				return nil, fmt.Errorf("household code %s already in use", req.Code)
			}
		}
	}

	// Validate the whole set before touching the database. A member is in
	// conflict only when bound to a different household than the one being
	// saved, identified by its current code so a code change keeps the
	// existing roster valid.
	for _, memberID := range memberIDs {
		res, err := s.residents.Get(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("resident %d not found", memberID)
		}
		if res.HouseholdCode == "" || res.HouseholdCode == req.Code {
			continue
		}
		if existing != nil && res.HouseholdCode == existing.Code {
			continue
		}
		if memberID == req.HeadResidentID {
			return nil, ErrHeadIsMemberElsewhere
		}
		return nil, fmt.Errorf("resident %d bound to household %s: %w", memberID, res.HouseholdCode, ErrMembershipConflict)
	}

	headID := req.HeadResidentID
	h := &models.Household{
		ID:             id,
		Code:           req.Code,
		Address:        req.Address,
		HeadResidentID: &headID,
		Phone:          req.Phone,
		Email:          req.Email,
	}

	if id == 0 {
		if err := s.households.CreateWithMembers(ctx, h, memberIDs); err != nil {
			return nil, err
		}
	} else {
		if err := s.households.UpdateWithMembers(ctx, h, memberIDs); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Detail returns a household with its member roster, head first
func (s *HouseholdService) Detail(ctx context.Context, id int) (*models.HouseholdDetail, error) {
	h, err := s.households.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.residents.ListByHouseholdCode(ctx, h.Code)
	if err != nil {
		return nil, err
	}

	headID := 0
	if h.HeadResidentID != nil {
		headID = *h.HeadResidentID
	}
	return &models.HouseholdDetail{
		Household: h,
		Members:   OrderMembers(members, headID),
	}, nil
}

// SyncMembers recounts a household's members from resident records and
// corrects the stored count when it has drifted
func (s *HouseholdService) SyncMembers(ctx context.Context, id int) (*models.Household, error) {
	h, err := s.households.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	actual, err := s.residents.CountByHouseholdCode(ctx, h.Code)
	if err != nil {
		return nil, err
	}

	if actual != h.MembersCount {
		log.Printf("[HouseholdService] Correcting member count for %s: %d -> %d at %s",
			h.Code, h.MembersCount, actual, timeutil.FormatPHT(timeutil.Now(), timeutil.DateTimeLayout))
		if err := s.households.UpdateMembersCount(ctx, h.ID, actual); err != nil {
			return nil, err
		}
		h.MembersCount = actual
		metrics.HouseholdSyncCorrections.Inc()
	}
	return h, nil
}

func (s *HouseholdService) Delete(ctx context.Context, id int) error {
	if _, err := s.households.Get(ctx, id); err != nil {
		return err
	}
	return s.households.Delete(ctx, id)
}

// FinalizeMembers builds the definitive member set: the head plus every
// submitted member, deduplicated, head first. Non-positive ids are
// dropped.
func FinalizeMembers(headID int, memberIDs []int) []int {
	seen := make(map[int]bool)
	var final []int

	if headID > 0 {
		seen[headID] = true
		final = append(final, headID)
	}
	for _, id := range memberIDs {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		final = append(final, id)
	}
	return final
}

// OrderMembers deduplicates a member list and moves the head resident
// to the front, preserving the relative order of the rest
func OrderMembers(members []*models.Resident, headID int) []*models.Resident {
	seen := make(map[int]bool)
	var head *models.Resident
	var rest []*models.Resident

	for _, m := range members {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		if m.ID == headID {
			head = m
			continue
		}
		rest = append(rest, m)
	}

	if head == nil {
		return rest
	}
	return append([]*models.Resident{head}, rest...)
}
