package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"barangay-backend/internal/models"
	"barangay-backend/internal/services"
)

type fakeResidents struct {
	byID map[int]*models.Resident
}

func (f *fakeResidents) Get(ctx context.Context, id int) (*models.Resident, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, errors.New("no rows in result set")
}

func (f *fakeResidents) ListByHouseholdCode(ctx context.Context, code string) ([]*models.Resident, error) {
	return nil, nil
}

func (f *fakeResidents) CountByHouseholdCode(ctx context.Context, code string) (int, error) {
	return 0, nil
}

type fakeHouseholds struct{}

func (f *fakeHouseholds) Get(ctx context.Context, id int) (*models.Household, error) {
	return nil, errors.New("no rows in result set")
}

func (f *fakeHouseholds) GetByCode(ctx context.Context, code string) (*models.Household, error) {
	return nil, errors.New("no rows in result set")
}

func (f *fakeHouseholds) List(ctx context.Context) ([]*models.Household, error) {
	return nil, nil
}

func (f *fakeHouseholds) CreateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error {
	return nil
}

func (f *fakeHouseholds) UpdateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error {
	return nil
}

func (f *fakeHouseholds) UpdateMembersCount(ctx context.Context, id, count int) error {
	return nil
}

func (f *fakeHouseholds) Delete(ctx context.Context, id int) error {
	return nil
}

func TestCreateHouseholdStatusCodes(t *testing.T) {
	residents := &fakeResidents{byID: map[int]*models.Resident{
		4: {ID: 4, HouseholdCode: "HH-002"},
	}}
	svc := services.NewHouseholdService(&fakeHouseholds{}, residents)
	h := NewHouseholdHandler(svc, nil, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "membership conflict is 409",
			body:       `{"code":"HH-001","address":"Purok 1","head_resident_id":4}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "validation failure is 400",
			body:       `{"code":"HH-001","head_resident_id":4}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body is 400",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/households", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
