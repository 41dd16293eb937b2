package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
	"barangay-backend/internal/timeutil"
)

type ResidentService struct {
	residents *repositories.ResidentRepository
}

func NewResidentService(residents *repositories.ResidentRepository) *ResidentService {
	return &ResidentService{residents: residents}
}

// ResidentView decorates a resident with its derived status and display name
type ResidentView struct {
	*models.Resident
	FullName string `json:"full_name"`
	Status   string `json:"status"`
}

// MonthCount is one bucket of the registration analytics series
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM, or YYYY-MM-DD for daily series
	Count int    `json:"count"`
}

// ResidentAnalytics summarizes the resident roster for the dashboard
type ResidentAnalytics struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	ForReview     int            `json:"for_review"`
	Registrations []MonthCount   `json:"registrations"`
}

func (s *ResidentService) Create(ctx context.Context, req *models.CreateResidentRequest) (*models.Resident, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, errors.New("first name and last name are required")
	}
	if req.Age < 0 {
		return nil, errors.New("age cannot be negative")
	}

	phone := req.Phone
	if phone != "" {
		var err error
		phone, err = NormalizePhone(phone)
		if err != nil {
			return nil, err
		}
	}

	res := &models.Resident{
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		Suffix:      req.Suffix,
		Age:         req.Age,
		Sex:         req.Sex,
		CivilStatus: req.CivilStatus,
		Phone:       phone,
		Email:       req.Email,
	}
	if err := s.residents.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResidentService) Get(ctx context.Context, id int) (*ResidentView, error) {
	res, err := s.residents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return viewOf(res, timeutil.Now()), nil
}

// List returns every resident decorated with derived status
func (s *ResidentService) List(ctx context.Context) ([]*ResidentView, error) {
	residents, err := s.residents.List(ctx)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	views := make([]*ResidentView, 0, len(residents))
	for _, res := range residents {
		views = append(views, viewOf(res, now))
	}
	return views, nil
}

func (s *ResidentService) Update(ctx context.Context, id int, req *models.UpdateResidentRequest) (*ResidentView, error) {
	res, err := s.residents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, errors.New("first name and last name are required")
	}

	phone := req.Phone
	if phone != "" {
		phone, err = NormalizePhone(phone)
		if err != nil {
			return nil, err
		}
	}

	res.FirstName = req.FirstName
	res.MiddleName = req.MiddleName
	res.LastName = req.LastName
	res.Suffix = req.Suffix
	res.Age = req.Age
	res.Sex = req.Sex
	res.CivilStatus = req.CivilStatus
	res.Phone = phone
	res.Email = req.Email
	res.ForReview = req.ForReview

	if err := s.residents.Update(ctx, res); err != nil {
		return nil, err
	}
	return viewOf(res, timeutil.Now()), nil
}

func (s *ResidentService) Delete(ctx context.Context, id int) error {
	if _, err := s.residents.Get(ctx, id); err != nil {
		return err
	}
	return s.residents.Delete(ctx, id)
}

// Analytics builds the dashboard roster summary. Period is "monthly"
// (default) or "daily".
func (s *ResidentService) Analytics(ctx context.Context, period string) (*ResidentAnalytics, error) {
	residents, err := s.residents.List(ctx)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	analytics := &ResidentAnalytics{
		Total:         len(residents),
		ByStatus:      make(map[string]int),
		Registrations: RegistrationSeries(residents, period),
	}
	for _, res := range residents {
		analytics.ByStatus[res.Status(now)]++
		if res.ForReview {
			analytics.ForReview++
		}
	}
	return analytics, nil
}

// RegistrationSeries groups residents by registration date, ascending.
// Bucket counts always sum to the roster size. Records without a
// created timestamp fall back to last modification.
func RegistrationSeries(residents []*models.Resident, period string) []MonthCount {
	layout := timeutil.MonthLayout
	if period == "daily" {
		layout = timeutil.DateLayout
	}

	byMonth := make(map[string]int)
	for _, res := range residents {
		registered := res.CreatedAt
		if registered.IsZero() {
			registered = res.UpdatedAt
		}
		byMonth[timeutil.FormatPHT(registered, layout)]++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	series := make([]MonthCount, 0, len(months))
	for _, m := range months {
		series = append(series, MonthCount{Month: m, Count: byMonth[m]})
	}
	return series
}

func viewOf(res *models.Resident, now time.Time) *ResidentView {
	return &ResidentView{
		Resident: res,
		FullName: res.FullName(),
		Status:   res.Status(now),
	}
}
