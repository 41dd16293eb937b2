package services

import (
	"context"
	"errors"
	"fmt"

	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
	"barangay-backend/internal/timeutil"
)

type DisbursementService struct {
	disbursements *repositories.DisbursementRepository
}

func NewDisbursementService(disbursements *repositories.DisbursementRepository) *DisbursementService {
	return &DisbursementService{disbursements: disbursements}
}

func (s *DisbursementService) List(ctx context.Context) ([]*models.Disbursement, error) {
	return s.disbursements.List(ctx)
}

func (s *DisbursementService) Get(ctx context.Context, id int) (*models.Disbursement, error) {
	return s.disbursements.Get(ctx, id)
}

// Save creates (id == 0) or updates a disbursement record
func (s *DisbursementService) Save(ctx context.Context, id int, req *models.SaveDisbursementRequest) (*models.Disbursement, error) {
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if req.PaymentMethod == "" {
		return nil, errors.New("payment method is required")
	}
	if req.BeneficiaryName == "" && req.BeneficiaryID == nil {
		return nil, errors.New("beneficiary is required")
	}

	date, err := timeutil.ParseInPHT(timeutil.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	d := &models.Disbursement{
		ID:              id,
		Date:            date,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		Remarks:         req.Remarks,
		BeneficiaryID:   req.BeneficiaryID,
		BeneficiaryName: req.BeneficiaryName,
	}

	if id == 0 {
		if err := s.disbursements.Create(ctx, d); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.disbursements.Get(ctx, id); err != nil {
			return nil, err
		}
		if err := s.disbursements.Update(ctx, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *DisbursementService) Delete(ctx context.Context, id int) error {
	if _, err := s.disbursements.Get(ctx, id); err != nil {
		return err
	}
	return s.disbursements.Delete(ctx, id)
}

func (s *DisbursementService) ListBeneficiaries(ctx context.Context) ([]*models.Beneficiary, error) {
	return s.disbursements.ListBeneficiaries(ctx)
}
