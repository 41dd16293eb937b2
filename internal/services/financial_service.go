package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"barangay-backend/internal/cache"
	"barangay-backend/internal/metrics"
	"barangay-backend/internal/models"
	"barangay-backend/internal/repositories"
	"barangay-backend/internal/timeutil"
)

type FinancialService struct {
	receipts *repositories.ReceiptRepository
}

func NewFinancialService(receipts *repositories.ReceiptRepository) *FinancialService {
	return &FinancialService{receipts: receipts}
}

// MonthAmount is one bucket of the monthly collections series
type MonthAmount struct {
	Month  string  `json:"month"` // YYYY-MM
	Amount float64 `json:"amount"`
}

// PayerTotal aggregates collections by paying resident
type PayerTotal struct {
	ResidentName string  `json:"resident_name"`
	Amount       float64 `json:"amount"`
}

// FinancialSummary is the aggregate view of all issued receipts
type FinancialSummary struct {
	TotalCollected float64       `json:"total_collected"`
	DocumentTotal  float64       `json:"document_total"`
	AssetTotal     float64       `json:"asset_total"`
	ReceiptCount   int           `json:"receipt_count"`
	AverageAmount  float64       `json:"average_amount"`
	Monthly        []MonthAmount `json:"monthly"`
	TopPayers      []PayerTotal  `json:"top_payers"`
}

// GenerateReceipt issues a numbered income receipt. Numbers are
// per-type per-day sequential: DOC-20260831-0001.
func (s *FinancialService) GenerateReceipt(ctx context.Context, receiptType string, req *models.GenerateReceiptRequest) (*models.Receipt, error) {
	if receiptType != models.ReceiptTypeDocument && receiptType != models.ReceiptTypeAsset {
		return nil, fmt.Errorf("unknown receipt type %q", receiptType)
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	now := timeutil.Now()
	seq, err := s.receipts.CountForDay(ctx, receiptType,
		timeutil.StartOfDay(now), timeutil.EndOfDay(now))
	if err != nil {
		return nil, err
	}

	rec := &models.Receipt{
		ReceiptNumber: ReceiptNumber(receiptType, now, seq+1),
		Type:          receiptType,
		Amount:        req.Amount,
		ResidentID:    req.ResidentID,
		ResidentName:  req.ResidentName,
		Description:   req.Description,
		IssuedAt:      now,
	}
	if err := s.receipts.Create(ctx, rec); err != nil {
		return nil, err
	}

	metrics.ReceiptsIssuedTotal.WithLabelValues(receiptType).Inc()
	cache.InvalidateFinancialSummary(ctx)
	log.Printf("[FinancialService] Issued receipt %s for %.2f", rec.ReceiptNumber, rec.Amount)
	return rec, nil
}

func (s *FinancialService) ListReceipts(ctx context.Context) ([]*models.Receipt, error) {
	return s.receipts.ListAll(ctx)
}

// GetSummary returns the cached financial summary, recomputing on a miss
func (s *FinancialService) GetSummary(ctx context.Context) (*FinancialSummary, error) {
	if data, ok := cache.GetFinancialSummary(ctx); ok {
		var summary FinancialSummary
		if err := json.Unmarshal(data, &summary); err == nil {
			return &summary, nil
		}
	}

	receipts, err := s.receipts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(receipts, timeutil.Now())
	if data, err := json.Marshal(summary); err == nil {
		cache.SetFinancialSummary(ctx, data)
	}
	return summary, nil
}

// ReceiptNumber formats a receipt number from type, issue date and the
// day's sequence position
func ReceiptNumber(receiptType string, issuedAt time.Time, seq int) string {
	prefix := "DOC"
	if receiptType == models.ReceiptTypeAsset {
		prefix = "AST"
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, timeutil.FormatPHT(issuedAt, "20060102"), seq)
}

// BuildSummary aggregates receipts into totals, a trailing twelve month
// series (zero-filled, oldest first, always twelve buckets) and the top
// five paying residents. With no receipts every total is zero and the
// series still has twelve zero months.
func BuildSummary(receipts []*models.Receipt, now time.Time) *FinancialSummary {
	summary := &FinancialSummary{
		ReceiptCount: len(receipts),
		Monthly:      make([]MonthAmount, 0, 12),
	}

	byMonth := make(map[string]float64)
	byPayer := make(map[string]float64)
	for _, rec := range receipts {
		summary.TotalCollected += rec.Amount
		switch rec.Type {
		case models.ReceiptTypeDocument:
			summary.DocumentTotal += rec.Amount
		case models.ReceiptTypeAsset:
			summary.AssetTotal += rec.Amount
		}
		byMonth[timeutil.FormatPHT(rec.IssuedAt, timeutil.MonthLayout)] += rec.Amount
		if rec.ResidentName != "" {
			byPayer[rec.ResidentName] += rec.Amount
		}
	}

	if len(receipts) > 0 {
		summary.AverageAmount = summary.TotalCollected / float64(len(receipts))
	}

	start := timeutil.StartOfMonth(now).AddDate(0, -11, 0)
	for i := 0; i < 12; i++ {
		month := start.AddDate(0, i, 0).Format(timeutil.MonthLayout)
		summary.Monthly = append(summary.Monthly, MonthAmount{
			Month:  month,
			Amount: byMonth[month],
		})
	}

	payers := make([]PayerTotal, 0, len(byPayer))
	for name, amount := range byPayer {
		payers = append(payers, PayerTotal{ResidentName: name, Amount: amount})
	}
	sort.Slice(payers, func(i, j int) bool {
		if payers[i].Amount != payers[j].Amount {
			return payers[i].Amount > payers[j].Amount
		}
		return payers[i].ResidentName < payers[j].ResidentName
	})
	if len(payers) > 5 {
		payers = payers[:5]
	}
	summary.TopPayers = payers

	return summary
}
