package services

import (
	"testing"
	"time"

	"barangay-backend/internal/models"
	"barangay-backend/internal/timeutil"
)

func TestBuildSummaryNoReceipts(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, timeutil.PHT)
	summary := BuildSummary(nil, now)

	if summary.TotalCollected != 0 || summary.DocumentTotal != 0 || summary.AssetTotal != 0 {
		t.Errorf("expected zero totals, got %+v", summary)
	}
	if summary.ReceiptCount != 0 {
		t.Errorf("ReceiptCount = %d, want 0", summary.ReceiptCount)
	}
	if summary.AverageAmount != 0 {
		t.Errorf("AverageAmount = %f, want 0", summary.AverageAmount)
	}
	if len(summary.Monthly) != 12 {
		t.Fatalf("Monthly has %d entries, want 12", len(summary.Monthly))
	}
	for _, m := range summary.Monthly {
		if m.Amount != 0 {
			t.Errorf("month %s amount = %f, want 0", m.Month, m.Amount)
		}
	}
	if summary.Monthly[0].Month != "2025-09" {
		t.Errorf("first month = %s, want 2025-09", summary.Monthly[0].Month)
	}
	if summary.Monthly[11].Month != "2026-08" {
		t.Errorf("last month = %s, want 2026-08", summary.Monthly[11].Month)
	}
}

func TestBuildSummaryTotals(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, timeutil.PHT)
	receipts := []*models.Receipt{
		{Type: models.ReceiptTypeDocument, Amount: 100, ResidentName: "Juan Dela Cruz",
			IssuedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, timeutil.PHT)},
		{Type: models.ReceiptTypeDocument, Amount: 50, ResidentName: "Maria Reyes",
			IssuedAt: time.Date(2026, 7, 1, 9, 0, 0, 0, timeutil.PHT)},
		{Type: models.ReceiptTypeAsset, Amount: 250, ResidentName: "Juan Dela Cruz",
			IssuedAt: time.Date(2026, 8, 10, 9, 0, 0, 0, timeutil.PHT)},
	}

	summary := BuildSummary(receipts, now)

	if summary.TotalCollected != 400 {
		t.Errorf("TotalCollected = %f, want 400", summary.TotalCollected)
	}
	if summary.DocumentTotal != 150 {
		t.Errorf("DocumentTotal = %f, want 150", summary.DocumentTotal)
	}
	if summary.AssetTotal != 250 {
		t.Errorf("AssetTotal = %f, want 250", summary.AssetTotal)
	}
	if summary.ReceiptCount != 3 {
		t.Errorf("ReceiptCount = %d, want 3", summary.ReceiptCount)
	}
	if want := 400.0 / 3; summary.AverageAmount != want {
		t.Errorf("AverageAmount = %f, want %f", summary.AverageAmount, want)
	}

	var monthTotal float64
	for _, m := range summary.Monthly {
		monthTotal += m.Amount
		switch m.Month {
		case "2026-08":
			if m.Amount != 350 {
				t.Errorf("2026-08 amount = %f, want 350", m.Amount)
			}
		case "2026-07":
			if m.Amount != 50 {
				t.Errorf("2026-07 amount = %f, want 50", m.Amount)
			}
		}
	}
	if monthTotal != 400 {
		t.Errorf("monthly amounts sum to %f, want 400", monthTotal)
	}

	if len(summary.TopPayers) != 2 {
		t.Fatalf("TopPayers has %d entries, want 2", len(summary.TopPayers))
	}
	if summary.TopPayers[0].ResidentName != "Juan Dela Cruz" || summary.TopPayers[0].Amount != 350 {
		t.Errorf("top payer = %+v, want Juan Dela Cruz with 350", summary.TopPayers[0])
	}
}

func TestReceiptNumber(t *testing.T) {
	issuedAt := time.Date(2026, 8, 31, 14, 30, 0, 0, timeutil.PHT)

	tests := []struct {
		receiptType string
		seq         int
		want        string
	}{
		{models.ReceiptTypeDocument, 1, "DOC-20260831-0001"},
		{models.ReceiptTypeDocument, 42, "DOC-20260831-0042"},
		{models.ReceiptTypeAsset, 3, "AST-20260831-0003"},
	}

	for _, tt := range tests {
		if got := ReceiptNumber(tt.receiptType, issuedAt, tt.seq); got != tt.want {
			t.Errorf("ReceiptNumber(%s, %d) = %q, want %q", tt.receiptType, tt.seq, got, tt.want)
		}
	}
}
