package repositories

import (
	"context"
	"time"

	"barangay-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReceiptRepository struct {
	DB *pgxpool.Pool
}

func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{DB: db}
}

func (r *ReceiptRepository) Create(ctx context.Context, rec *models.Receipt) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO receipts(receipt_number, type, amount, resident_id, resident_name, description, issued_at)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at`,
		rec.ReceiptNumber, rec.Type, rec.Amount, rec.ResidentID,
		rec.ResidentName, rec.Description, rec.IssuedAt,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *ReceiptRepository) ListAll(ctx context.Context) ([]*models.Receipt, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, receipt_number, type, amount, resident_id,
		 COALESCE(resident_name, '') as resident_name,
		 COALESCE(description, '') as description, issued_at, created_at
         FROM receipts ORDER BY issued_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		var rec models.Receipt
		err := rows.Scan(&rec.ID, &rec.ReceiptNumber, &rec.Type, &rec.Amount,
			&rec.ResidentID, &rec.ResidentName, &rec.Description,
			&rec.IssuedAt, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, &rec)
	}
	return receipts, rows.Err()
}

// CountForDay counts receipts of a type issued on a given day, used for
// sequential receipt numbering
func (r *ReceiptRepository) CountForDay(ctx context.Context, receiptType string, dayStart, dayEnd time.Time) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM receipts WHERE type=$1 AND issued_at >= $2 AND issued_at <= $3`,
		receiptType, dayStart, dayEnd).Scan(&count)
	return count, err
}

func (r *ReceiptRepository) TotalAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM receipts`).Scan(&total)
	return total, err
}
