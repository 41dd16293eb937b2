package repositories

import (
	"context"

	"barangay-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DisbursementRepository struct {
	DB *pgxpool.Pool
}

func NewDisbursementRepository(db *pgxpool.Pool) *DisbursementRepository {
	return &DisbursementRepository{DB: db}
}

const disbursementColumns = `id, date, amount, payment_method,
	 COALESCE(remarks, '') as remarks, beneficiary_id,
	 COALESCE(beneficiary_name, '') as beneficiary_name, created_at, updated_at`

func scanDisbursement(row interface{ Scan(...any) error }) (*models.Disbursement, error) {
	var d models.Disbursement
	err := row.Scan(&d.ID, &d.Date, &d.Amount, &d.PaymentMethod,
		&d.Remarks, &d.BeneficiaryID, &d.BeneficiaryName, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *DisbursementRepository) Create(ctx context.Context, d *models.Disbursement) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO disbursements(date, amount, payment_method, remarks, beneficiary_id, beneficiary_name)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		d.Date, d.Amount, d.PaymentMethod, d.Remarks, d.BeneficiaryID, d.BeneficiaryName,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DisbursementRepository) Get(ctx context.Context, id int) (*models.Disbursement, error) {
	return scanDisbursement(r.DB.QueryRow(ctx,
		`SELECT `+disbursementColumns+` FROM disbursements WHERE id=$1`, id))
}

func (r *DisbursementRepository) List(ctx context.Context) ([]*models.Disbursement, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+disbursementColumns+` FROM disbursements ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disbursements []*models.Disbursement
	for rows.Next() {
		d, err := scanDisbursement(rows)
		if err != nil {
			return nil, err
		}
		disbursements = append(disbursements, d)
	}
	return disbursements, rows.Err()
}

func (r *DisbursementRepository) Update(ctx context.Context, d *models.Disbursement) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE disbursements SET date=$1, amount=$2, payment_method=$3, remarks=$4,
		 beneficiary_id=$5, beneficiary_name=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		d.Date, d.Amount, d.PaymentMethod, d.Remarks, d.BeneficiaryID, d.BeneficiaryName, d.ID)
	return err
}

func (r *DisbursementRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM disbursements WHERE id=$1`, id)
	return err
}

func (r *DisbursementRepository) TotalAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM disbursements`).Scan(&total)
	return total, err
}

// ListBeneficiaries returns all beneficiaries with their disbursement totals
func (r *DisbursementRepository) ListBeneficiaries(ctx context.Context) ([]*models.Beneficiary, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT b.id, b.name, COALESCE(b.address, '') as address, COALESCE(b.phone, '') as phone,
		 COALESCE(SUM(d.amount), 0) as total_disbursed, b.created_at
         FROM beneficiaries b
         LEFT JOIN disbursements d ON d.beneficiary_id = b.id
         GROUP BY b.id
         ORDER BY b.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beneficiaries []*models.Beneficiary
	for rows.Next() {
		var b models.Beneficiary
		err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.TotalDisbursed, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		beneficiaries = append(beneficiaries, &b)
	}
	return beneficiaries, rows.Err()
}
