package repositories

import (
	"context"

	"barangay-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ResidentRepository struct {
	DB *pgxpool.Pool
}

func NewResidentRepository(db *pgxpool.Pool) *ResidentRepository {
	return &ResidentRepository{DB: db}
}

const residentColumns = `id, first_name, COALESCE(middle_name, '') as middle_name, last_name,
	 COALESCE(suffix, '') as suffix, age, sex, civil_status,
	 COALESCE(phone, '') as phone, COALESCE(email, '') as email,
	 COALESCE(household_code, '') as household_code,
	 COALESCE(update_status, '') as update_status, for_review, created_at, updated_at`

func scanResident(row interface{ Scan(...any) error }) (*models.Resident, error) {
	var res models.Resident
	err := row.Scan(&res.ID, &res.FirstName, &res.MiddleName, &res.LastName,
		&res.Suffix, &res.Age, &res.Sex, &res.CivilStatus,
		&res.Phone, &res.Email, &res.HouseholdCode,
		&res.UpdateStatus, &res.ForReview, &res.CreatedAt, &res.UpdatedAt)
	return &res, err
}

func (r *ResidentRepository) Create(ctx context.Context, res *models.Resident) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO residents(first_name, middle_name, last_name, suffix, age, sex, civil_status, phone, email)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at, updated_at`,
		res.FirstName, res.MiddleName, res.LastName, res.Suffix,
		res.Age, res.Sex, res.CivilStatus, res.Phone, res.Email,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (r *ResidentRepository) Get(ctx context.Context, id int) (*models.Resident, error) {
	return scanResident(r.DB.QueryRow(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE id=$1`, id))
}

func (r *ResidentRepository) List(ctx context.Context) ([]*models.Resident, error) {
	return r.queryMany(ctx,
		`SELECT `+residentColumns+` FROM residents ORDER BY last_name ASC, first_name ASC`)
}

// ListByHouseholdCode returns all residents assigned to a household code
func (r *ResidentRepository) ListByHouseholdCode(ctx context.Context, code string) ([]*models.Resident, error) {
	return r.queryMany(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE household_code=$1 ORDER BY id ASC`, code)
}

func (r *ResidentRepository) queryMany(ctx context.Context, sql string, args ...any) ([]*models.Resident, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var residents []*models.Resident
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, err
		}
		residents = append(residents, res)
	}
	return residents, rows.Err()
}

func (r *ResidentRepository) Update(ctx context.Context, res *models.Resident) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE residents SET first_name=$1, middle_name=$2, last_name=$3, suffix=$4,
		 age=$5, sex=$6, civil_status=$7, phone=$8, email=$9, for_review=$10,
		 updated_at=CURRENT_TIMESTAMP
         WHERE id=$11`,
		res.FirstName, res.MiddleName, res.LastName, res.Suffix,
		res.Age, res.Sex, res.CivilStatus, res.Phone, res.Email, res.ForReview, res.ID)
	return err
}

func (r *ResidentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM residents WHERE id=$1`, id)
	return err
}

func (r *ResidentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM residents`).Scan(&count)
	return count, err
}

// CountByHouseholdCode counts residents whose records point at a household
func (r *ResidentRepository) CountByHouseholdCode(ctx context.Context, code string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM residents WHERE household_code=$1`, code).Scan(&count)
	return count, err
}
