package repositories

import (
	"context"

	"barangay-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HouseholdRepository struct {
	DB *pgxpool.Pool
}

func NewHouseholdRepository(db *pgxpool.Pool) *HouseholdRepository {
	return &HouseholdRepository{DB: db}
}

const householdColumns = `id, code, address, head_resident_id, members_count,
	 COALESCE(phone, '') as phone, COALESCE(email, '') as email, created_at, updated_at`

func scanHousehold(row interface{ Scan(...any) error }) (*models.Household, error) {
	var h models.Household
	err := row.Scan(&h.ID, &h.Code, &h.Address, &h.HeadResidentID, &h.MembersCount,
		&h.Phone, &h.Email, &h.CreatedAt, &h.UpdatedAt)
	return &h, err
}

func (r *HouseholdRepository) Get(ctx context.Context, id int) (*models.Household, error) {
	return scanHousehold(r.DB.QueryRow(ctx,
		`SELECT `+householdColumns+` FROM households WHERE id=$1`, id))
}

func (r *HouseholdRepository) GetByCode(ctx context.Context, code string) (*models.Household, error) {
	return scanHousehold(r.DB.QueryRow(ctx,
		`SELECT `+householdColumns+` FROM households WHERE code=$1`, code))
}

func (r *HouseholdRepository) List(ctx context.Context) ([]*models.Household, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+householdColumns+` FROM households ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var households []*models.Household
	for rows.Next() {
		h, err := scanHousehold(rows)
		if err != nil {
			return nil, err
		}
		households = append(households, h)
	}
	return households, rows.Err()
}

// CreateWithMembers inserts a household and assigns its member set in one
// transaction. memberIDs must already include the head resident.
func (r *HouseholdRepository) CreateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO households(code, address, head_resident_id, members_count, phone, email)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		h.Code, h.Address, h.HeadResidentID, len(memberIDs), h.Phone, h.Email,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return err
	}

	for _, id := range memberIDs {
		if _, err := tx.Exec(ctx,
			`UPDATE residents SET household_code=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
			h.Code, id); err != nil {
			return err
		}
	}

	h.MembersCount = len(memberIDs)
	return tx.Commit(ctx)
}

// UpdateWithMembers rewrites a household and reassigns its member set in
// one transaction: residents dropped from the set lose their household
// code, members in the set gain it, and members_count is the set size.
func (r *HouseholdRepository) UpdateWithMembers(ctx context.Context, h *models.Household, memberIDs []int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Detach residents no longer in the member set while the row still
	// carries the pre-update code, so a code change strands nobody
	_, err = tx.Exec(ctx,
		`UPDATE residents SET household_code=NULL, updated_at=CURRENT_TIMESTAMP
		 WHERE household_code=(SELECT code FROM households WHERE id=$1)
		   AND NOT (id = ANY($2))`,
		h.ID, memberIDs)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE households SET code=$1, address=$2, head_resident_id=$3, members_count=$4,
		 phone=$5, email=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		h.Code, h.Address, h.HeadResidentID, len(memberIDs), h.Phone, h.Email, h.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE residents SET household_code=$1, updated_at=CURRENT_TIMESTAMP
		 WHERE id = ANY($2)`,
		h.Code, memberIDs)
	if err != nil {
		return err
	}

	h.MembersCount = len(memberIDs)
	return tx.Commit(ctx)
}

// UpdateMembersCount persists a recounted member total
func (r *HouseholdRepository) UpdateMembersCount(ctx context.Context, id, count int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE households SET members_count=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		count, id)
	return err
}

// Delete removes a household and detaches its members
func (r *HouseholdRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE residents SET household_code=NULL, updated_at=CURRENT_TIMESTAMP
		 WHERE household_code=(SELECT code FROM households WHERE id=$1)`, id)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM households WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *HouseholdRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM households`).Scan(&count)
	return count, err
}
