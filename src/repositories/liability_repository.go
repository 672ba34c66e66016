package repositories

import (
	"context"

	"famwealth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LiabilityRepository interface {
	List(ctx context.Context, userID string) ([]models.Liability, error)
	Create(ctx context.Context, l *models.Liability) error
	Update(ctx context.Context, l *models.Liability) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByMember(ctx context.Context, userID, memberID string) (int64, error)
}

type liabilityRepo struct {
	db *pgxpool.Pool
}

func NewLiabilityRepository(db *pgxpool.Pool) LiabilityRepository {
	return &liabilityRepo{db: db}
}

func (r *liabilityRepo) List(ctx context.Context, userID string) ([]models.Liability, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, member_id, type, lender, outstanding_amount, emi_amount, interest_rate, created_at, updated_at
		FROM liabilities WHERE user_id = $1 ORDER BY outstanding_amount DESC`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Liability])
}

func (r *liabilityRepo) Create(ctx context.Context, l *models.Liability) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO liabilities (user_id, member_id, type, lender, outstanding_amount, emi_amount, interest_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		l.UserID, l.MemberID, l.Type, l.Lender, l.OutstandingAmount, l.EMIAmount, l.InterestRate,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

func (r *liabilityRepo) Update(ctx context.Context, l *models.Liability) error {
	err := r.db.QueryRow(ctx, `
		UPDATE liabilities
		SET member_id = $3, type = $4, lender = $5, outstanding_amount = $6, emi_amount = $7,
			interest_rate = $8, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING created_at, updated_at`,
		l.UserID, l.ID, l.MemberID, l.Type, l.Lender, l.OutstandingAmount, l.EMIAmount, l.InterestRate,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	return notFoundOnNoRows(err)
}

func (r *liabilityRepo) Delete(ctx context.Context, userID, id string) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM liabilities WHERE user_id = $1 AND id = $2`, userID, id))
}

func (r *liabilityRepo) DeleteByMember(ctx context.Context, userID, memberID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM liabilities WHERE user_id = $1 AND member_id = $2`, userID, memberID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
