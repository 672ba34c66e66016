package repositories

import (
	"context"

	"famwealth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvestmentRepository interface {
	List(ctx context.Context, userID string) ([]models.Investment, error)
	Get(ctx context.Context, userID, id string) (*models.Investment, error)
	Create(ctx context.Context, i *models.Investment) error
	Update(ctx context.Context, i *models.Investment) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByMember(ctx context.Context, userID, memberID string) (int64, error)
}

type investmentRepo struct {
	db *pgxpool.Pool
}

func NewInvestmentRepository(db *pgxpool.Pool) InvestmentRepository {
	return &investmentRepo{db: db}
}

const investmentColumns = `id, user_id, member_id, investment_type, name, invested_amount, current_value,
	maturity_date, premium_due_date, comments, created_at, updated_at`

func (r *investmentRepo) List(ctx context.Context, userID string) ([]models.Investment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Investment])
}

func (r *investmentRepo) Get(ctx context.Context, userID, id string) (*models.Investment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return nil, err
	}
	i, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Investment])
	if err != nil {
		return nil, notFoundOnNoRows(err)
	}
	return i, nil
}

func (r *investmentRepo) Create(ctx context.Context, i *models.Investment) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO investments (user_id, member_id, investment_type, name, invested_amount, current_value,
			maturity_date, premium_due_date, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		i.UserID, i.MemberID, i.InvestmentType, i.Name, i.InvestedAmount, i.CurrentValue,
		i.MaturityDate, i.PremiumDueDate, i.Comments,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
}

func (r *investmentRepo) Update(ctx context.Context, i *models.Investment) error {
	err := r.db.QueryRow(ctx, `
		UPDATE investments
		SET member_id = $3, investment_type = $4, name = $5, invested_amount = $6, current_value = $7,
			maturity_date = $8, premium_due_date = $9, comments = $10, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING created_at, updated_at`,
		i.UserID, i.ID, i.MemberID, i.InvestmentType, i.Name, i.InvestedAmount, i.CurrentValue,
		i.MaturityDate, i.PremiumDueDate, i.Comments,
	).Scan(&i.CreatedAt, &i.UpdatedAt)
	return notFoundOnNoRows(err)
}

func (r *investmentRepo) Delete(ctx context.Context, userID, id string) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM investments WHERE user_id = $1 AND id = $2`, userID, id))
}

func (r *investmentRepo) DeleteByMember(ctx context.Context, userID, memberID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM investments WHERE user_id = $1 AND member_id = $2`, userID, memberID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
