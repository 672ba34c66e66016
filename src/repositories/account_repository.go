package repositories

import (
	"context"

	"famwealth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AccountRepository interface {
	List(ctx context.Context, userID string) ([]models.Account, error)
	Create(ctx context.Context, a *models.Account) error
	Update(ctx context.Context, a *models.Account) error
	Delete(ctx context.Context, userID, id string) error
	// DeleteByMember removes accounts the member holds or is nominee of.
	DeleteByMember(ctx context.Context, userID, memberID string) (int64, error)
}

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) List(ctx context.Context, userID string) ([]models.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, account_type, institution, account_number, holder_id, nominee_id, status, comments,
			created_at, updated_at
		FROM accounts WHERE user_id = $1 ORDER BY institution ASC`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
}

func (r *accountRepo) Create(ctx context.Context, a *models.Account) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO accounts (user_id, account_type, institution, account_number, holder_id, nominee_id, status, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		a.UserID, a.AccountType, a.Institution, a.AccountNumber, a.HolderID, a.NomineeID, a.Status, a.Comments,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *accountRepo) Update(ctx context.Context, a *models.Account) error {
	err := r.db.QueryRow(ctx, `
		UPDATE accounts
		SET account_type = $3, institution = $4, account_number = $5, holder_id = $6, nominee_id = $7,
			status = $8, comments = $9, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING created_at, updated_at`,
		a.UserID, a.ID, a.AccountType, a.Institution, a.AccountNumber, a.HolderID, a.NomineeID, a.Status, a.Comments,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return notFoundOnNoRows(err)
}

func (r *accountRepo) Delete(ctx context.Context, userID, id string) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM accounts WHERE user_id = $1 AND id = $2`, userID, id))
}

func (r *accountRepo) DeleteByMember(ctx context.Context, userID, memberID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM accounts WHERE user_id = $1 AND (holder_id = $2 OR nominee_id = $2)`, userID, memberID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
