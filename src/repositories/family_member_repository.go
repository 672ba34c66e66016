package repositories

import (
	"context"

	"famwealth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FamilyMemberRepository interface {
	List(ctx context.Context, userID string) ([]models.FamilyMember, error)
	Get(ctx context.Context, userID, id string) (*models.FamilyMember, error)
	Create(ctx context.Context, m *models.FamilyMember) error
	Update(ctx context.Context, m *models.FamilyMember) error
	Delete(ctx context.Context, userID, id string) error
}

type familyMemberRepo struct {
	db *pgxpool.Pool
}

func NewFamilyMemberRepository(db *pgxpool.Pool) FamilyMemberRepository {
	return &familyMemberRepo{db: db}
}

const memberColumns = `id, user_id, name, relationship, is_primary, photo_url, created_at, updated_at`

func (r *familyMemberRepo) List(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+memberColumns+` FROM family_members WHERE user_id = $1 ORDER BY is_primary DESC, created_at ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.FamilyMember])
}

func (r *familyMemberRepo) Get(ctx context.Context, userID, id string) (*models.FamilyMember, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+memberColumns+` FROM family_members WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return nil, err
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.FamilyMember])
	if err != nil {
		return nil, notFoundOnNoRows(err)
	}
	return m, nil
}

func (r *familyMemberRepo) Create(ctx context.Context, m *models.FamilyMember) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO family_members (user_id, name, relationship, is_primary, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		m.UserID, m.Name, m.Relationship, m.IsPrimary, m.PhotoURL,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *familyMemberRepo) Update(ctx context.Context, m *models.FamilyMember) error {
	err := r.db.QueryRow(ctx, `
		UPDATE family_members
		SET name = $3, relationship = $4, is_primary = $5, photo_url = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING created_at, updated_at`,
		m.UserID, m.ID, m.Name, m.Relationship, m.IsPrimary, m.PhotoURL,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	return notFoundOnNoRows(err)
}

func (r *familyMemberRepo) Delete(ctx context.Context, userID, id string) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM family_members WHERE user_id = $1 AND id = $2`, userID, id))
}
