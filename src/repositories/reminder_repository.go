package repositories

import (
	"context"

	"famwealth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReminderRepository interface {
	List(ctx context.Context, userID string) ([]models.Reminder, error)
	Create(ctx context.Context, r *models.Reminder) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByMember(ctx context.Context, userID, memberID string) (int64, error)
	DeleteByInvestment(ctx context.Context, userID, investmentID string) (int64, error)
	// ReplaceAutoGenerated swaps the user's generated reminders for the given
	// set in one transaction; on error the previous set is untouched.
	ReplaceAutoGenerated(ctx context.Context, userID string, reminders []models.Reminder) (int64, error)
}

type reminderRepo struct {
	db *pgxpool.Pool
}

func NewReminderRepository(db *pgxpool.Pool) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, member_id, investment_id, title, description, reminder_type, reminder_date,
			auto_generated, created_at
		FROM reminders WHERE user_id = $1 ORDER BY reminder_date ASC`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Reminder])
}

// Create inserts the reminder. A preset ID is kept so regenerated reminders
// get stable identifiers.
func (r *reminderRepo) Create(ctx context.Context, rem *models.Reminder) error {
	return r.db.QueryRow(ctx, insertReminderSQL,
		presetID(rem.ID), rem.UserID, rem.MemberID, rem.InvestmentID, rem.Title, rem.Description, rem.ReminderType,
		rem.ReminderDate, rem.AutoGenerated,
	).Scan(&rem.ID, &rem.CreatedAt)
}

func (r *reminderRepo) Delete(ctx context.Context, userID, id string) error {
	return affectedOrNotFound(r.db.Exec(ctx, `DELETE FROM reminders WHERE user_id = $1 AND id = $2`, userID, id))
}

func (r *reminderRepo) DeleteByMember(ctx context.Context, userID, memberID string) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM reminders WHERE user_id = $1 AND member_id = $2`, userID, memberID)
}

func (r *reminderRepo) DeleteByInvestment(ctx context.Context, userID, investmentID string) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM reminders WHERE user_id = $1 AND investment_id = $2`, userID, investmentID)
}

const insertReminderSQL = `
		INSERT INTO reminders (id, user_id, member_id, investment_id, title, description, reminder_type,
			reminder_date, auto_generated)
		VALUES (COALESCE($1::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

func (r *reminderRepo) ReplaceAutoGenerated(ctx context.Context, userID string, reminders []models.Reminder) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM reminders WHERE user_id = $1 AND auto_generated`, userID)
	if err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for i := range reminders {
		rem := &reminders[i]
		batch.Queue(insertReminderSQL, presetID(rem.ID), rem.UserID, rem.MemberID, rem.InvestmentID, rem.Title,
			rem.Description, rem.ReminderType, rem.ReminderDate, rem.AutoGenerated,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&rem.ID, &rem.CreatedAt)
		})
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// presetID passes NULL for an empty ID so the database generates one.
func presetID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}

func (r *reminderRepo) deleteWhere(ctx context.Context, query string, args ...interface{}) (int64, error) {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
