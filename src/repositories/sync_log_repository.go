package repositories

import (
	"context"
	"errors"
	"time"

	"famwealth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SyncLogRepository interface {
	Create(ctx context.Context, log *models.SyncLog) error
	ListRecent(ctx context.Context, userID string, limit int) ([]models.SyncLog, error)
	// GetLastSyncDate returns nil when the tuple never completed a sync.
	GetLastSyncDate(ctx context.Context, scope models.SyncScope) (*time.Time, error)
}

type syncLogRepo struct {
	DB *pgxpool.Pool
}

func NewSyncLogRepository(db *pgxpool.Pool) SyncLogRepository {
	return &syncLogRepo{DB: db}
}

func (r *syncLogRepo) Create(ctx context.Context, log *models.SyncLog) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO sync_logs (user_id, broker_platform, member_id, asset_class, stage, inserted_count,
			dropped_count, error, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		log.UserID, log.BrokerPlatform, log.MemberID, string(log.AssetClass), log.Stage, log.InsertedCount,
		log.DroppedCount, log.Error, log.SyncedAt,
	).Scan(&log.ID)
}

func (r *syncLogRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.SyncLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_id, broker_platform, member_id, asset_class, stage, inserted_count, dropped_count,
			error, synced_at
		FROM sync_logs
		WHERE user_id = $1
		ORDER BY synced_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.SyncLog
	for rows.Next() {
		var l models.SyncLog
		var class string
		if err := rows.Scan(&l.ID, &l.UserID, &l.BrokerPlatform, &l.MemberID, &class, &l.Stage,
			&l.InsertedCount, &l.DroppedCount, &l.Error, &l.SyncedAt); err != nil {
			return nil, err
		}
		l.AssetClass = models.AssetClass(class)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *syncLogRepo) GetLastSyncDate(ctx context.Context, scope models.SyncScope) (*time.Time, error) {
	var syncedAt time.Time
	err := r.DB.QueryRow(ctx, `
		SELECT synced_at
		FROM sync_logs
		WHERE user_id = $1 AND broker_platform = $2 AND member_id = $3 AND asset_class = $4 AND stage = $5
		ORDER BY synced_at DESC
		LIMIT 1`,
		scope.UserID, scope.BrokerPlatform, scope.MemberID, string(scope.AssetClass), models.SyncStageCompleted,
	).Scan(&syncedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &syncedAt, nil
}
