package models

import "time"

// SyncLog records one reconciliation run. Stage is "completed" on success,
// otherwise the failing stage.
type SyncLog struct {
	ID             int        `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"user_id"`
	BrokerPlatform string     `db:"broker_platform" json:"broker_platform"`
	MemberID       string     `db:"member_id" json:"member_id"`
	AssetClass     AssetClass `db:"asset_class" json:"asset_class"`
	Stage          string     `db:"stage" json:"stage"`
	InsertedCount  int        `db:"inserted_count" json:"inserted_count"`
	DroppedCount   int        `db:"dropped_count" json:"dropped_count"`
	Error          string     `db:"error" json:"error,omitempty"`
	SyncedAt       time.Time  `db:"synced_at" json:"synced_at"`
}

const SyncStageCompleted = "completed"
