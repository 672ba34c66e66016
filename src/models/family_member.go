package models

import "time"

type FamilyMember struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Name         string    `db:"name" json:"name"`
	Relationship string    `db:"relationship" json:"relationship"`
	IsPrimary    bool      `db:"is_primary" json:"is_primary"`
	PhotoURL     string    `db:"photo_url" json:"photo_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
