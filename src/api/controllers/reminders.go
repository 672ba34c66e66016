package controllers

import (
	"context"
	"time"

	"famwealth/src/models"
)

type RemindersControllerI interface {
	GetAllReminders(ctx context.Context, userID string) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, userID string, r *models.Reminder) error
	DeleteReminder(ctx context.Context, userID, id string) error
	RegenerateReminders(ctx context.Context, userID string) ([]models.Reminder, error)
}

func (c *Controller) GetAllReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	return c.Reminders.List(ctx, userID)
}

func (c *Controller) CreateReminder(ctx context.Context, userID string, r *models.Reminder) error {
	r.ID = ""
	r.UserID = userID
	return c.Reminders.Create(ctx, r)
}

func (c *Controller) DeleteReminder(ctx context.Context, userID, id string) error {
	return c.Reminders.Delete(ctx, userID, id)
}

func (c *Controller) RegenerateReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	return c.Reminders.RegenerateAutomaticReminders(ctx, userID, time.Now())
}
