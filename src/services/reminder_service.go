package services

import (
	"context"
	"fmt"
	"time"

	"famwealth/src/models"
	"famwealth/src/repositories"
	"famwealth/src/schemas"
	"famwealth/src/utils"
	redis_utils "famwealth/src/utils/redis"

	"github.com/sirupsen/logrus"
)

const defaultReminderLeadDays = 30

type ReminderServiceI interface {
	List(ctx context.Context, userID string) ([]models.Reminder, error)
	Create(ctx context.Context, r *models.Reminder) error
	Delete(ctx context.Context, userID, id string) error
	RegenerateAutomaticReminders(ctx context.Context, userID string, now time.Time) ([]models.Reminder, error)
}

type ReminderService struct {
	reminderRepo   repositories.ReminderRepository
	investmentRepo repositories.InvestmentRepository
	leadDays       int
	events         EventPublisher
}

func NewReminderService(
	reminderRepo repositories.ReminderRepository,
	investmentRepo repositories.InvestmentRepository,
	leadDays int,
	events EventPublisher,
) *ReminderService {
	if leadDays <= 0 {
		leadDays = defaultReminderLeadDays
	}
	return &ReminderService{
		reminderRepo:   reminderRepo,
		investmentRepo: investmentRepo,
		leadDays:       leadDays,
		events:         events,
	}
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]models.Reminder, error) {
	return s.reminderRepo.List(ctx, userID)
}

// Create stores a manual reminder.
func (s *ReminderService) Create(ctx context.Context, r *models.Reminder) error {
	if r.Title == "" {
		return utils.NewValidationError("title", "is required")
	}
	if r.MemberID == "" {
		return utils.NewValidationError("member_id", "is required")
	}
	if r.ReminderDate.IsZero() {
		return utils.NewValidationError("reminder_date", "is required")
	}
	if r.ReminderType == "" {
		r.ReminderType = utils.ReminderTypeCustom
	}
	r.AutoGenerated = false
	return s.reminderRepo.Create(ctx, r)
}

func (s *ReminderService) Delete(ctx context.Context, userID, id string) error {
	return s.reminderRepo.Delete(ctx, userID, id)
}

// RegenerateAutomaticReminders replaces the user's generated reminders with a
// fresh set: one per fixed deposit maturing after today and one per insurance
// premium due after today, dated leadDays before the event. A reminder whose
// lead date already passed is dated today. The swap is atomic: when it fails
// the previous generated reminders stay in place.
func (s *ReminderService) RegenerateAutomaticReminders(ctx context.Context, userID string, now time.Time) ([]models.Reminder, error) {
	logger := utils.LoggerFromContext(ctx).WithField("user_id", userID)

	investments, err := s.investmentRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	reminders := BuildAutomaticReminders(investments, now, s.leadDays)
	removed, err := s.reminderRepo.ReplaceAutoGenerated(ctx, userID, reminders)
	if err != nil {
		return nil, fmt.Errorf("failed to replace generated reminders: %w", err)
	}
	logger.WithFields(logrus.Fields{"removed": removed, "created": len(reminders)}).Info("regenerated automatic reminders")

	if s.events != nil {
		event := schemas.Event{
			ID:         redis_utils.GenerateUUID(userID, schemas.EventRemindersGenerated, now.Format(time.RFC3339Nano)),
			Type:       schemas.EventRemindersGenerated,
			UserID:     userID,
			OccurredAt: now,
			Payload:    map[string]int{"created": len(reminders)},
		}
		if err := s.events.Publish(ctx, event); err != nil {
			logger.Warnf("failed to publish reminders event: %v", err)
		}
	}
	return reminders, nil
}

// BuildAutomaticReminders derives the generated reminders without touching
// storage. IDs are stable for the same investment, type and date.
func BuildAutomaticReminders(investments []models.Investment, now time.Time, leadDays int) []models.Reminder {
	today := utils.TruncateToDate(now)
	var reminders []models.Reminder
	for _, inv := range investments {
		switch inv.InvestmentType {
		case utils.InvestmentTypeFixedDeposits:
			if r, ok := automaticReminder(inv, inv.MaturityDate, utils.ReminderTypeFDMaturity,
				"FD maturity: "+inv.Name, "Fixed deposit matures on %s", today, leadDays); ok {
				reminders = append(reminders, r)
			}
		case utils.InvestmentTypeInsurance:
			if r, ok := automaticReminder(inv, inv.PremiumDueDate, utils.ReminderTypeInsurancePremium,
				"Insurance premium: "+inv.Name, "Premium due on %s", today, leadDays); ok {
				reminders = append(reminders, r)
			}
		}
	}
	return reminders
}

func automaticReminder(inv models.Investment, due *time.Time, reminderType, title, description string, today time.Time, leadDays int) (models.Reminder, bool) {
	if due == nil || utils.DaysBetween(today, *due) <= 0 {
		return models.Reminder{}, false
	}
	dueDate := utils.TruncateToDate(*due)
	remindOn := dueDate.AddDate(0, 0, -leadDays)
	if remindOn.Before(today) {
		remindOn = today
	}
	investmentID := inv.ID
	return models.Reminder{
		ID:            redis_utils.GenerateUUID(inv.UserID, inv.ID, reminderType, dueDate.Format(utils.ShortDashDateLayout)),
		UserID:        inv.UserID,
		MemberID:      inv.MemberID,
		InvestmentID:  &investmentID,
		Title:         title,
		Description:   fmt.Sprintf(description, dueDate.Format(utils.ShortDashDateLayout)),
		ReminderType:  reminderType,
		ReminderDate:  remindOn,
		AutoGenerated: true,
	}, true
}
