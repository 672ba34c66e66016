package services

import (
	"context"
	"errors"
	"fmt"

	"famwealth/src/models"
	"famwealth/src/repositories"
	"famwealth/src/utils"

	"github.com/sirupsen/logrus"
)

type FamilyServiceI interface {
	ListMembers(ctx context.Context, userID string) ([]models.FamilyMember, error)
	GetMember(ctx context.Context, userID, id string) (*models.FamilyMember, error)
	CreateMember(ctx context.Context, m *models.FamilyMember) error
	UpdateMember(ctx context.Context, m *models.FamilyMember) error
	DeleteMember(ctx context.Context, userID, id string) error

	ListInvestments(ctx context.Context, userID string) ([]models.Investment, error)
	CreateInvestment(ctx context.Context, i *models.Investment) error
	UpdateInvestment(ctx context.Context, i *models.Investment) error
	DeleteInvestment(ctx context.Context, userID, id string) error

	ListLiabilities(ctx context.Context, userID string) ([]models.Liability, error)
	CreateLiability(ctx context.Context, l *models.Liability) error
	UpdateLiability(ctx context.Context, l *models.Liability) error
	DeleteLiability(ctx context.Context, userID, id string) error

	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)
	CreateAccount(ctx context.Context, a *models.Account) error
	UpdateAccount(ctx context.Context, a *models.Account) error
	DeleteAccount(ctx context.Context, userID, id string) error

	ListHoldings(ctx context.Context, filter repositories.HoldingFilter) ([]models.Holding, error)
}

type FamilyService struct {
	memberRepo     repositories.FamilyMemberRepository
	investmentRepo repositories.InvestmentRepository
	liabilityRepo  repositories.LiabilityRepository
	accountRepo    repositories.AccountRepository
	reminderRepo   repositories.ReminderRepository
	holdingRepo    repositories.HoldingRepository
}

func NewFamilyService(
	memberRepo repositories.FamilyMemberRepository,
	investmentRepo repositories.InvestmentRepository,
	liabilityRepo repositories.LiabilityRepository,
	accountRepo repositories.AccountRepository,
	reminderRepo repositories.ReminderRepository,
	holdingRepo repositories.HoldingRepository,
) *FamilyService {
	return &FamilyService{
		memberRepo:     memberRepo,
		investmentRepo: investmentRepo,
		liabilityRepo:  liabilityRepo,
		accountRepo:    accountRepo,
		reminderRepo:   reminderRepo,
		holdingRepo:    holdingRepo,
	}
}

func (s *FamilyService) ListMembers(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	return s.memberRepo.List(ctx, userID)
}

func (s *FamilyService) GetMember(ctx context.Context, userID, id string) (*models.FamilyMember, error) {
	return s.memberRepo.Get(ctx, userID, id)
}

func (s *FamilyService) CreateMember(ctx context.Context, m *models.FamilyMember) error {
	if m.Name == "" {
		return utils.NewValidationError("name", "is required")
	}
	return s.memberRepo.Create(ctx, m)
}

func (s *FamilyService) UpdateMember(ctx context.Context, m *models.FamilyMember) error {
	if m.Name == "" {
		return utils.NewValidationError("name", "is required")
	}
	return s.memberRepo.Update(ctx, m)
}

// DeleteMember removes the member after everything that references it:
// reminders, synced holdings, investments, liabilities and the accounts the
// member holds or is nominee of. The steps are not atomic; a failure leaves the
// member in place so the delete can be retried.
func (s *FamilyService) DeleteMember(ctx context.Context, userID, id string) error {
	if _, err := s.memberRepo.Get(ctx, userID, id); err != nil {
		return err
	}
	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{"user_id": userID, "member_id": id})

	cascade := []struct {
		name string
		run  func(ctx context.Context, userID, memberID string) (int64, error)
	}{
		{"reminders", s.reminderRepo.DeleteByMember},
		{"holdings", s.holdingRepo.DeleteByMember},
		{"investments", s.investmentRepo.DeleteByMember},
		{"liabilities", s.liabilityRepo.DeleteByMember},
		{"accounts", s.accountRepo.DeleteByMember},
	}
	for _, step := range cascade {
		n, err := step.run(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("failed to delete %s of member: %w", step.name, err)
		}
		logger.Debugf("deleted %d %s", n, step.name)
	}

	if err := s.memberRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	logger.Info("member deleted")
	return nil
}

func (s *FamilyService) ListInvestments(ctx context.Context, userID string) ([]models.Investment, error) {
	return s.investmentRepo.List(ctx, userID)
}

func (s *FamilyService) CreateInvestment(ctx context.Context, i *models.Investment) error {
	if err := s.validateInvestment(ctx, i); err != nil {
		return err
	}
	return s.investmentRepo.Create(ctx, i)
}

func (s *FamilyService) UpdateInvestment(ctx context.Context, i *models.Investment) error {
	if err := s.validateInvestment(ctx, i); err != nil {
		return err
	}
	return s.investmentRepo.Update(ctx, i)
}

// DeleteInvestment also removes the reminders generated for the investment.
func (s *FamilyService) DeleteInvestment(ctx context.Context, userID, id string) error {
	if _, err := s.investmentRepo.Get(ctx, userID, id); err != nil {
		return err
	}
	if _, err := s.reminderRepo.DeleteByInvestment(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete reminders of investment: %w", err)
	}
	return s.investmentRepo.Delete(ctx, userID, id)
}

func (s *FamilyService) validateInvestment(ctx context.Context, i *models.Investment) error {
	switch {
	case i.Name == "":
		return utils.NewValidationError("name", "is required")
	case i.InvestmentType == "":
		return utils.NewValidationError("investment_type", "is required")
	case i.InvestedAmount.IsNegative():
		return utils.NewValidationError("invested_amount", "must not be negative")
	}
	return s.requireMember(ctx, i.UserID, i.MemberID)
}

func (s *FamilyService) ListLiabilities(ctx context.Context, userID string) ([]models.Liability, error) {
	return s.liabilityRepo.List(ctx, userID)
}

func (s *FamilyService) CreateLiability(ctx context.Context, l *models.Liability) error {
	if err := s.validateLiability(ctx, l); err != nil {
		return err
	}
	return s.liabilityRepo.Create(ctx, l)
}

func (s *FamilyService) UpdateLiability(ctx context.Context, l *models.Liability) error {
	if err := s.validateLiability(ctx, l); err != nil {
		return err
	}
	return s.liabilityRepo.Update(ctx, l)
}

func (s *FamilyService) DeleteLiability(ctx context.Context, userID, id string) error {
	return s.liabilityRepo.Delete(ctx, userID, id)
}

func (s *FamilyService) validateLiability(ctx context.Context, l *models.Liability) error {
	if l.Type == "" {
		l.Type = models.LiabilityTypeOther
	}
	if l.OutstandingAmount.IsNegative() {
		return utils.NewValidationError("outstanding_amount", "must not be negative")
	}
	return s.requireMember(ctx, l.UserID, l.MemberID)
}

func (s *FamilyService) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	return s.accountRepo.List(ctx, userID)
}

func (s *FamilyService) CreateAccount(ctx context.Context, a *models.Account) error {
	if err := s.validateAccount(ctx, a); err != nil {
		return err
	}
	return s.accountRepo.Create(ctx, a)
}

func (s *FamilyService) UpdateAccount(ctx context.Context, a *models.Account) error {
	if err := s.validateAccount(ctx, a); err != nil {
		return err
	}
	return s.accountRepo.Update(ctx, a)
}

func (s *FamilyService) DeleteAccount(ctx context.Context, userID, id string) error {
	return s.accountRepo.Delete(ctx, userID, id)
}

func (s *FamilyService) validateAccount(ctx context.Context, a *models.Account) error {
	if a.Institution == "" {
		return utils.NewValidationError("institution", "is required")
	}
	if a.Status == "" {
		a.Status = models.AccountStatusActive
	}
	if err := s.requireMember(ctx, a.UserID, a.HolderID); err != nil {
		return err
	}
	if a.NomineeID != nil && *a.NomineeID != "" {
		return s.requireMember(ctx, a.UserID, *a.NomineeID)
	}
	a.NomineeID = nil
	return nil
}

func (s *FamilyService) ListHoldings(ctx context.Context, filter repositories.HoldingFilter) ([]models.Holding, error) {
	if filter.AssetClass != "" {
		class, err := models.ParseAssetClass(string(filter.AssetClass))
		if err != nil {
			return nil, utils.NewValidationError("asset_class", err.Error())
		}
		filter.AssetClass = class
	}
	return s.holdingRepo.List(ctx, filter)
}

// requireMember rejects references to members the user does not have.
func (s *FamilyService) requireMember(ctx context.Context, userID, memberID string) error {
	if memberID == "" {
		return utils.NewValidationError("member_id", "is required")
	}
	if _, err := s.memberRepo.Get(ctx, userID, memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NewValidationError("member_id", "unknown family member")
		}
		return err
	}
	return nil
}
