package services

import (
	"context"
	"time"

	"famwealth/src/models"
	"famwealth/src/repositories"
	"famwealth/src/schemas"

	"golang.org/x/sync/errgroup"
)

type DashboardServiceI interface {
	LoadSnapshot(ctx context.Context, userID string) (*models.Snapshot, error)
	GetSummary(ctx context.Context, userID string) (*schemas.DashboardSummary, error)
	GetCategoryReport(ctx context.Context, userID, category, sortKey string, desc bool) (*schemas.CategoryReport, error)
}

type DashboardService struct {
	memberRepo     repositories.FamilyMemberRepository
	holdingRepo    repositories.HoldingRepository
	investmentRepo repositories.InvestmentRepository
	liabilityRepo  repositories.LiabilityRepository
	accountRepo    repositories.AccountRepository
	reminderRepo   repositories.ReminderRepository
	now            func() time.Time
}

func NewDashboardService(
	memberRepo repositories.FamilyMemberRepository,
	holdingRepo repositories.HoldingRepository,
	investmentRepo repositories.InvestmentRepository,
	liabilityRepo repositories.LiabilityRepository,
	accountRepo repositories.AccountRepository,
	reminderRepo repositories.ReminderRepository,
) *DashboardService {
	return &DashboardService{
		memberRepo:     memberRepo,
		holdingRepo:    holdingRepo,
		investmentRepo: investmentRepo,
		liabilityRepo:  liabilityRepo,
		accountRepo:    accountRepo,
		reminderRepo:   reminderRepo,
		now:            time.Now,
	}
}

// LoadSnapshot reads every table of the user concurrently. The first failing
// read cancels the rest.
func (s *DashboardService) LoadSnapshot(ctx context.Context, userID string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snapshot.Members, err = s.memberRepo.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Holdings, err = s.holdingRepo.List(ctx, repositories.HoldingFilter{UserID: userID})
		return err
	})
	g.Go(func() (err error) {
		snapshot.Investments, err = s.investmentRepo.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Liabilities, err = s.liabilityRepo.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Accounts, err = s.accountRepo.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Reminders, err = s.reminderRepo.List(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *DashboardService) GetSummary(ctx context.Context, userID string) (*schemas.DashboardSummary, error) {
	snapshot, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(*snapshot, s.now())
	return &summary, nil
}

// GetCategoryReport builds one category report. An empty sortKey keeps the
// default member then name order.
func (s *DashboardService) GetCategoryReport(ctx context.Context, userID, category, sortKey string, desc bool) (*schemas.CategoryReport, error) {
	c, err := ParseReportCategory(category)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.LoadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	report := BuildCategoryReport(*snapshot, c)
	if sortKey != "" {
		SortReportRows(report.Rows, sortKey, desc)
	}
	return &report, nil
}
