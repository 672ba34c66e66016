package repositories_test

import (
	"context"
	"testing"
	"time"

	"famwealth/src/database/dbtest"
	"famwealth/src/models"
	"famwealth/src/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyMemberRepository(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	repo := repositories.NewFamilyMemberRepository(db)
	ctx := context.Background()

	member := &models.FamilyMember{UserID: "user-1", Name: "Pradeep", Relationship: "Self", IsPrimary: true}
	require.NoError(t, repo.Create(ctx, member))
	require.NotEmpty(t, member.ID)

	member.PhotoURL = "preset:avatar-2"
	require.NoError(t, repo.Update(ctx, member))

	got, err := repo.Get(ctx, "user-1", member.ID)
	require.NoError(t, err)
	assert.Equal(t, "preset:avatar-2", got.PhotoURL)

	_, err = repo.Get(ctx, "someone-else", member.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "user-1", member.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "user-1", member.ID), repositories.ErrNotFound)
}

func TestInvestmentAndReminderRepositories(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	members := repositories.NewFamilyMemberRepository(db)
	investments := repositories.NewInvestmentRepository(db)
	reminders := repositories.NewReminderRepository(db)
	ctx := context.Background()

	member := &models.FamilyMember{UserID: "user-1", Name: "Smruthi"}
	require.NoError(t, members.Create(ctx, member))

	maturity := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	fd := &models.Investment{
		UserID:         "user-1",
		MemberID:       member.ID,
		InvestmentType: "fixedDeposits",
		Name:           "SBI FD",
		InvestedAmount: decimal.NewFromInt(100000),
		MaturityDate:   &maturity,
	}
	require.NoError(t, investments.Create(ctx, fd))

	auto := &models.Reminder{
		UserID:        "user-1",
		MemberID:      member.ID,
		InvestmentID:  &fd.ID,
		Title:         "FD maturity",
		ReminderType:  "fd_maturity",
		ReminderDate:  maturity.AddDate(0, 0, -30),
		AutoGenerated: true,
	}
	manual := &models.Reminder{
		UserID:       "user-1",
		MemberID:     member.ID,
		Title:        "Renew passport",
		ReminderType: "custom",
		ReminderDate: maturity,
	}
	require.NoError(t, reminders.Create(ctx, auto))
	require.NoError(t, reminders.Create(ctx, manual))

	list, err := investments.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].MaturityDate)
	assert.True(t, list[0].InvestedAmount.Equal(decimal.NewFromInt(100000)))

	fresh := []models.Reminder{{
		UserID:        "user-1",
		MemberID:      member.ID,
		InvestmentID:  &fd.ID,
		Title:         "FD maturity: SBI FD",
		ReminderType:  "fd_maturity",
		ReminderDate:  maturity.AddDate(0, 0, -15),
		AutoGenerated: true,
	}}
	deleted, err := reminders.ReplaceAutoGenerated(ctx, "user-1", fresh)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.NotEmpty(t, fresh[0].ID)

	left, err := reminders.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, left, 2)
	titles := []string{left[0].Title, left[1].Title}
	assert.ElementsMatch(t, []string{"FD maturity: SBI FD", "Renew passport"}, titles)

	deleted, err = reminders.ReplaceAutoGenerated(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	left, err = reminders.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.False(t, left[0].AutoGenerated)
}

func TestAccountRepositoryDeleteByMember(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	members := repositories.NewFamilyMemberRepository(db)
	accounts := repositories.NewAccountRepository(db)
	ctx := context.Background()

	holder := &models.FamilyMember{UserID: "user-1", Name: "Holder"}
	nominee := &models.FamilyMember{UserID: "user-1", Name: "Nominee"}
	require.NoError(t, members.Create(ctx, holder))
	require.NoError(t, members.Create(ctx, nominee))

	held := &models.Account{UserID: "user-1", AccountType: "Savings", Institution: "HDFC", HolderID: holder.ID, Status: models.AccountStatusActive}
	nominated := &models.Account{UserID: "user-1", AccountType: "Savings", Institution: "ICICI", HolderID: holder.ID, NomineeID: &nominee.ID, Status: models.AccountStatusActive}
	unrelated := &models.Account{UserID: "user-1", AccountType: "Demat", Institution: "Zerodha", HolderID: nominee.ID, Status: models.AccountStatusActive}
	for _, a := range []*models.Account{held, nominated, unrelated} {
		require.NoError(t, accounts.Create(ctx, a))
	}

	deleted, err := accounts.DeleteByMember(ctx, "user-1", holder.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	left, err := accounts.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Zerodha", left[0].Institution)
}

func TestSyncLogRepository(t *testing.T) {
	db := dbtest.SetupTestDB(t)
	repo := repositories.NewSyncLogRepository(db)
	ctx := context.Background()

	scope := models.SyncScope{UserID: "user-1", BrokerPlatform: "Zerodha", MemberID: "m-1", AssetClass: models.AssetClassEquity}

	last, err := repo.GetLastSyncDate(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, last)

	syncedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.SyncLog{
		UserID: "user-1", BrokerPlatform: "Zerodha", MemberID: "m-1", AssetClass: models.AssetClassEquity,
		Stage: models.SyncStageCompleted, InsertedCount: 3, SyncedAt: syncedAt,
	}))
	require.NoError(t, repo.Create(ctx, &models.SyncLog{
		UserID: "user-1", BrokerPlatform: "Zerodha", MemberID: "m-1", AssetClass: models.AssetClassEquity,
		Stage: "insert", Error: "connection reset", SyncedAt: syncedAt.Add(time.Hour),
	}))

	last, err = repo.GetLastSyncDate(ctx, scope)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, syncedAt.Equal(*last))

	logs, err := repo.ListRecent(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "insert", logs[0].Stage)
}
