package controllers

import (
	"context"

	"famwealth/src/models"
	"famwealth/src/repositories"
)

type FamilyControllerI interface {
	GetAllMembers(ctx context.Context, userID string) ([]models.FamilyMember, error)
	GetMemberByID(ctx context.Context, userID, id string) (*models.FamilyMember, error)
	CreateMember(ctx context.Context, userID string, m *models.FamilyMember) error
	UpdateMember(ctx context.Context, userID, id string, m *models.FamilyMember) error
	DeleteMember(ctx context.Context, userID, id string) error

	GetAllInvestments(ctx context.Context, userID string) ([]models.Investment, error)
	CreateInvestment(ctx context.Context, userID string, i *models.Investment) error
	UpdateInvestment(ctx context.Context, userID, id string, i *models.Investment) error
	DeleteInvestment(ctx context.Context, userID, id string) error

	GetAllLiabilities(ctx context.Context, userID string) ([]models.Liability, error)
	CreateLiability(ctx context.Context, userID string, l *models.Liability) error
	UpdateLiability(ctx context.Context, userID, id string, l *models.Liability) error
	DeleteLiability(ctx context.Context, userID, id string) error

	GetAllAccounts(ctx context.Context, userID string) ([]models.Account, error)
	CreateAccount(ctx context.Context, userID string, a *models.Account) error
	UpdateAccount(ctx context.Context, userID, id string, a *models.Account) error
	DeleteAccount(ctx context.Context, userID, id string) error

	GetHoldings(ctx context.Context, userID, memberID, assetClass string) ([]models.Holding, error)
}

func (c *Controller) GetAllMembers(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	return c.Family.ListMembers(ctx, userID)
}

func (c *Controller) GetMemberByID(ctx context.Context, userID, id string) (*models.FamilyMember, error) {
	return c.Family.GetMember(ctx, userID, id)
}

func (c *Controller) CreateMember(ctx context.Context, userID string, m *models.FamilyMember) error {
	m.ID = ""
	m.UserID = userID
	return c.Family.CreateMember(ctx, m)
}

func (c *Controller) UpdateMember(ctx context.Context, userID, id string, m *models.FamilyMember) error {
	m.ID, m.UserID = id, userID
	return c.Family.UpdateMember(ctx, m)
}

func (c *Controller) DeleteMember(ctx context.Context, userID, id string) error {
	return c.Family.DeleteMember(ctx, userID, id)
}

func (c *Controller) GetAllInvestments(ctx context.Context, userID string) ([]models.Investment, error) {
	return c.Family.ListInvestments(ctx, userID)
}

func (c *Controller) CreateInvestment(ctx context.Context, userID string, i *models.Investment) error {
	i.ID = ""
	i.UserID = userID
	return c.Family.CreateInvestment(ctx, i)
}

func (c *Controller) UpdateInvestment(ctx context.Context, userID, id string, i *models.Investment) error {
	i.ID, i.UserID = id, userID
	return c.Family.UpdateInvestment(ctx, i)
}

func (c *Controller) DeleteInvestment(ctx context.Context, userID, id string) error {
	return c.Family.DeleteInvestment(ctx, userID, id)
}

func (c *Controller) GetAllLiabilities(ctx context.Context, userID string) ([]models.Liability, error) {
	return c.Family.ListLiabilities(ctx, userID)
}

func (c *Controller) CreateLiability(ctx context.Context, userID string, l *models.Liability) error {
	l.ID = ""
	l.UserID = userID
	return c.Family.CreateLiability(ctx, l)
}

func (c *Controller) UpdateLiability(ctx context.Context, userID, id string, l *models.Liability) error {
	l.ID, l.UserID = id, userID
	return c.Family.UpdateLiability(ctx, l)
}

func (c *Controller) DeleteLiability(ctx context.Context, userID, id string) error {
	return c.Family.DeleteLiability(ctx, userID, id)
}

func (c *Controller) GetAllAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	return c.Family.ListAccounts(ctx, userID)
}

func (c *Controller) CreateAccount(ctx context.Context, userID string, a *models.Account) error {
	a.ID = ""
	a.UserID = userID
	return c.Family.CreateAccount(ctx, a)
}

func (c *Controller) UpdateAccount(ctx context.Context, userID, id string, a *models.Account) error {
	a.ID, a.UserID = id, userID
	return c.Family.UpdateAccount(ctx, a)
}

func (c *Controller) DeleteAccount(ctx context.Context, userID, id string) error {
	return c.Family.DeleteAccount(ctx, userID, id)
}

func (c *Controller) GetHoldings(ctx context.Context, userID, memberID, assetClass string) ([]models.Holding, error) {
	return c.Family.ListHoldings(ctx, repositories.HoldingFilter{
		UserID:     userID,
		MemberID:   memberID,
		AssetClass: models.AssetClass(assetClass),
	})
}
