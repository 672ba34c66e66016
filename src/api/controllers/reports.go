package controllers

import (
	"context"

	"famwealth/src/schemas"
)

type ReportsControllerI interface {
	GetCategoryReport(ctx context.Context, userID, category, sortKey string, desc bool) (*schemas.CategoryReport, error)
}

func (c *Controller) GetCategoryReport(ctx context.Context, userID, category, sortKey string, desc bool) (*schemas.CategoryReport, error) {
	return c.Dashboard.GetCategoryReport(ctx, userID, category, sortKey, desc)
}
