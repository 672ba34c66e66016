package controllers

import (
	"bytes"
	"context"

	"famwealth/src/schemas"
)

type DashboardControllerI interface {
	GetDashboard(ctx context.Context, userID string) (*schemas.DashboardSummary, error)
	GetDashboardXLSX(ctx context.Context, userID string) (*bytes.Buffer, error)
}

func (c *Controller) GetDashboard(ctx context.Context, userID string) (*schemas.DashboardSummary, error) {
	return c.Dashboard.GetSummary(ctx, userID)
}

func (c *Controller) GetDashboardXLSX(ctx context.Context, userID string) (*bytes.Buffer, error) {
	f, err := c.Export.GenerateXLSX(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.WriteToBuffer()
}
