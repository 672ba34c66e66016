package controllers

import (
	"context"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"
)

type SyncControllerI interface {
	SyncHoldings(ctx context.Context, userID string, req *schemas.SyncRequest) (*schemas.SyncResult, error)
	GetSyncLogs(ctx context.Context, userID string, limit int) ([]models.SyncLog, error)
}

// SyncHoldings feeds records fetched outside the server, for example by a
// browser-side broker session, into the reconciliation engine.
func (c *Controller) SyncHoldings(ctx context.Context, userID string, req *schemas.SyncRequest) (*schemas.SyncResult, error) {
	if req.Holdings == nil {
		return nil, utils.NewValidationError("holdings", "is required, send [] to clear the tuple")
	}
	scope := models.SyncScope{
		UserID:         userID,
		BrokerPlatform: req.Broker,
		MemberID:       req.MemberID,
		AssetClass:     models.AssetClass(req.AssetClass),
	}
	asOf := time.Now()
	if req.AsOf != nil && !req.AsOf.IsZero() {
		asOf = req.AsOf.Time
	}
	records := make([]brokers.VendorRecord, len(req.Holdings))
	for i, h := range req.Holdings {
		records[i] = brokers.VendorRecord(h)
	}
	return c.Engine.SyncHoldings(ctx, scope, records, asOf)
}

func (c *Controller) GetSyncLogs(ctx context.Context, userID string, limit int) ([]models.SyncLog, error) {
	return c.SyncLogs.ListRecent(ctx, userID, limit)
}
