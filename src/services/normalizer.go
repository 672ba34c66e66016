package services

import (
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/models"
	"famwealth/src/utils"
)

// NormalizeHolding turns one vendor position into the stored Holding of scope.
// Amounts are recomputed from quantity and prices, never taken from the vendor.
// A position with neither symbol nor name, or with a negative quantity, is
// rejected with a ValidationError.
func NormalizeHolding(p brokers.Position, scope models.SyncScope, asOf time.Time) (models.Holding, error) {
	if p.Symbol == "" && p.Name == "" {
		return models.Holding{}, utils.NewValidationError("symbol", "record has neither symbol nor name")
	}
	if p.Quantity.IsNegative() {
		return models.Holding{}, utils.NewValidationError("quantity", "must not be negative")
	}

	name := p.Name
	if name == "" {
		name = utils.UnknownLabel
	}

	h := models.Holding{
		UserID:         scope.UserID,
		MemberID:       scope.MemberID,
		BrokerPlatform: scope.BrokerPlatform,
		AssetClass:     scope.AssetClass,
		ImportDate:     utils.TruncateToDate(asOf),
		Symbol:         p.Symbol,
		Name:           name,
		Quantity:       p.Quantity,
		AveragePrice:   p.AveragePrice,
		CurrentPrice:   p.CurrentPrice,
		InvestedAmount: p.Quantity.Mul(p.AveragePrice),
		CurrentValue:   p.Quantity.Mul(p.CurrentPrice),
	}

	if scope.AssetClass == models.AssetClassMutualFund {
		h.FolioNumber = p.FolioNumber
		h.FundHouse = p.FundHouse
		if h.FundHouse == "" {
			h.FundHouse = utils.UnknownLabel
		}
	}
	return h, nil
}
