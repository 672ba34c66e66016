package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/models"
	"famwealth/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var syncDate = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newEngine(t *testing.T) (*ReconciliationService, *memHoldingRepo, *memSyncLogRepo) {
	t.Helper()
	holdings := &memHoldingRepo{}
	logs := &memSyncLogRepo{}
	registry := brokers.NewRegistry(&fakeAdapter{name: brokers.Zerodha}, &fakeAdapter{name: brokers.HDFCSecurities})
	engine := NewReconciliationService(holdings, logs, registry)
	engine.now = func() time.Time { return syncDate }
	return engine, holdings, logs
}

func equityScope() models.SyncScope {
	return models.SyncScope{UserID: "u1", BrokerPlatform: brokers.Zerodha, MemberID: "m1", AssetClass: models.AssetClassEquity}
}

func infy() brokers.VendorRecord {
	return brokers.VendorRecord{"symbol": "INFY", "company_name": "Infosys", "quantity": 10.0, "average_price": 100.0, "current_price": 120.0}
}

func TestSyncHoldingsComputesAmounts(t *testing.T) {
	engine, holdings, logs := newEngine(t)
	scope := equityScope()

	result, err := engine.SyncHoldings(context.Background(), scope, []brokers.VendorRecord{infy()}, syncDate)
	require.NoError(t, err)
	assert.Equal(t, 1, result.InsertedCount)
	assert.Equal(t, int64(0), result.DeletedCount)

	rows := holdings.scope(scope)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].InvestedAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, rows[0].CurrentValue.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), rows[0].ImportDate)
	assert.Empty(t, rows[0].FolioNumber)

	require.Len(t, logs.logs, 1)
	assert.Equal(t, models.SyncStageCompleted, logs.logs[0].Stage)
}

func TestSyncHoldingsReplacesTuple(t *testing.T) {
	engine, holdings, _ := newEngine(t)
	ctx := context.Background()
	scope := equityScope()

	tcs := brokers.VendorRecord{"symbol": "TCS", "company_name": "TCS", "quantity": 2.0, "average_price": 3000.0, "current_price": 3500.0}
	_, err := engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{infy(), tcs}, syncDate)
	require.NoError(t, err)
	require.Len(t, holdings.scope(scope), 2)

	result, err := engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{tcs}, syncDate)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.DeletedCount)
	rows := holdings.scope(scope)
	require.Len(t, rows, 1)
	assert.Equal(t, "TCS", rows[0].Symbol)

	result, err = engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{}, syncDate)
	require.NoError(t, err)
	assert.Equal(t, 0, result.InsertedCount)
	assert.Empty(t, holdings.scope(scope))
}

func TestSyncHoldingsIsIdempotent(t *testing.T) {
	engine, holdings, _ := newEngine(t)
	ctx := context.Background()
	scope := equityScope()

	_, err := engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{infy()}, syncDate)
	require.NoError(t, err)
	first := holdings.scope(scope)

	_, err = engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{infy()}, syncDate)
	require.NoError(t, err)
	second := holdings.scope(scope)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Symbol, second[i].Symbol)
		assert.True(t, first[i].CurrentValue.Equal(second[i].CurrentValue))
	}
}

func TestSyncHoldingsLeavesOtherTuplesAlone(t *testing.T) {
	engine, holdings, _ := newEngine(t)
	ctx := context.Background()
	scope := equityScope()
	other := scope
	other.MemberID = "m2"
	hdfc := scope
	hdfc.BrokerPlatform = brokers.HDFCSecurities

	for _, s := range []models.SyncScope{scope, other, hdfc} {
		_, err := engine.SyncHoldings(ctx, s, []brokers.VendorRecord{infy()}, syncDate)
		require.NoError(t, err)
	}
	_, err := engine.SyncHoldings(ctx, scope, nil, syncDate)
	require.NoError(t, err)

	assert.Empty(t, holdings.scope(scope))
	assert.Len(t, holdings.scope(other), 1)
	assert.Len(t, holdings.scope(hdfc), 1)
}

func TestSyncHoldingsDeleteFailureKeepsRows(t *testing.T) {
	engine, holdings, logs := newEngine(t)
	ctx := context.Background()
	scope := equityScope()

	_, err := engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{infy()}, syncDate)
	require.NoError(t, err)

	holdings.deleteErr = errors.New("connection reset")
	_, err = engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{infy(), infy()}, syncDate)
	require.Error(t, err)

	var syncErr *utils.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, utils.SyncStageDelete, syncErr.Stage)
	assert.Equal(t, brokers.Zerodha, syncErr.Broker)
	assert.ErrorIs(t, err, utils.ErrSyncFailed)
	stage, ok := FailedStage(err)
	assert.True(t, ok)
	assert.Equal(t, utils.SyncStageDelete, stage)

	holdings.deleteErr = nil
	assert.Len(t, holdings.scope(scope), 1)
	assert.Equal(t, "delete", logs.logs[len(logs.logs)-1].Stage)
}

func TestSyncHoldingsInsertFailureEmptiesTuple(t *testing.T) {
	engine, holdings, _ := newEngine(t)
	ctx := context.Background()
	scope := equityScope()

	_, err := engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{infy()}, syncDate)
	require.NoError(t, err)

	holdings.insertErr = errors.New("constraint violation")
	_, err = engine.SyncHoldings(ctx, scope, []brokers.VendorRecord{infy()}, syncDate)
	require.Error(t, err)
	stage, ok := FailedStage(err)
	assert.True(t, ok)
	assert.Equal(t, utils.SyncStageInsert, stage)
	assert.Empty(t, holdings.scope(scope))
}

func TestSyncHoldingsDropsInvalidRecords(t *testing.T) {
	engine, holdings, _ := newEngine(t)
	scope := equityScope()

	records := []brokers.VendorRecord{
		infy(),
		{"quantity": 5.0},
		{"symbol": "BAD", "quantity": -1.0},
		{"symbol": "NONAME", "quantity": 1.0, "average_price": 10.0, "current_price": 11.0},
	}
	result, err := engine.SyncHoldings(context.Background(), scope, records, syncDate)
	require.NoError(t, err)
	assert.Equal(t, 2, result.InsertedCount)
	require.Len(t, result.Dropped, 2)
	assert.Equal(t, 1, result.Dropped[0].Index)
	assert.Equal(t, 2, result.Dropped[1].Index)

	rows := holdings.scope(scope)
	require.Len(t, rows, 2)
	assert.Equal(t, utils.UnknownLabel, rows[1].Name)
}

func TestSyncHoldingsMutualFundDefaults(t *testing.T) {
	engine, holdings, _ := newEngine(t)
	scope := equityScope()
	scope.AssetClass = "mutual funds"

	result, err := engine.SyncHoldings(context.Background(), scope, []brokers.VendorRecord{
		{"scheme_code": "120503", "scheme_name": "Axis Bluechip", "units": 50.5, "average_nav": 40.0, "nav": 44.0},
	}, syncDate)
	require.NoError(t, err)
	assert.Equal(t, models.AssetClassMutualFund, result.Scope.AssetClass)

	scope.AssetClass = models.AssetClassMutualFund
	rows := holdings.scope(scope)
	require.Len(t, rows, 1)
	assert.Equal(t, utils.UnknownLabel, rows[0].FundHouse)
	assert.True(t, rows[0].InvestedAmount.Equal(decimal.NewFromInt(2020)))
	assert.True(t, rows[0].CurrentValue.Equal(decimal.RequireFromString("2222")))
}

func TestSyncHoldingsValidatesScope(t *testing.T) {
	engine, _, _ := newEngine(t)
	ctx := context.Background()

	cases := map[string]models.SyncScope{
		"missing user":    {BrokerPlatform: brokers.Zerodha, MemberID: "m1", AssetClass: models.AssetClassEquity},
		"missing member":  {UserID: "u1", BrokerPlatform: brokers.Zerodha, AssetClass: models.AssetClassEquity},
		"bad asset class": {UserID: "u1", BrokerPlatform: brokers.Zerodha, MemberID: "m1", AssetClass: "bonds"},
		"unknown broker":  {UserID: "u1", BrokerPlatform: "Groww", MemberID: "m1", AssetClass: models.AssetClassEquity},
	}
	for name, scope := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.SyncHoldings(ctx, scope, nil, syncDate)
			var validationErr *utils.ValidationError
			assert.True(t, errors.As(err, &validationErr), "got %v", err)
		})
	}
}

func TestFailedStageIgnoresOtherErrors(t *testing.T) {
	_, ok := FailedStage(utils.NewValidationError("member_id", "is required"))
	assert.False(t, ok)

	stage, ok := FailedStage(fmt.Errorf("wrapped: %w", &utils.SyncError{Stage: utils.SyncStageInsert, Broker: brokers.Zerodha}))
	assert.True(t, ok)
	assert.Equal(t, utils.SyncStageInsert, stage)
}
