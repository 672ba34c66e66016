package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/config"
	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSecrets map[string]string

func (s staticSecrets) Get(_, key string) string { return s[key] }

type brokerSyncFixture struct {
	svc      *BrokerSyncService
	adapter  *fakeAdapter
	holdings *memHoldingRepo
	sessions *MemorySessionStore
	events   *recordingPublisher
}

func newBrokerSyncFixture(t *testing.T, mappings []models.BrokerMapping) *brokerSyncFixture {
	t.Helper()
	adapter := &fakeAdapter{name: brokers.HDFCSecurities, records: []brokers.VendorRecord{
		{"symbol": "INFY", "company_name": "Infosys", "quantity": 10.0, "average_price": 100.0, "current_price": 120.0},
		{"scheme_name": "Axis Bluechip", "isin": "INF846K01DP8", "units": 10.0, "average_nav": 40.0, "nav": 44.0},
		{"symbol": "TCS", "company_name": "TCS", "quantity": 1.0, "average_price": 3000.0, "current_price": 3500.0},
	}}
	registry := brokers.NewRegistry(adapter)
	holdings := &memHoldingRepo{}
	engine := NewReconciliationService(holdings, &memSyncLogRepo{}, registry)
	sessions := NewMemorySessionStore()
	events := &recordingPublisher{}
	svc := NewBrokerSyncService(registry, sessions, engine, mappings, 8*time.Hour, staticSecrets{"api_key": "K"}, events)
	return &brokerSyncFixture{svc: svc, adapter: adapter, holdings: holdings, sessions: sessions, events: events}
}

func hdfcMappings() []models.BrokerMapping {
	return []models.BrokerMapping{
		{Broker: brokers.HDFCSecurities, MemberID: "m1", AssetClass: models.AssetClassEquity},
		{Broker: brokers.HDFCSecurities, MemberID: "m2", AssetClass: models.AssetClassMutualFund},
	}
}

func TestSyncBrokerSplitsByClass(t *testing.T) {
	f := newBrokerSyncFixture(t, hdfcMappings())
	ctx := context.Background()

	session, err := f.svc.CreateSession(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSessionRequest{Username: "asha", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "token-K", session.AccessToken)

	resp, err := f.svc.SyncBroker(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSyncRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Fetched)
	require.Len(t, resp.Results, 2)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, 2, resp.Results[0].InsertedCount)
	assert.Equal(t, 1, resp.Results[1].InsertedCount)

	equity := f.holdings.scope(models.SyncScope{UserID: "u1", BrokerPlatform: brokers.HDFCSecurities, MemberID: "m1", AssetClass: models.AssetClassEquity})
	require.Len(t, equity, 2)
	funds := f.holdings.scope(models.SyncScope{UserID: "u1", BrokerPlatform: brokers.HDFCSecurities, MemberID: "m2", AssetClass: models.AssetClassMutualFund})
	require.Len(t, funds, 1)
	assert.Equal(t, "Axis Bluechip", funds[0].Name)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, schemas.EventSyncCompleted, f.events.events[0].Type)
	assert.Equal(t, "u1", f.events.events[0].UserID)
}

func TestSyncBrokerFilters(t *testing.T) {
	f := newBrokerSyncFixture(t, hdfcMappings())
	ctx := context.Background()
	_, err := f.svc.CreateSession(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSessionRequest{Password: "pw"})
	require.NoError(t, err)

	resp, err := f.svc.SyncBroker(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSyncRequest{AssetClass: "mf"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "m2", resp.Results[0].Scope.MemberID)

	_, err = f.svc.SyncBroker(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSyncRequest{MemberID: "m9"})
	var validationErr *utils.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSyncBrokerWithoutSession(t *testing.T) {
	f := newBrokerSyncFixture(t, hdfcMappings())

	_, err := f.svc.SyncBroker(context.Background(), "u1", brokers.HDFCSecurities, schemas.BrokerSyncRequest{})
	var authErr *utils.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 0, f.adapter.fetches)
}

func TestSyncBrokerDropsRejectedSession(t *testing.T) {
	f := newBrokerSyncFixture(t, hdfcMappings())
	ctx := context.Background()
	_, err := f.svc.CreateSession(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSessionRequest{Password: "pw"})
	require.NoError(t, err)

	f.adapter.fetchErr = &utils.AuthenticationError{Broker: brokers.HDFCSecurities, Err: errors.New("token expired")}
	_, err = f.svc.SyncBroker(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSyncRequest{})
	require.Error(t, err)

	_, err = f.sessions.Load(ctx, "u1", brokers.HDFCSecurities)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSyncBrokerReportsTupleFailures(t *testing.T) {
	f := newBrokerSyncFixture(t, hdfcMappings())
	ctx := context.Background()
	_, err := f.svc.CreateSession(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSessionRequest{Password: "pw"})
	require.NoError(t, err)

	f.holdings.insertErr = errors.New("disk full")
	resp, err := f.svc.SyncBroker(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSyncRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrSyncFailed)
	require.NotNil(t, resp)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "insert", resp.Errors[0].Stage)
}

func TestSyncAllSkipsBrokersWithoutSession(t *testing.T) {
	mappings := append(hdfcMappings(), models.BrokerMapping{Broker: brokers.Zerodha, MemberID: "m1", AssetClass: models.AssetClassEquity})
	f := newBrokerSyncFixture(t, mappings)
	f.svc.registry.Register(&fakeAdapter{name: brokers.Zerodha})
	ctx := context.Background()
	_, err := f.svc.CreateSession(ctx, "u1", brokers.HDFCSecurities, schemas.BrokerSessionRequest{Password: "pw"})
	require.NoError(t, err)

	responses, err := f.svc.SyncAll(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, brokers.HDFCSecurities, responses[0].Broker)
}

func TestLoginURL(t *testing.T) {
	f := newBrokerSyncFixture(t, hdfcMappings())

	_, err := f.svc.LoginURL(brokers.HDFCSecurities)
	assert.Equal(t, 400, utils.StatusFor(err))

	_, err = f.svc.LoginURL("Groww")
	assert.Equal(t, 404, utils.StatusFor(err))
}

func TestMappingsFromConfig(t *testing.T) {
	mappings, err := MappingsFromConfig([]config.BrokerMappingConfig{
		{Broker: brokers.Zerodha, MemberID: "m1", AssetClass: "equity"},
		{Broker: brokers.FundsIndia, MemberID: "m2", AssetClass: "Mutual Funds"},
	})
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, models.AssetClassMutualFund, mappings[1].AssetClass)

	_, err = MappingsFromConfig([]config.BrokerMappingConfig{{Broker: brokers.Zerodha, MemberID: "m1", AssetClass: "crypto"}})
	assert.Error(t, err)
}
