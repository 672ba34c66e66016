package brokers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"famwealth/src/clients/brokers"
	"famwealth/src/models"
	"famwealth/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorRecordLookups(t *testing.T) {
	records, err := brokers.DecodeRecords([]byte(`[{"units": 12.345, "nav": "1,024.50", "folio": "", "folio_number": "F9", "flag": "Y"}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]

	assert.True(t, decimal.RequireFromString("12.345").Equal(r.Decimal("quantity", "units")))
	assert.True(t, decimal.RequireFromString("1024.50").Equal(r.Decimal("nav")))
	assert.True(t, r.Decimal("missing").IsZero())
	assert.Equal(t, "F9", r.String("folio", "folio_number"))
	assert.True(t, r.Flag("flag"))
	assert.False(t, r.Has("folio"))
}

func TestClassifyByIndicators(t *testing.T) {
	cases := []struct {
		name   string
		record brokers.VendorRecord
		want   models.AssetClass
	}{
		{"scheme name without symbol", brokers.VendorRecord{"scheme_name": "Axis Bluechip"}, models.AssetClassMutualFund},
		{"sip indicator", brokers.VendorRecord{"company_name": "X", "sip_indicator": "Y"}, models.AssetClassMutualFund},
		{"INF isin", brokers.VendorRecord{"isin": "inf846k01dp8"}, models.AssetClassMutualFund},
		{"fund house", brokers.VendorRecord{"fundhouse": "HDFC AMC"}, models.AssetClassMutualFund},
		{"plain equity", brokers.VendorRecord{"symbol": "INFY", "isin": "INE009A01021"}, models.AssetClassEquity},
		{"no indicators", brokers.VendorRecord{}, models.AssetClassEquity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, brokers.ClassifyByIndicators(tc.record))
		})
	}
}

func TestExtractCommon(t *testing.T) {
	eq := brokers.ExtractCommon(brokers.VendorRecord{
		"tradingsymbol": "INFY", "quantity": 10.0, "average_price": 100.0, "last_price": 120.0,
	}, models.AssetClassEquity)
	assert.Equal(t, "INFY", eq.Symbol)
	assert.True(t, eq.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, eq.CurrentPrice.Equal(decimal.NewFromInt(120)))

	mf := brokers.ExtractCommon(brokers.VendorRecord{
		"scheme_name": "Parag Parikh Flexi Cap", "units": "50", "average_nav": "40", "current_nav": "44", "amc": "PPFAS",
	}, models.AssetClassMutualFund)
	assert.Equal(t, "Parag Parikh Flexi Cap", mf.Name)
	assert.Equal(t, "PPFAS", mf.FundHouse)
	assert.True(t, mf.Quantity.Equal(decimal.NewFromInt(50)))
}

type stubAdapter struct{ name string }

func (s stubAdapter) Name() string { return s.name }
func (s stubAdapter) Authenticate(context.Context, brokers.Credentials) (*brokers.Session, error) {
	return &brokers.Session{Broker: s.name}, nil
}
func (s stubAdapter) FetchHoldings(context.Context, *brokers.Session) ([]brokers.VendorRecord, error) {
	return nil, nil
}
func (s stubAdapter) Classify(brokers.VendorRecord) models.AssetClass { return models.AssetClassEquity }
func (s stubAdapter) Extract(r brokers.VendorRecord, c models.AssetClass) brokers.Position {
	return brokers.ExtractCommon(r, c)
}

func TestRegistry(t *testing.T) {
	registry := brokers.NewRegistry(stubAdapter{"Zerodha"}, stubAdapter{"FundsIndia"})

	a, err := registry.Get("Zerodha")
	require.NoError(t, err)
	assert.Equal(t, "Zerodha", a.Name())

	_, err = registry.Get("Upstox")
	assert.ErrorIs(t, err, brokers.ErrUnknownBroker)

	assert.Equal(t, []string{"FundsIndia", "Zerodha"}, registry.Names())
}

func TestWrapError(t *testing.T) {
	authErr := brokers.WrapError("Zerodha", "fetch holdings", utils.NewHTTPError(http.StatusForbidden, "TokenException"))
	var ae *utils.AuthenticationError
	assert.True(t, errors.As(authErr, &ae))

	transportErr := brokers.WrapError("Zerodha", "fetch holdings", utils.NewHTTPError(http.StatusServiceUnavailable, "down"))
	var te *utils.TransportError
	require.True(t, errors.As(transportErr, &te))
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)

	assert.Nil(t, brokers.WrapError("Zerodha", "noop", nil))
}
