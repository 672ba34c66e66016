package brokers

import (
	"strings"

	"famwealth/src/models"
)

// ClassifyByIndicators is the shared heuristic: a SIP flag, an INF-prefixed
// ISIN, a scheme name or a fund house marks a mutual fund. Anything else is
// equity.
func ClassifyByIndicators(record VendorRecord) models.AssetClass {
	if record.Flag("sip_indicator") {
		return models.AssetClassMutualFund
	}
	if strings.HasPrefix(strings.ToUpper(record.String("isin")), "INF") {
		return models.AssetClassMutualFund
	}
	if record.Has("scheme_name", "schemename", "fund_name", "fund_house", "fundhouse") {
		return models.AssetClassMutualFund
	}
	return models.AssetClassEquity
}

// ExtractCommon reads the field names most broker APIs share.
func ExtractCommon(record VendorRecord, class models.AssetClass) Position {
	if class == models.AssetClassMutualFund {
		return Position{
			Symbol:       record.String("scheme_code", "isin"),
			Name:         record.String("scheme_name", "schemename", "fund_name", "company_name"),
			FolioNumber:  record.String("folio", "folio_number", "folio_no"),
			FundHouse:    record.String("fund_house", "fundhouse", "amc_name", "amc"),
			Quantity:     record.Decimal("units", "quantity", "balance_units"),
			AveragePrice: record.Decimal("average_nav", "avg_nav", "average_price", "averagenav"),
			CurrentPrice: record.Decimal("current_nav", "nav", "last_price", "close_price"),
		}
	}
	return Position{
		Symbol:       record.String("symbol", "tradingsymbol", "stock_code", "security_id"),
		Name:         record.String("company_name", "stock_name", "name"),
		Quantity:     record.Decimal("quantity", "net_quantity", "qty"),
		AveragePrice: record.Decimal("average_price", "avg_price", "averageprice"),
		CurrentPrice: record.Decimal("current_price", "last_price", "ltp", "close_price"),
	}
}
