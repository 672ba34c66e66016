package repositories

import (
	"context"
	"fmt"
	"strings"

	"famwealth/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// insertChunkSize keeps multi-row inserts well below the Postgres parameter limit.
const insertChunkSize = 500

type HoldingFilter struct {
	UserID         string
	MemberID       string
	BrokerPlatform string
	AssetClass     models.AssetClass
}

type HoldingRepository interface {
	// DeleteByScope removes every row of the tuple and returns how many went.
	DeleteByScope(ctx context.Context, scope models.SyncScope) (int64, error)
	// InsertBatch writes all holdings of one asset class in a single transaction.
	InsertBatch(ctx context.Context, class models.AssetClass, holdings []models.Holding) error
	List(ctx context.Context, filter HoldingFilter) ([]models.Holding, error)
	DeleteByMember(ctx context.Context, userID, memberID string) (int64, error)
}

type holdingTable struct {
	name    string
	columns []string
}

var holdingTables = map[models.AssetClass]holdingTable{
	models.AssetClassEquity: {
		name: "equity_holdings",
		columns: []string{"user_id", "member_id", "broker_platform", "import_date", "symbol", "company_name",
			"quantity", "average_price", "current_price", "invested_amount", "current_value"},
	},
	models.AssetClassMutualFund: {
		name: "mutual_fund_holdings",
		columns: []string{"user_id", "member_id", "broker_platform", "import_date", "scheme_code", "scheme_name",
			"folio_number", "fund_house", "units", "average_nav", "current_nav", "invested_amount", "current_value"},
	},
}

// Mutual fund columns are aliased to the equity names so one scan serves both.
var holdingSelects = map[models.AssetClass]string{
	models.AssetClassEquity: `SELECT id, user_id, member_id, broker_platform, import_date, symbol, company_name,
		'' AS folio_number, '' AS fund_house, quantity, average_price, current_price, invested_amount, current_value, created_at
		FROM equity_holdings`,
	models.AssetClassMutualFund: `SELECT id, user_id, member_id, broker_platform, import_date, scheme_code, scheme_name,
		folio_number, fund_house, units, average_nav, current_nav, invested_amount, current_value, created_at
		FROM mutual_fund_holdings`,
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func tableFor(class models.AssetClass) (holdingTable, error) {
	table, ok := holdingTables[class]
	if !ok {
		return holdingTable{}, fmt.Errorf("no holdings table for asset class %q", class)
	}
	return table, nil
}

func (r *holdingRepo) DeleteByScope(ctx context.Context, scope models.SyncScope) (int64, error) {
	table, err := tableFor(scope.AssetClass)
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND broker_platform = $2 AND member_id = $3`, table.name),
		scope.UserID, scope.BrokerPlatform, scope.MemberID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *holdingRepo) InsertBatch(ctx context.Context, class models.AssetClass, holdings []models.Holding) error {
	if len(holdings) == 0 {
		return nil
	}
	table, err := tableFor(class)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for start := 0; start < len(holdings); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(holdings) {
			end = len(holdings)
		}
		query, args := buildHoldingInsert(table, class, holdings[start:end])
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func buildHoldingInsert(table holdingTable, class models.AssetClass, holdings []models.Holding) (string, []interface{}) {
	width := len(table.columns)
	args := make([]interface{}, 0, len(holdings)*width)
	valueStrings := make([]string, 0, len(holdings))

	for i, h := range holdings {
		placeholders := make([]string, width)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", i*width+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ", ")+")")

		args = append(args, h.UserID, h.MemberID, h.BrokerPlatform, h.ImportDate, h.Symbol, h.Name)
		if class == models.AssetClassMutualFund {
			args = append(args, h.FolioNumber, h.FundHouse)
		}
		args = append(args, h.Quantity, h.AveragePrice, h.CurrentPrice, h.InvestedAmount, h.CurrentValue)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table.name, strings.Join(table.columns, ", "), strings.Join(valueStrings, ","))
	return query, args
}

func (r *holdingRepo) List(ctx context.Context, filter HoldingFilter) ([]models.Holding, error) {
	classes := []models.AssetClass{models.AssetClassEquity, models.AssetClassMutualFund}
	if filter.AssetClass != "" {
		classes = []models.AssetClass{filter.AssetClass}
	}

	var holdings []models.Holding
	for _, class := range classes {
		selectSQL, ok := holdingSelects[class]
		if !ok {
			return nil, fmt.Errorf("no holdings table for asset class %q", class)
		}
		query, args := filterHoldings(selectSQL, filter)
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		classHoldings, err := scanHoldings(rows, class)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, classHoldings...)
	}
	return holdings, nil
}

func filterHoldings(selectSQL string, filter HoldingFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}
	if filter.MemberID != "" {
		args = append(args, filter.MemberID)
		conditions = append(conditions, fmt.Sprintf("member_id = $%d", len(args)))
	}
	if filter.BrokerPlatform != "" {
		args = append(args, filter.BrokerPlatform)
		conditions = append(conditions, fmt.Sprintf("broker_platform = $%d", len(args)))
	}
	return selectSQL + " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY current_value DESC", args
}

func scanHoldings(rows pgx.Rows, class models.AssetClass) ([]models.Holding, error) {
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		h := models.Holding{AssetClass: class}
		if err := rows.Scan(&h.ID, &h.UserID, &h.MemberID, &h.BrokerPlatform, &h.ImportDate, &h.Symbol, &h.Name,
			&h.FolioNumber, &h.FundHouse, &h.Quantity, &h.AveragePrice, &h.CurrentPrice,
			&h.InvestedAmount, &h.CurrentValue, &h.CreatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) DeleteByMember(ctx context.Context, userID, memberID string) (int64, error) {
	var total int64
	for _, table := range []string{"equity_holdings", "mutual_fund_holdings"} {
		tag, err := r.db.Exec(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND member_id = $2`, table), userID, memberID)
		if err != nil {
			return total, err
		}
		total += tag.RowsAffected()
	}
	return total, nil
}
