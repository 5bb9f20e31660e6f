package postgres

import (
	"context"
	"fmt"
	"time"

	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// Transactions are keyed by their natural composite key so that a monthly
// re-pull is a no-op for rows already stored. Only the cancellation fields
// may change after the fact (a registered deal can be cancelled later).

var tradeColumnTypes = []string{
	"TEXT", "TEXT", "TEXT", "TEXT", // region_code, apt_name, legal_dong, jibun
	"INT", "INT", "INT", // deal_year, deal_month, deal_day
	"BIGINT", "DOUBLE PRECISION", "INT", "INT", // deal_amount, exclusive_area, floor, build_year
	"BOOLEAN", "TEXT", "TIMESTAMPTZ", // cancelled, cancel_date, fetched_at
}

// tradeUpsertSQL renders the n-row trade upsert. On conflict only the
// cancellation fields and fetched_at change; the recorded deal itself is
// immutable.
func tradeUpsertSQL(n int) string {
	return fmt.Sprintf(`
		INSERT INTO trade_transactions (
			region_code, apt_name, legal_dong, jibun,
			deal_year, deal_month, deal_day,
			deal_amount, exclusive_area, floor, build_year,
			cancelled, cancel_date, fetched_at
		)
		VALUES %s
		ON CONFLICT (region_code, apt_name, deal_year, deal_month, deal_day, floor, exclusive_area)
		DO UPDATE SET
			cancelled = EXCLUDED.cancelled,
			cancel_date = EXCLUDED.cancel_date,
			fetched_at = EXCLUDED.fetched_at
		RETURNING (xmax = 0) AS inserted`,
		buildValuesPlaceholders(tradeColumnTypes, n))
}

func (a *PostgresStorageAdapter) UpsertTrades(ctx context.Context, trades []domain.TradeTransaction) (*domain.BatchStats, error) {
	if len(trades) == 0 {
		return &domain.BatchStats{}, nil
	}

	rows := make([][]interface{}, len(trades))
	for i, t := range trades {
		rows[i] = []interface{}{
			t.RegionCode, t.AptName, t.LegalDong, t.Jibun,
			t.DealYear, t.DealMonth, t.DealDay,
			t.DealAmount, t.ExclusiveArea, t.Floor, t.BuildYear,
			t.Cancelled, t.CancelDate, t.FetchedAt,
		}
	}

	return a.runTransactionUpsert(ctx, "UpsertTrades", tradeUpsertSQL, rows, func(i int) (string, string) {
		t := trades[i]
		return fmt.Sprintf("%s|%s|%s|%d", t.RegionCode, t.AptName, t.DealDate(), t.Floor), t.AptName
	})
}

var rentColumnTypes = []string{
	"TEXT", "TEXT", "TEXT", "TEXT",
	"INT", "INT", "INT",
	"BIGINT", "BIGINT", "DOUBLE PRECISION", "INT", "INT",
	"TIMESTAMPTZ",
}

// rentUpsertSQL renders the n-row rent upsert. The deposit is part of the
// natural key (the same unit can appear with different deposits), so on
// conflict only fetched_at moves.
func rentUpsertSQL(n int) string {
	return fmt.Sprintf(`
		INSERT INTO rent_transactions (
			region_code, apt_name, legal_dong, jibun,
			deal_year, deal_month, deal_day,
			deposit, monthly_rent, exclusive_area, floor, build_year,
			fetched_at
		)
		VALUES %s
		ON CONFLICT (region_code, apt_name, deal_year, deal_month, deal_day, floor, exclusive_area, deposit)
		DO UPDATE SET fetched_at = EXCLUDED.fetched_at
		RETURNING (xmax = 0) AS inserted`,
		buildValuesPlaceholders(rentColumnTypes, n))
}

func (a *PostgresStorageAdapter) UpsertRents(ctx context.Context, rents []domain.RentTransaction) (*domain.BatchStats, error) {
	if len(rents) == 0 {
		return &domain.BatchStats{}, nil
	}

	rows := make([][]interface{}, len(rents))
	for i, r := range rents {
		rows[i] = []interface{}{
			r.RegionCode, r.AptName, r.LegalDong, r.Jibun,
			r.DealYear, r.DealMonth, r.DealDay,
			r.Deposit, r.MonthlyRent, r.ExclusiveArea, r.Floor, r.BuildYear,
			r.FetchedAt,
		}
	}

	return a.runTransactionUpsert(ctx, "UpsertRents", rentUpsertSQL, rows, func(i int) (string, string) {
		r := rents[i]
		return fmt.Sprintf("%s|%s|%s|%d", r.RegionCode, r.AptName, r.DealDate(), r.Floor), r.AptName
	})
}

// runTransactionUpsert executes a multi-row upsert and counts inserts vs
// updates via the xmax trick (a freshly inserted row has xmax 0). On a
// record-level rejection it degrades to row-by-row so the rest of the batch
// still lands; only a dead connection aborts.
func (a *PostgresStorageAdapter) runTransactionUpsert(
	ctx context.Context,
	method string,
	buildSQL func(rows int) string,
	rows [][]interface{},
	keyOf func(i int) (key, name string),
) (*domain.BatchStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresStorageAdapter", "method": method,
	})

	stats := &domain.BatchStats{}

	if err := a.scanUpsertResults(ctx, buildSQL(len(rows)), flatten(rows), stats); err == nil {
		return stats, nil
	} else if !isRecordLevelError(err) {
		return nil, fmt.Errorf("%s: batch upsert failed: %w", method, err)
	} else {
		logger.Warn("Batch upsert rejected, retrying row by row", port.Fields{
			"batch_size": len(rows), "error": err.Error(),
		})
	}

	singleSQL := buildSQL(1)
	for i, row := range rows {
		if err := a.scanUpsertResults(ctx, singleSQL, row, stats); err != nil {
			if !isRecordLevelError(err) {
				return nil, fmt.Errorf("%s: row upsert failed with connection error: %w", method, err)
			}
			key, name := keyOf(i)
			stats.Failed = append(stats.Failed, domain.SyncError{
				Key: key, Name: name, Message: err.Error(), OccurredAt: time.Now().UTC(),
			})
		}
	}
	return stats, nil
}

// scanUpsertResults only adds to stats when the whole statement succeeded;
// a failed statement persists nothing, so partial counts would be wrong.
func (a *PostgresStorageAdapter) scanUpsertResults(ctx context.Context, sql string, args []interface{}, stats *domain.BatchStats) error {
	result, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer result.Close()

	var inserts, updates int
	for result.Next() {
		var inserted bool
		if err := result.Scan(&inserted); err != nil {
			return err
		}
		if inserted {
			inserts++
		} else {
			updates++
		}
	}
	if err := result.Err(); err != nil {
		return err
	}
	stats.Inserted += inserts
	stats.Updated += updates
	return nil
}
