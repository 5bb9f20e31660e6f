package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"apt-sync-service/internal/core/domain"
)

// UpsertFeeRecord stores one monthly fee snapshot. Re-pulling the same month
// replaces the snapshot wholesale: the per-category breakdown lives in a
// JSONB column and totals are denormalized for cheap querying.
func (a *PostgresStorageAdapter) UpsertFeeRecord(ctx context.Context, record domain.ManagementFeeRecord) error {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("UpsertFeeRecord: marshal items for %s/%s: %w", record.KaptCode, record.YearMonth, err)
	}

	sql := `
		INSERT INTO management_fees (
			kapt_code, fee_month, items, common_total, individual_total, total_fee, fetched_at
		)
		VALUES ($1::TEXT, $2::TEXT, $3::JSONB, $4::BIGINT, $5::BIGINT, $6::BIGINT, $7::TIMESTAMPTZ)
		ON CONFLICT (kapt_code, fee_month)
		DO UPDATE SET
			items = EXCLUDED.items,
			common_total = EXCLUDED.common_total,
			individual_total = EXCLUDED.individual_total,
			total_fee = EXCLUDED.total_fee,
			fetched_at = EXCLUDED.fetched_at`

	_, err = a.pool.Exec(ctx, sql,
		record.KaptCode, record.YearMonth, items,
		record.CommonTotal, record.IndividualTotal, record.TotalFee,
		record.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("UpsertFeeRecord: upsert %s/%s: %w", record.KaptCode, record.YearMonth, err)
	}
	return nil
}
