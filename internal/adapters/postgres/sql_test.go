package postgres

import (
	"fmt"
	"strings"
	"testing"

	"apt-sync-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The merge must never clobber a stored value with an incoming NULL: every
// non-key column goes through COALESCE against the stored row.
func TestComplexMergeUpsertSQL_CoalescesEveryNonKeyColumn(t *testing.T) {
	sql := complexMergeUpsertSQL()

	parts := strings.SplitN(sql, "DO UPDATE SET", 2)
	require.Len(t, parts, 2, "statement must carry a DO UPDATE clause")
	setClause := parts[1]

	for _, col := range complexColumns[1:] {
		coalesced := fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, apartment_complexes.%s)", col, col, col)
		assert.Contains(t, setClause, coalesced, "column %s must merge through COALESCE", col)

		plain := fmt.Sprintf("%s = EXCLUDED.%s", col, col)
		assert.NotContains(t, setClause, plain, "column %s must not be overwritten unconditionally", col)
	}

	assert.NotContains(t, setClause, "kapt_code =", "the conflict key is never reassigned")
	assert.Contains(t, setClause, "updated_at = NOW()")
	assert.Contains(t, sql, "ON CONFLICT (kapt_code)")
}

func TestComplexMergeUpsertSQL_PlaceholderCountMatchesRow(t *testing.T) {
	sql := complexMergeUpsertSQL()

	// One positional argument per column; complexRow must line up with it.
	assert.Contains(t, sql, fmt.Sprintf("$%d", len(complexColumns)))
	assert.NotContains(t, sql, fmt.Sprintf("$%d", len(complexColumns)+1))
}

func TestBuildValuesPlaceholders(t *testing.T) {
	assert.Equal(t, "($1::TEXT, $2::BIGINT)",
		buildValuesPlaceholders([]string{"TEXT", "BIGINT"}, 1))

	// Numbering continues across rows.
	assert.Equal(t, "($1::TEXT, $2::BIGINT), ($3::TEXT, $4::BIGINT)",
		buildValuesPlaceholders([]string{"TEXT", "BIGINT"}, 2))

	assert.Empty(t, buildValuesPlaceholders([]string{"TEXT"}, 0))
	assert.Empty(t, buildValuesPlaceholders(nil, 3))
}

func TestTradeUpsertSQL_BatchAndFallbackShapes(t *testing.T) {
	single := tradeUpsertSQL(1)
	batch := tradeUpsertSQL(3)

	assert.Contains(t, single, "ON CONFLICT (region_code, apt_name, deal_year, deal_month, deal_day, floor, exclusive_area)")
	assert.Contains(t, single, "RETURNING (xmax = 0) AS inserted")

	// Only the cancellation fields and fetched_at may change on conflict.
	assert.Contains(t, single, "cancelled = EXCLUDED.cancelled")
	assert.Contains(t, single, "cancel_date = EXCLUDED.cancel_date")
	assert.Contains(t, single, "fetched_at = EXCLUDED.fetched_at")
	assert.NotContains(t, single, "deal_amount = EXCLUDED.deal_amount")

	// The row-by-row fallback is the same statement with one VALUES group.
	assert.Contains(t, single, buildValuesPlaceholders(tradeColumnTypes, 1))
	assert.Contains(t, batch, buildValuesPlaceholders(tradeColumnTypes, 3))
	assert.Equal(t, len(tradeColumnTypes), strings.Count(single, "$"))
	assert.Equal(t, 3*len(tradeColumnTypes), strings.Count(batch, "$"))
}

func TestRentUpsertSQL_DepositIsPartOfKey(t *testing.T) {
	sql := rentUpsertSQL(2)

	assert.Contains(t, sql, "ON CONFLICT (region_code, apt_name, deal_year, deal_month, deal_day, floor, exclusive_area, deposit)")
	assert.Contains(t, sql, "DO UPDATE SET fetched_at = EXCLUDED.fetched_at")
	assert.Contains(t, sql, "RETURNING (xmax = 0) AS inserted")
	assert.NotContains(t, sql, "deposit = EXCLUDED.deposit")
	assert.Equal(t, 2*len(rentColumnTypes), strings.Count(sql, "$"))
}

func TestInsertValuesWithTimestamps(t *testing.T) {
	assert.Equal(t, "($1, $2, NOW(), NOW())", insertValuesWithTimestamps(1, 2))
	assert.Equal(t, "($1, $2, NOW(), NOW()), ($3, $4, NOW(), NOW())", insertValuesWithTimestamps(2, 2))
}

func TestComplexRowAlignsWithColumns(t *testing.T) {
	row := complexRow(domain.ApartmentComplex{KaptCode: "A10027875"})
	assert.Len(t, row, len(complexColumns))
}
