package postgres

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorageAdapter implements the storage ports on top of a pgx pool.
// The backing store caps result sets, so every full-table read pages with a
// fixed page size instead of assuming one unbounded query returns everything.
type PostgresStorageAdapter struct {
	pool     *pgxpool.Pool
	pageSize int
}

func NewPostgresStorageAdapter(pool *pgxpool.Pool, pageSize int) *PostgresStorageAdapter {
	if pageSize <= 0 {
		pageSize = 1000
	}
	return &PostgresStorageAdapter{pool: pool, pageSize: pageSize}
}

// buildValuesPlaceholders renders the VALUES groups for a multi-row insert
// with explicit type casts, e.g. "($1::TEXT, $2::BIGINT), ($3::TEXT, ...)".
func buildValuesPlaceholders(types []string, rows int) string {
	if rows == 0 || len(types) == 0 {
		return ""
	}

	rowPlaceholders := make([]string, rows)
	paramIndex := 1

	for i := 0; i < rows; i++ {
		colPlaceholders := make([]string, len(types))
		for j := range types {
			colPlaceholders[j] = fmt.Sprintf("$%d::%s", paramIndex, types[j])
			paramIndex++
		}
		rowPlaceholders[i] = fmt.Sprintf("(%s)", strings.Join(colPlaceholders, ", "))
	}

	return strings.Join(rowPlaceholders, ", ")
}

func flatten(data [][]interface{}) []interface{} {
	if len(data) == 0 {
		return nil
	}

	flat := make([]interface{}, 0, len(data)*len(data[0]))
	for _, row := range data {
		flat = append(flat, row...)
	}
	return flat
}
