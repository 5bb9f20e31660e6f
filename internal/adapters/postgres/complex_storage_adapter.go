package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgconn"
)

// complexColumns is the target-table column set, aligned with complexRow.
// kapt_code leads because it is the conflict target.
var complexColumns = []string{
	"kapt_code", "name", "address", "road_address", "bjd_code",
	"apt_type", "sale_type", "heat_type", "manage_type", "hall_type", "use_date",
	"total_area", "manage_area", "private_area",
	"dong_count", "unit_count", "top_floor", "base_floor",
	"units_under_60", "units_60_85", "units_85_135", "units_over_135",
	"build_company", "develop_company", "manage_company",
	"tel", "fax", "url",
	"manager_count", "security_count", "cleaner_count",
	"elevator_count", "parking_ground", "parking_underground", "cctv_count",
	"ev_charger_ground", "ev_charger_basement",
	"welfare_facility_raw", "convenient_facility_raw", "education_facility_raw",
	"convenient_facilities", "education_facilities",
	"bus_stop_walk_time", "subway_line", "subway_station", "subway_walk_time",
	"data_source",
}

func complexRow(c domain.ApartmentComplex) []interface{} {
	return []interface{}{
		c.KaptCode, c.Name, c.Address, c.RoadAddress, c.BjdCode,
		c.AptType, c.SaleType, c.HeatType, c.ManageType, c.HallType, c.UseDate,
		c.TotalArea, c.ManageArea, c.PrivateArea,
		c.DongCount, c.UnitCount, c.TopFloor, c.BaseFloor,
		c.UnitsUnder60, c.Units60to85, c.Units85to135, c.UnitsOver135,
		c.BuildCompany, c.DevelopCompany, c.ManageCompany,
		c.Tel, c.Fax, c.URL,
		c.ManagerCount, c.SecurityCount, c.CleanerCount,
		c.ElevatorCount, c.ParkingGround, c.ParkingUnderground, c.CCTVCount,
		c.EVChargerGround, c.EVChargerBasement,
		c.WelfareFacilityRaw, c.ConvenientFacilityRaw, c.EducationFacilityRaw,
		c.ConvenientFacilities, c.EducationFacilities,
		c.BusStopWalkTime, c.SubwayLine, c.SubwayStation, c.SubwayWalkTime,
		nullableDataSource(c.DataSource),
	}
}

func nullableDataSource(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

// ListReferenceComplexes pages through the legacy reference table.
func (a *PostgresStorageAdapter) ListReferenceComplexes(ctx context.Context) ([]domain.ComplexSummary, error) {
	var out []domain.ComplexSummary

	for offset := 0; ; offset += a.pageSize {
		rows, err := a.pool.Query(ctx, `
			SELECT kapt_code, name, address, bjd_code
			FROM apartments
			ORDER BY kapt_code
			LIMIT $1 OFFSET $2`, a.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to query reference complexes: %w", err)
		}

		count := 0
		for rows.Next() {
			var s domain.ComplexSummary
			if err := rows.Scan(&s.KaptCode, &s.Name, &s.Address, &s.BjdCode); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan reference complex: %w", err)
			}
			out = append(out, s)
			count++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed reading reference complexes: %w", err)
		}
		if count < a.pageSize {
			return out, nil
		}
	}
}

// ListTargetCodes pages through the target table and returns the business
// key set.
func (a *PostgresStorageAdapter) ListTargetCodes(ctx context.Context) (map[string]struct{}, error) {
	codes := make(map[string]struct{})

	for offset := 0; ; offset += a.pageSize {
		rows, err := a.pool.Query(ctx, `
			SELECT kapt_code
			FROM apartment_complexes
			ORDER BY kapt_code
			LIMIT $1 OFFSET $2`, a.pageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to query target codes: %w", err)
		}

		count := 0
		for rows.Next() {
			var code string
			if err := rows.Scan(&code); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan target code: %w", err)
			}
			codes[code] = struct{}{}
			count++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed reading target codes: %w", err)
		}
		if count < a.pageSize {
			return codes, nil
		}
	}
}

// BatchInsertComplexes inserts rows that do not exist yet. A chunk failure
// falls back to row-by-row inserts so one bad record cannot sink its
// neighbors; only a dead connection aborts the whole write.
func (a *PostgresStorageAdapter) BatchInsertComplexes(ctx context.Context, complexes []domain.ApartmentComplex) (*domain.BatchStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresStorageAdapter", "method": "BatchInsertComplexes",
	})

	stats := &domain.BatchStats{}
	if len(complexes) == 0 {
		return stats, nil
	}

	sql := fmt.Sprintf(`
		INSERT INTO apartment_complexes (%s, created_at, updated_at)
		VALUES %s
		ON CONFLICT (kapt_code) DO NOTHING`,
		strings.Join(complexColumns, ", "),
		insertValuesWithTimestamps(len(complexes), len(complexColumns)))

	args := make([][]interface{}, len(complexes))
	for i, c := range complexes {
		args[i] = complexRow(c)
	}

	tag, err := a.pool.Exec(ctx, sql, flatten(args)...)
	if err == nil {
		inserted := int(tag.RowsAffected())
		stats.Inserted = inserted
		stats.Skipped = len(complexes) - inserted
		return stats, nil
	}

	if !isRecordLevelError(err) {
		return nil, fmt.Errorf("batch insert failed: %w", err)
	}

	logger.Warn("Batch insert rejected, retrying row by row", port.Fields{
		"batch_size": len(complexes), "error": err.Error(),
	})

	rowSQL := fmt.Sprintf(`
		INSERT INTO apartment_complexes (%s, created_at, updated_at)
		VALUES (%s, NOW(), NOW())
		ON CONFLICT (kapt_code) DO NOTHING`,
		strings.Join(complexColumns, ", "), placeholders(len(complexColumns)))

	for _, c := range complexes {
		tag, rowErr := a.pool.Exec(ctx, rowSQL, complexRow(c)...)
		if rowErr != nil {
			if !isRecordLevelError(rowErr) {
				return nil, fmt.Errorf("insert of %s failed with connection error: %w", c.KaptCode, rowErr)
			}
			stats.Failed = append(stats.Failed, domain.SyncError{
				Key:        c.KaptCode,
				Name:       stringValue(c.Name),
				Message:    rowErr.Error(),
				OccurredAt: time.Now().UTC(),
			})
			continue
		}
		if tag.RowsAffected() > 0 {
			stats.Inserted++
		} else {
			stats.Skipped++
		}
	}
	return stats, nil
}

// insertValuesWithTimestamps builds multi-row VALUES groups where every row
// ends with NOW(), NOW() for created_at/updated_at.
func insertValuesWithTimestamps(rows, cols int) string {
	groups := make([]string, rows)
	idx := 1
	for i := 0; i < rows; i++ {
		ph := make([]string, cols)
		for j := 0; j < cols; j++ {
			ph[j] = fmt.Sprintf("$%d", idx)
			idx++
		}
		groups[i] = "(" + strings.Join(ph, ", ") + ", NOW(), NOW())"
	}
	return strings.Join(groups, ", ")
}

// UpsertComplexMerge writes one row under the non-null overwrite policy. The
// merge is resolved inside the statement (COALESCE against the stored row),
// so overlapping runs cannot lose an update through read-then-write.
func (a *PostgresStorageAdapter) UpsertComplexMerge(ctx context.Context, record domain.ApartmentComplex) error {
	if _, err := a.pool.Exec(ctx, complexMergeUpsertSQL(), complexRow(record)...); err != nil {
		return fmt.Errorf("failed to upsert complex %s: %w", record.KaptCode, err)
	}
	return nil
}

// complexMergeUpsertSQL renders the merge statement. Every non-key column is
// assigned through COALESCE so a NULL in the incoming row can never clobber a
// stored value.
func complexMergeUpsertSQL() string {
	assignments := make([]string, 0, len(complexColumns))
	for _, col := range complexColumns[1:] { // skip the conflict key
		assignments = append(assignments,
			fmt.Sprintf("%s = COALESCE(EXCLUDED.%s, apartment_complexes.%s)", col, col, col))
	}
	assignments = append(assignments, "updated_at = NOW()")

	return fmt.Sprintf(`
		INSERT INTO apartment_complexes (%s, created_at, updated_at)
		VALUES (%s, NOW(), NOW())
		ON CONFLICT (kapt_code) DO UPDATE SET %s`,
		strings.Join(complexColumns, ", "),
		placeholders(len(complexColumns)),
		strings.Join(assignments, ", "))
}

// ListStaleComplexes returns rows last touched before the cutoff or still
// missing key enrichment fields, oldest first.
func (a *PostgresStorageAdapter) ListStaleComplexes(ctx context.Context, cutoff time.Time, limit int) ([]domain.ComplexSummary, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT kapt_code, name, address, bjd_code
		FROM apartment_complexes
		WHERE updated_at < $1
		   OR name IS NULL
		   OR address IS NULL
		   OR unit_count IS NULL
		ORDER BY updated_at ASC
		LIMIT $2`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale complexes: %w", err)
	}
	defer rows.Close()

	var out []domain.ComplexSummary
	for rows.Next() {
		var s domain.ComplexSummary
		if err := rows.Scan(&s.KaptCode, &s.Name, &s.Address, &s.BjdCode); err != nil {
			return nil, fmt.Errorf("failed to scan stale complex: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading stale complexes: %w", err)
	}
	return out, nil
}

// isRecordLevelError distinguishes "this record was rejected" (constraint or
// data errors, safe to continue) from a lost connection (abort the run).
func isRecordLevelError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
