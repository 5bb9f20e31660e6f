package port

import (
	"context"
	"time"

	"apt-sync-service/internal/core/domain"
)

// ComplexStoragePort is the boundary to the two complex tables: the legacy
// reference table (apartments) and the enriched target table
// (apartment_complexes) the reconciliation keeps complete.
type ComplexStoragePort interface {
	// ListReferenceComplexes pages through the reference table and returns
	// every row as a summary. The backing store caps result sets, so the
	// adapter pages internally.
	ListReferenceComplexes(ctx context.Context) ([]domain.ComplexSummary, error)

	// ListTargetCodes returns the full business-key set of the target table.
	ListTargetCodes(ctx context.Context) (map[string]struct{}, error)

	// BatchInsertComplexes inserts rows that do not exist yet (insert if not
	// exists by kapt_code). A failing row must not sink its batch; failures
	// are reported per key in the returned stats.
	BatchInsertComplexes(ctx context.Context, complexes []domain.ApartmentComplex) (*domain.BatchStats, error)

	// UpsertComplexMerge writes one enriched row under the non-null
	// overwrite policy: a column only changes when the new value is
	// non-null, resolved inside the upsert statement.
	UpsertComplexMerge(ctx context.Context, record domain.ApartmentComplex) error

	// ListStaleComplexes returns target rows not updated since the cutoff or
	// still missing key enrichment fields, oldest first, capped at limit.
	ListStaleComplexes(ctx context.Context, cutoff time.Time, limit int) ([]domain.ComplexSummary, error)
}

// TransactionStoragePort persists trade and rent transactions, keyed by their
// natural composite key so that monthly re-pulls stay idempotent.
type TransactionStoragePort interface {
	UpsertTrades(ctx context.Context, trades []domain.TradeTransaction) (*domain.BatchStats, error)
	UpsertRents(ctx context.Context, rents []domain.RentTransaction) (*domain.BatchStats, error)
}

// FeeStoragePort persists monthly management-fee records keyed by
// (kapt_code, fee_month).
type FeeStoragePort interface {
	UpsertFeeRecord(ctx context.Context, record domain.ManagementFeeRecord) error
}
