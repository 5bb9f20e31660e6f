package usecases_port

import (
	"context"

	"apt-sync-service/internal/core/domain"
)

type DiscoverComplexesUseCase interface {
	// Execute walks the complex-list endpoint for the given sigungu codes
	// (empty means all) and inserts complexes not stored yet.
	Execute(ctx context.Context, regionCodes []string) (*domain.SyncReport, error)
}

type ReconcileComplexesUseCase interface {
	Execute(ctx context.Context) (*domain.SyncReport, error)
}

type EnrichStaleComplexesUseCase interface {
	Execute(ctx context.Context, limit int) (*domain.SyncReport, error)
}

type SyncTransactionsUseCase interface {
	// Execute pulls trade and rent transactions for every (region, month)
	// pair. Empty regions means all configured regions.
	Execute(ctx context.Context, months []string, regionCodes []string) (*domain.SyncReport, error)
}

type SyncManagementFeesUseCase interface {
	Execute(ctx context.Context, yearMonth string, limit int) (*domain.SyncReport, error)
}
