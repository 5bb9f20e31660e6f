package port

import (
	"context"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/core/domain"
)

// ComplexPage is one page of the complex-list endpoint.
type ComplexPage struct {
	Summaries  []domain.ComplexSummary
	TotalCount int
}

// GovAPIPort is the boundary to the government data portal. Implementations
// hide transport retries, throttling and envelope-shape variance.
//
// Business-level "no data" is never an error: list calls return an empty
// slice, detail calls return nil. The only errors that escape are
// context cancellation and ErrServiceKey, which must abort the run.
type GovAPIPort interface {
	// FetchComplexList returns one page of complexes for a sigungu code.
	// Pages are positional upstream, callers must request them in increasing
	// order.
	FetchComplexList(ctx context.Context, sigunguCode string, page int) (*ComplexPage, error)

	// FetchComplexBasic returns the basic-info record of one complex.
	FetchComplexBasic(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error)

	// FetchComplexDetail returns the detail-info record of one complex
	// (management, facility and transit fields).
	FetchComplexDetail(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error)

	// FetchTrades returns all trade transactions of one region and month
	// ("YYYYMM"), internally walking every page in order.
	FetchTrades(ctx context.Context, lawdCd, yearMonth string) ([]domain.TradeTransaction, error)

	// FetchRents returns all rent transactions of one region and month.
	FetchRents(ctx context.Context, lawdCd, yearMonth string) ([]domain.RentTransaction, error)

	// FetchFeeItem returns the monthly amount of one fee sub-category, or
	// nil when the complex reported nothing for that category and month.
	FetchFeeItem(ctx context.Context, kaptCode, yearMonth string, category constants.FeeCategory) (*int64, error)
}
