package usecase_test

import (
	"context"
	"time"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// Hand-rolled fakes: function fields override just the calls a test cares
// about, everything else answers "no data".

type fakeGovAPI struct {
	fetchComplexListFn   func(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error)
	fetchComplexBasicFn  func(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error)
	fetchComplexDetailFn func(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error)
	fetchTradesFn        func(ctx context.Context, lawdCd, yearMonth string) ([]domain.TradeTransaction, error)
	fetchRentsFn         func(ctx context.Context, lawdCd, yearMonth string) ([]domain.RentTransaction, error)
	fetchFeeItemFn       func(ctx context.Context, kaptCode, yearMonth string, category constants.FeeCategory) (*int64, error)
}

func (f *fakeGovAPI) FetchComplexList(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
	if f.fetchComplexListFn != nil {
		return f.fetchComplexListFn(ctx, sigunguCode, page)
	}
	return &port.ComplexPage{}, nil
}

func (f *fakeGovAPI) FetchComplexBasic(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
	if f.fetchComplexBasicFn != nil {
		return f.fetchComplexBasicFn(ctx, kaptCode)
	}
	return nil, nil
}

func (f *fakeGovAPI) FetchComplexDetail(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
	if f.fetchComplexDetailFn != nil {
		return f.fetchComplexDetailFn(ctx, kaptCode)
	}
	return nil, nil
}

func (f *fakeGovAPI) FetchTrades(ctx context.Context, lawdCd, yearMonth string) ([]domain.TradeTransaction, error) {
	if f.fetchTradesFn != nil {
		return f.fetchTradesFn(ctx, lawdCd, yearMonth)
	}
	return nil, nil
}

func (f *fakeGovAPI) FetchRents(ctx context.Context, lawdCd, yearMonth string) ([]domain.RentTransaction, error) {
	if f.fetchRentsFn != nil {
		return f.fetchRentsFn(ctx, lawdCd, yearMonth)
	}
	return nil, nil
}

func (f *fakeGovAPI) FetchFeeItem(ctx context.Context, kaptCode, yearMonth string, category constants.FeeCategory) (*int64, error) {
	if f.fetchFeeItemFn != nil {
		return f.fetchFeeItemFn(ctx, kaptCode, yearMonth, category)
	}
	return nil, nil
}

type fakeComplexStorage struct {
	references []domain.ComplexSummary
	targets    map[string]struct{}
	stale      []domain.ComplexSummary

	batchInsertFn func(ctx context.Context, complexes []domain.ApartmentComplex) (*domain.BatchStats, error)

	insertedBatches [][]domain.ApartmentComplex
	upserts         []domain.ApartmentComplex
}

func (f *fakeComplexStorage) ListReferenceComplexes(ctx context.Context) ([]domain.ComplexSummary, error) {
	return f.references, nil
}

func (f *fakeComplexStorage) ListTargetCodes(ctx context.Context) (map[string]struct{}, error) {
	if f.targets == nil {
		return map[string]struct{}{}, nil
	}
	return f.targets, nil
}

func (f *fakeComplexStorage) BatchInsertComplexes(ctx context.Context, complexes []domain.ApartmentComplex) (*domain.BatchStats, error) {
	f.insertedBatches = append(f.insertedBatches, complexes)
	if f.batchInsertFn != nil {
		return f.batchInsertFn(ctx, complexes)
	}
	return &domain.BatchStats{Inserted: len(complexes)}, nil
}

func (f *fakeComplexStorage) UpsertComplexMerge(ctx context.Context, record domain.ApartmentComplex) error {
	f.upserts = append(f.upserts, record)
	return nil
}

func (f *fakeComplexStorage) ListStaleComplexes(ctx context.Context, cutoff time.Time, limit int) ([]domain.ComplexSummary, error) {
	if limit > 0 && len(f.stale) > limit {
		return f.stale[:limit], nil
	}
	return f.stale, nil
}

type fakeTransactionStorage struct {
	trades []domain.TradeTransaction
	rents  []domain.RentTransaction
}

func (f *fakeTransactionStorage) UpsertTrades(ctx context.Context, trades []domain.TradeTransaction) (*domain.BatchStats, error) {
	f.trades = append(f.trades, trades...)
	return &domain.BatchStats{Inserted: len(trades)}, nil
}

func (f *fakeTransactionStorage) UpsertRents(ctx context.Context, rents []domain.RentTransaction) (*domain.BatchStats, error) {
	f.rents = append(f.rents, rents...)
	return &domain.BatchStats{Inserted: len(rents)}, nil
}

type fakeFeeStorage struct {
	records  []domain.ManagementFeeRecord
	upsertFn func(ctx context.Context, record domain.ManagementFeeRecord) error
}

func (f *fakeFeeStorage) UpsertFeeRecord(ctx context.Context, record domain.ManagementFeeRecord) error {
	if f.upsertFn != nil {
		if err := f.upsertFn(ctx, record); err != nil {
			return err
		}
	}
	f.records = append(f.records, record)
	return nil
}

func summary(code, name, addr string) domain.ComplexSummary {
	s := domain.ComplexSummary{KaptCode: code}
	if name != "" {
		s.Name = &name
	}
	if addr != "" {
		s.Address = &addr
	}
	return s
}
