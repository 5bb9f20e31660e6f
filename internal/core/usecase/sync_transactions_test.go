package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
	"apt-sync-service/internal/core/usecase"
)

func testTrade(region, month string, day int) domain.TradeTransaction {
	return domain.TradeTransaction{
		RegionCode:    region,
		AptName:       "테스트단지",
		DealYear:      2024,
		DealMonth:     1,
		DealDay:       day,
		DealAmount:    100000,
		ExclusiveArea: 84.97,
		Floor:         5,
		FetchedAt:     time.Now().UTC(),
	}
}

func TestSyncTransactions_CoversEveryRegionMonthPair(t *testing.T) {
	type pair struct{ region, month string }
	var visited []pair

	api := &fakeGovAPI{
		fetchTradesFn: func(ctx context.Context, lawdCd, yearMonth string) ([]domain.TradeTransaction, error) {
			visited = append(visited, pair{lawdCd, yearMonth})
			return []domain.TradeTransaction{testTrade(lawdCd, yearMonth, 5), testTrade(lawdCd, yearMonth, 9)}, nil
		},
		fetchRentsFn: func(ctx context.Context, lawdCd, yearMonth string) ([]domain.RentTransaction, error) {
			return []domain.RentTransaction{{
				RegionCode: lawdCd, AptName: "테스트단지",
				DealYear: 2024, DealMonth: 1, DealDay: 2,
				Deposit: 50000, Floor: 3,
			}}, nil
		},
	}
	storage := &fakeTransactionStorage{}

	uc := usecase.NewSyncTransactionsUseCase(api, storage)
	report, err := uc.Execute(context.Background(), []string{"202401", "202312"}, []string{"11110", "11200"})
	require.NoError(t, err)

	assert.Len(t, visited, 4, "every (region, month) pair fetched once")
	assert.Equal(t, 12, report.Processed, "2 trades + 1 rent per pair")
	assert.Equal(t, 12, report.Inserted)
	assert.Len(t, storage.trades, 8)
	assert.Len(t, storage.rents, 4)
}

func TestSyncTransactions_EmptyRegionsMeansAllConfigured(t *testing.T) {
	regions := map[string]struct{}{}
	api := &fakeGovAPI{
		fetchTradesFn: func(ctx context.Context, lawdCd, yearMonth string) ([]domain.TradeTransaction, error) {
			regions[lawdCd] = struct{}{}
			return nil, nil
		},
	}

	uc := usecase.NewSyncTransactionsUseCase(api, &fakeTransactionStorage{})
	_, err := uc.Execute(context.Background(), []string{"202401"}, nil)
	require.NoError(t, err)

	assert.Len(t, regions, len(constants.AllSigunguCodes()))
}

func TestSyncTransactions_ServiceKeyAborts(t *testing.T) {
	calls := 0
	api := &fakeGovAPI{
		fetchTradesFn: func(ctx context.Context, lawdCd, yearMonth string) ([]domain.TradeTransaction, error) {
			calls++
			return nil, port.ErrServiceKey
		},
	}

	uc := usecase.NewSyncTransactionsUseCase(api, &fakeTransactionStorage{})
	report, err := uc.Execute(context.Background(), []string{"202401"}, []string{"11110", "11200"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrServiceKey))
	assert.Equal(t, 1, calls, "the first auth rejection stops the sweep")
	require.NotNil(t, report)
}

func TestSyncTransactions_EmptyMonthDoesNothing(t *testing.T) {
	storage := &fakeTransactionStorage{}
	uc := usecase.NewSyncTransactionsUseCase(&fakeGovAPI{}, storage)

	report, err := uc.Execute(context.Background(), []string{"202401"}, []string{"11110"})
	require.NoError(t, err)

	assert.Zero(t, report.Processed)
	assert.Empty(t, storage.trades)
	assert.Empty(t, storage.rents)
}
