package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
	"apt-sync-service/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverComplexes_InsertsOnlyUnknownComplexes(t *testing.T) {
	var pagesRequested []int
	api := &fakeGovAPI{
		fetchComplexListFn: func(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
			pagesRequested = append(pagesRequested, page)
			switch page {
			case 1:
				return &port.ComplexPage{
					TotalCount: 3,
					Summaries: []domain.ComplexSummary{
						summary("A1", "한양아파트", "서울 성동구"),
						summary("A2", "무학아파트", "서울 성동구"),
					},
				}, nil
			case 2:
				return &port.ComplexPage{
					TotalCount: 3,
					Summaries:  []domain.ComplexSummary{summary("A3", "행당아파트", "서울 성동구")},
				}, nil
			default:
				return &port.ComplexPage{TotalCount: 3}, nil
			}
		},
	}
	storage := &fakeComplexStorage{targets: map[string]struct{}{"A2": {}}}

	uc := usecase.NewDiscoverComplexesUseCase(api, storage, 50)
	report, err := uc.Execute(context.Background(), []string{"11200"})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, pagesRequested, "pages must be requested in increasing order and stop at totalCount")
	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 2, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.ElementsMatch(t, []string{"A1", "A3"}, insertedCodes(storage))
}

func TestDiscoverComplexes_SeedsRecordFromListRow(t *testing.T) {
	api := &fakeGovAPI{
		fetchComplexListFn: func(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
			if page > 1 {
				return &port.ComplexPage{TotalCount: 1}, nil
			}
			return &port.ComplexPage{
				TotalCount: 1,
				Summaries:  []domain.ComplexSummary{summary("A1", "한양아파트", "서울 성동구")},
			}, nil
		},
	}
	storage := &fakeComplexStorage{}

	uc := usecase.NewDiscoverComplexesUseCase(api, storage, 50)
	_, err := uc.Execute(context.Background(), []string{"11200"})
	require.NoError(t, err)

	require.Len(t, storage.insertedBatches, 1)
	require.Len(t, storage.insertedBatches[0], 1)
	record := storage.insertedBatches[0][0]
	assert.Equal(t, "A1", record.KaptCode)
	require.NotNil(t, record.Name)
	assert.Equal(t, "한양아파트", *record.Name)
	assert.Equal(t, "list", record.DataSource)
}

func TestDiscoverComplexes_EmptyRegionsMeansAllRegions(t *testing.T) {
	regionsSeen := make(map[string]struct{})
	api := &fakeGovAPI{
		fetchComplexListFn: func(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
			regionsSeen[sigunguCode] = struct{}{}
			return &port.ComplexPage{}, nil
		},
	}
	storage := &fakeComplexStorage{}

	uc := usecase.NewDiscoverComplexesUseCase(api, storage, 50)
	report, err := uc.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, regionsSeen, len(constants.AllSigunguCodes()))
	assert.Equal(t, 0, report.Inserted)
}

func TestDiscoverComplexes_DeduplicatesAcrossPages(t *testing.T) {
	api := &fakeGovAPI{
		fetchComplexListFn: func(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
			if page > 2 {
				return &port.ComplexPage{TotalCount: 2}, nil
			}
			// The portal repeats a row across the page boundary.
			return &port.ComplexPage{
				TotalCount: 2,
				Summaries:  []domain.ComplexSummary{summary("A1", "한양아파트", "서울 성동구")},
			}, nil
		},
	}
	storage := &fakeComplexStorage{}

	uc := usecase.NewDiscoverComplexesUseCase(api, storage, 50)
	report, err := uc.Execute(context.Background(), []string{"11200"})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.ElementsMatch(t, []string{"A1"}, insertedCodes(storage))
}

func TestDiscoverComplexes_ServiceKeyErrorAbortsRun(t *testing.T) {
	calls := 0
	api := &fakeGovAPI{
		fetchComplexListFn: func(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
			calls++
			return nil, fmt.Errorf("result code 30: %w", port.ErrServiceKey)
		},
	}
	storage := &fakeComplexStorage{}

	uc := usecase.NewDiscoverComplexesUseCase(api, storage, 50)
	report, err := uc.Execute(context.Background(), []string{"11200", "11110"})
	require.ErrorIs(t, err, port.ErrServiceKey)

	assert.Equal(t, 1, calls, "a rejected key must stop the run, not burn through regions")
	assert.NotNil(t, report)
	assert.Empty(t, storage.insertedBatches)
}

func TestDiscoverComplexes_BatchSizeBoundsInsertChunks(t *testing.T) {
	summaries := make([]domain.ComplexSummary, 0, 5)
	for i := 1; i <= 5; i++ {
		code := fmt.Sprintf("A%d", i)
		summaries = append(summaries, summary(code, "단지"+code, "서울"))
	}
	api := &fakeGovAPI{
		fetchComplexListFn: func(ctx context.Context, sigunguCode string, page int) (*port.ComplexPage, error) {
			if page > 1 {
				return &port.ComplexPage{TotalCount: 5}, nil
			}
			return &port.ComplexPage{TotalCount: 5, Summaries: summaries}, nil
		},
	}
	storage := &fakeComplexStorage{}

	uc := usecase.NewDiscoverComplexesUseCase(api, storage, 2)
	report, err := uc.Execute(context.Background(), []string{"11200"})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Inserted)
	require.Len(t, storage.insertedBatches, 3)
	for _, batch := range storage.insertedBatches {
		assert.LessOrEqual(t, len(batch), 2)
	}
}
