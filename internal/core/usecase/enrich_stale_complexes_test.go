package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
	"apt-sync-service/internal/core/usecase"
)

func TestEnrichStaleComplexes_MergesBothEndpoints(t *testing.T) {
	name := "기본이름"
	security := 12
	storage := &fakeComplexStorage{
		stale: []domain.ComplexSummary{
			summary("A1", "", ""),
			summary("A2", "", ""),
		},
	}
	api := &fakeGovAPI{
		fetchComplexBasicFn: func(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
			return &domain.ApartmentComplex{Name: &name}, nil
		},
		fetchComplexDetailFn: func(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
			return &domain.ApartmentComplex{SecurityCount: &security}, nil
		},
	}

	uc := usecase.NewEnrichStaleComplexesUseCase(api, storage, 5, 0, 30*24*time.Hour)
	report, err := uc.Execute(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 2, report.Updated)
	require.Len(t, storage.upserts, 2)

	for _, rec := range storage.upserts {
		assert.NotEmpty(t, rec.KaptCode)
		require.NotNil(t, rec.Name)
		assert.Equal(t, name, *rec.Name)
		require.NotNil(t, rec.SecurityCount)
		assert.Equal(t, security, *rec.SecurityCount)
	}
}

func TestEnrichStaleComplexes_SkipsWhenAPIHasNothing(t *testing.T) {
	storage := &fakeComplexStorage{
		stale: []domain.ComplexSummary{summary("A1", "", "")},
	}

	uc := usecase.NewEnrichStaleComplexesUseCase(&fakeGovAPI{}, storage, 5, 0, time.Hour)
	report, err := uc.Execute(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Updated)
	assert.Empty(t, storage.upserts)
}

func TestEnrichStaleComplexes_HonorsLimit(t *testing.T) {
	var stale []domain.ComplexSummary
	for i := 0; i < 10; i++ {
		stale = append(stale, summary(fmt.Sprintf("A%d", i), "", ""))
	}
	storage := &fakeComplexStorage{stale: stale}
	name := "이름"
	api := &fakeGovAPI{
		fetchComplexBasicFn: func(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
			return &domain.ApartmentComplex{Name: &name}, nil
		},
	}

	uc := usecase.NewEnrichStaleComplexesUseCase(api, storage, 3, 0, time.Hour)
	report, err := uc.Execute(context.Background(), 4)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Processed)
	assert.Len(t, storage.upserts, 4)
}

func TestEnrichStaleComplexes_ServiceKeyAbortsRun(t *testing.T) {
	storage := &fakeComplexStorage{
		stale: []domain.ComplexSummary{
			summary("A1", "", ""),
			summary("A2", "", ""),
		},
	}
	api := &fakeGovAPI{
		fetchComplexBasicFn: func(ctx context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
			return nil, fmt.Errorf("result code 22: %w", port.ErrServiceKey)
		},
	}

	uc := usecase.NewEnrichStaleComplexesUseCase(api, storage, 1, 0, time.Hour)
	report, err := uc.Execute(context.Background(), 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, port.ErrServiceKey))
	require.NotNil(t, report)
	assert.Empty(t, storage.upserts)
}

func TestEnrichStaleComplexes_CancelledContextStopsBetweenChunks(t *testing.T) {
	storage := &fakeComplexStorage{
		stale: []domain.ComplexSummary{
			summary("A1", "", ""),
			summary("A2", "", ""),
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	name := "이름"
	api := &fakeGovAPI{
		fetchComplexBasicFn: func(_ context.Context, kaptCode string) (*domain.ApartmentComplex, error) {
			cancel() // cancel while the first chunk is in flight
			return &domain.ApartmentComplex{Name: &name}, nil
		},
	}

	uc := usecase.NewEnrichStaleComplexesUseCase(api, storage, 1, 0, time.Hour)
	_, err := uc.Execute(ctx, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, storage.upserts, 1, "only the first chunk completes")
}
