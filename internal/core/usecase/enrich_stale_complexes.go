package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// EnrichStaleComplexesUseCase re-fetches basic and detail records for target
// rows that are stale or incomplete and upserts them under the non-null
// overwrite policy. Complexes are processed in small concurrent chunks with a
// pause between chunks, the API client does the per-request throttling.
type EnrichStaleComplexesUseCase struct {
	api        port.GovAPIPort
	storage    port.ComplexStoragePort
	chunkSize  int
	chunkDelay time.Duration
	staleAfter time.Duration
}

func NewEnrichStaleComplexesUseCase(
	api port.GovAPIPort,
	storage port.ComplexStoragePort,
	chunkSize int,
	chunkDelay time.Duration,
	staleAfter time.Duration,
) *EnrichStaleComplexesUseCase {
	if chunkSize <= 0 {
		chunkSize = 5
	}
	return &EnrichStaleComplexesUseCase{
		api:        api,
		storage:    storage,
		chunkSize:  chunkSize,
		chunkDelay: chunkDelay,
		staleAfter: staleAfter,
	}
}

func (uc *EnrichStaleComplexesUseCase) Execute(ctx context.Context, limit int) (*domain.SyncReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "EnrichStaleComplexes",
	})
	report := domain.NewSyncReport()

	cutoff := time.Now().UTC().Add(-uc.staleAfter)
	stale, err := uc.storage.ListStaleComplexes(ctx, cutoff, limit)
	if err != nil {
		logger.Error("Could not list stale complexes", err, nil)
		return nil, fmt.Errorf("enrich: list stale complexes: %w", err)
	}

	logger.Info("Starting enrichment", port.Fields{
		"stale_count": len(stale),
		"chunk_size":  uc.chunkSize,
	})

	for start := 0; start < len(stale); start += uc.chunkSize {
		if err := ctx.Err(); err != nil {
			return report.Finish(), err
		}

		end := start + uc.chunkSize
		if end > len(stale) {
			end = len(stale)
		}
		chunk := stale[start:end]

		var wg sync.WaitGroup
		abortErrs := make([]error, len(chunk))
		for i, summary := range chunk {
			wg.Add(1)
			go func(i int, summary domain.ComplexSummary) {
				defer wg.Done()
				abortErrs[i] = uc.enrichOne(ctx, summary, report)
			}(i, summary)
		}
		wg.Wait()

		for _, err := range abortErrs {
			if err != nil {
				logger.Error("Aborting enrichment", err, nil)
				return report.Finish(), err
			}
		}

		if uc.chunkDelay > 0 && end < len(stale) {
			select {
			case <-ctx.Done():
				return report.Finish(), ctx.Err()
			case <-time.After(uc.chunkDelay):
			}
		}
	}

	report.Finish()
	logger.Info("Enrichment finished", port.Fields{
		"processed": report.Processed,
		"updated":   report.Updated,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	})
	return report, nil
}

// enrichOne fetches both complex endpoints, merges them and upserts the
// result. A non-nil return aborts the whole run (service key revoked or
// context cancelled), record-level failures only mark the report.
func (uc *EnrichStaleComplexesUseCase) enrichOne(ctx context.Context, summary domain.ComplexSummary, report *domain.SyncReport) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":  "EnrichStaleComplexes",
		"kapt_code": summary.KaptCode,
	})
	report.AddProcessed(1)

	basic, err := uc.api.FetchComplexBasic(ctx, summary.KaptCode)
	if err != nil {
		return err
	}
	detail, err := uc.api.FetchComplexDetail(ctx, summary.KaptCode)
	if err != nil {
		return err
	}
	if basic == nil && detail == nil {
		logger.Debug("No API data for complex, skipping", nil)
		report.AddSkipped(1)
		return nil
	}

	merged := domain.MergeComplex(basic, detail)
	merged.KaptCode = summary.KaptCode

	if err := uc.storage.UpsertComplexMerge(ctx, *merged); err != nil {
		logger.Warn("Upsert failed for complex", port.Fields{"error": err.Error()})
		report.AddFailure(summary.KaptCode, stringOrEmpty(merged.Name), err.Error())
		return nil
	}
	report.AddUpdated(1)
	return nil
}
