package usecase

import (
	"context"
	"fmt"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// DiscoverComplexesUseCase walks the complex-list endpoint region by region
// and inserts every complex the target table does not know yet. This is how
// a complex enters the system in the first place; the reconciliation pass
// only covers codes already present in the legacy reference table.
type DiscoverComplexesUseCase struct {
	api       port.GovAPIPort
	storage   port.ComplexStoragePort
	batchSize int
}

func NewDiscoverComplexesUseCase(api port.GovAPIPort, storage port.ComplexStoragePort, batchSize int) *DiscoverComplexesUseCase {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &DiscoverComplexesUseCase{
		api:       api,
		storage:   storage,
		batchSize: batchSize,
	}
}

func (uc *DiscoverComplexesUseCase) Execute(ctx context.Context, regionCodes []string) (*domain.SyncReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "DiscoverComplexes",
	})
	report := domain.NewSyncReport()

	if len(regionCodes) == 0 {
		for _, region := range constants.AllSigunguCodes() {
			regionCodes = append(regionCodes, region.Code)
		}
	}

	targetCodes, err := uc.storage.ListTargetCodes(ctx)
	if err != nil {
		logger.Error("Could not list target codes", err, nil)
		return nil, fmt.Errorf("discover: list target codes: %w", err)
	}

	logger.Info("Starting complex discovery", port.Fields{
		"regions":      len(regionCodes),
		"target_count": len(targetCodes),
	})

	// Codes can repeat across pages and regions, the first occurrence wins.
	seen := make(map[string]struct{})
	var pending []domain.ApartmentComplex

	for _, code := range regionCodes {
		if err := ctx.Err(); err != nil {
			return report.Finish(), err
		}

		fetched := 0
		for page := 1; ; page++ {
			result, err := uc.api.FetchComplexList(ctx, code, page)
			if err != nil {
				logger.Error("Aborting discovery", err, port.Fields{"region": code, "page": page})
				return report.Finish(), err
			}
			if len(result.Summaries) == 0 {
				break
			}
			fetched += len(result.Summaries)

			for _, summary := range result.Summaries {
				report.AddProcessed(1)
				if summary.KaptCode == "" {
					report.AddFailure("", stringOrEmpty(summary.Name), "list row without kaptCode")
					continue
				}
				if _, ok := seen[summary.KaptCode]; ok {
					report.AddSkipped(1)
					continue
				}
				seen[summary.KaptCode] = struct{}{}
				if _, ok := targetCodes[summary.KaptCode]; ok {
					report.AddSkipped(1)
					continue
				}
				pending = append(pending, domain.ApartmentComplex{
					KaptCode:   summary.KaptCode,
					Name:       summary.Name,
					Address:    summary.Address,
					BjdCode:    summary.BjdCode,
					DataSource: "list",
				})
			}

			if len(pending) >= uc.batchSize {
				if err := uc.flush(ctx, &pending, report); err != nil {
					return report.Finish(), err
				}
			}

			if result.TotalCount > 0 && fetched >= result.TotalCount {
				break
			}
		}
	}

	if err := uc.flush(ctx, &pending, report); err != nil {
		return report.Finish(), err
	}

	report.Finish()
	logger.Info("Discovery finished", port.Fields{
		"processed": report.Processed,
		"inserted":  report.Inserted,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	})
	return report, nil
}

// flush writes the accumulated records in batchSize groups and folds the
// storage stats into the report.
func (uc *DiscoverComplexesUseCase) flush(ctx context.Context, pending *[]domain.ApartmentComplex, report *domain.SyncReport) error {
	records := *pending
	for start := 0; start < len(records); start += uc.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + uc.batchSize
		if end > len(records) {
			end = len(records)
		}
		stats, err := uc.storage.BatchInsertComplexes(ctx, records[start:end])
		if err != nil {
			return fmt.Errorf("discover: batch insert: %w", err)
		}
		report.AddInserted(stats.Inserted)
		report.AddSkipped(stats.Skipped)
		for _, f := range stats.Failed {
			report.AddFailure(f.Key, f.Name, f.Message)
		}
	}
	// Batches keep referencing the old backing array, start a fresh one.
	*pending = nil
	return nil
}
