package usecase

import (
	"context"
	"fmt"

	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// ReconcileComplexesUseCase makes the target table a superset of the
// reference table: every kaptCode present in the reference ends up in the
// target. Rows already present are left untouched, enrichment is a separate
// pass.
type ReconcileComplexesUseCase struct {
	api       port.GovAPIPort
	storage   port.ComplexStoragePort
	batchSize int
}

func NewReconcileComplexesUseCase(api port.GovAPIPort, storage port.ComplexStoragePort, batchSize int) *ReconcileComplexesUseCase {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ReconcileComplexesUseCase{
		api:       api,
		storage:   storage,
		batchSize: batchSize,
	}
}

func (uc *ReconcileComplexesUseCase) Execute(ctx context.Context) (*domain.SyncReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ReconcileComplexes",
	})
	report := domain.NewSyncReport()

	references, err := uc.storage.ListReferenceComplexes(ctx)
	if err != nil {
		logger.Error("Could not list reference complexes", err, nil)
		return nil, fmt.Errorf("reconcile: list reference complexes: %w", err)
	}

	targetCodes, err := uc.storage.ListTargetCodes(ctx)
	if err != nil {
		logger.Error("Could not list target codes", err, nil)
		return nil, fmt.Errorf("reconcile: list target codes: %w", err)
	}

	// Diff on the business key. The reference table may carry duplicates, the
	// first occurrence wins.
	seen := make(map[string]struct{}, len(references))
	var missing []domain.ComplexSummary
	for _, ref := range references {
		report.AddProcessed(1)
		if ref.KaptCode == "" {
			report.AddFailure("", stringOrEmpty(ref.Name), "reference row without kaptCode")
			continue
		}
		if _, ok := seen[ref.KaptCode]; ok {
			report.AddSkipped(1)
			continue
		}
		seen[ref.KaptCode] = struct{}{}
		if _, ok := targetCodes[ref.KaptCode]; ok {
			report.AddSkipped(1)
			continue
		}
		missing = append(missing, ref)
	}

	logger.Info("Reconciliation diff computed", port.Fields{
		"reference_count": len(references),
		"target_count":    len(targetCodes),
		"missing_count":   len(missing),
	})

	for start := 0; start < len(missing); start += uc.batchSize {
		if err := ctx.Err(); err != nil {
			return report.Finish(), err
		}

		end := start + uc.batchSize
		if end > len(missing) {
			end = len(missing)
		}

		records := make([]domain.ApartmentComplex, 0, end-start)
		for _, summary := range missing[start:end] {
			record, err := uc.seedRecord(ctx, summary)
			if err != nil {
				// Only a revoked service key or cancellation escapes the API
				// port, both invalidate the rest of the run.
				logger.Error("Aborting reconciliation", err, port.Fields{"kapt_code": summary.KaptCode})
				return report.Finish(), err
			}
			records = append(records, record)
		}

		stats, err := uc.storage.BatchInsertComplexes(ctx, records)
		if err != nil {
			logger.Error("Batch insert failed", err, port.Fields{"batch_start": start})
			return report.Finish(), fmt.Errorf("reconcile: batch insert: %w", err)
		}
		report.AddInserted(stats.Inserted)
		report.AddSkipped(stats.Skipped)
		for _, f := range stats.Failed {
			report.AddFailure(f.Key, f.Name, f.Message)
		}
	}

	report.Finish()
	logger.Info("Reconciliation finished", port.Fields{
		"inserted": report.Inserted,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
	})
	return report, nil
}

// seedRecord builds the initial target row for a missing complex. When the
// reference row is complete it is used as-is; otherwise the basic-info
// endpoint fills the gaps. A complex unknown to the API is still inserted
// with whatever the reference had, so the key-set invariant holds.
func (uc *ReconcileComplexesUseCase) seedRecord(ctx context.Context, summary domain.ComplexSummary) (domain.ApartmentComplex, error) {
	record := domain.ApartmentComplex{
		KaptCode:   summary.KaptCode,
		Name:       summary.Name,
		Address:    summary.Address,
		BjdCode:    summary.BjdCode,
		DataSource: "reference",
	}
	if summary.HasRequiredFields() {
		return record, nil
	}

	fetched, err := uc.api.FetchComplexBasic(ctx, summary.KaptCode)
	if err != nil {
		return domain.ApartmentComplex{}, err
	}
	if fetched == nil {
		return record, nil
	}
	merged := domain.MergeComplex(&record, fetched)
	merged.DataSource = fetched.DataSource
	return *merged, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
