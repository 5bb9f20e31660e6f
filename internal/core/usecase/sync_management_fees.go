package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// SyncManagementFeesUseCase collects the monthly management cost of target
// complexes across every fee sub-category and stores one aggregated record
// per (complex, month). Each sub-category is its own upstream call, so a full
// complex costs as many requests as there are categories.
type SyncManagementFeesUseCase struct {
	api       port.GovAPIPort
	complexes port.ComplexStoragePort
	fees      port.FeeStoragePort
}

func NewSyncManagementFeesUseCase(api port.GovAPIPort, complexes port.ComplexStoragePort, fees port.FeeStoragePort) *SyncManagementFeesUseCase {
	return &SyncManagementFeesUseCase{
		api:       api,
		complexes: complexes,
		fees:      fees,
	}
}

func (uc *SyncManagementFeesUseCase) Execute(ctx context.Context, yearMonth string, limit int) (*domain.SyncReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "SyncManagementFees",
		"year_month": yearMonth,
	})
	report := domain.NewSyncReport()

	codeSet, err := uc.complexes.ListTargetCodes(ctx)
	if err != nil {
		logger.Error("Could not list target codes", err, nil)
		return nil, fmt.Errorf("sync fees: list target codes: %w", err)
	}

	codes := make([]string, 0, len(codeSet))
	for code := range codeSet {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	if limit > 0 && len(codes) > limit {
		codes = codes[:limit]
	}

	logger.Info("Starting management-fee sync", port.Fields{
		"complexes":  len(codes),
		"categories": len(constants.FeeCategories),
	})

	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return report.Finish(), err
		}
		if err := uc.syncComplex(ctx, code, yearMonth, report); err != nil {
			logger.Error("Aborting management-fee sync", err, port.Fields{"kapt_code": code})
			return report.Finish(), err
		}
	}

	report.Finish()
	logger.Info("Management-fee sync finished", port.Fields{
		"processed": report.Processed,
		"updated":   report.Updated,
		"skipped":   report.Skipped,
		"failed":    report.Failed,
	})
	return report, nil
}

func (uc *SyncManagementFeesUseCase) syncComplex(ctx context.Context, kaptCode, yearMonth string, report *domain.SyncReport) error {
	report.AddProcessed(1)

	record := domain.ManagementFeeRecord{
		KaptCode:  kaptCode,
		YearMonth: yearMonth,
		Items:     make(map[string]int64, len(constants.FeeCategories)),
		FetchedAt: time.Now().UTC(),
	}

	for _, category := range constants.FeeCategories {
		amount, err := uc.api.FetchFeeItem(ctx, kaptCode, yearMonth, category)
		if err != nil {
			return err
		}
		if amount != nil {
			record.Items[category.Key] = *amount
		}
	}

	// A complex with no fee data at all for the month gets no record, an
	// all-zero row would be indistinguishable from a genuinely free month.
	if len(record.Items) == 0 {
		report.AddSkipped(1)
		return nil
	}

	record.ComputeTotals(constants.IsCommonFee)

	if err := uc.fees.UpsertFeeRecord(ctx, record); err != nil {
		report.AddFailure(kaptCode, "", err.Error())
		return nil
	}
	report.AddUpdated(1)
	return nil
}
