package usecase

import (
	"context"
	"fmt"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/domain"
	"apt-sync-service/internal/core/port"
)

// SyncTransactionsUseCase pulls trade and rent transactions for every
// (region, month) pair and upserts them. Months are pulled newest first so a
// cancelled run still covers the most relevant data.
type SyncTransactionsUseCase struct {
	api     port.GovAPIPort
	storage port.TransactionStoragePort
}

func NewSyncTransactionsUseCase(api port.GovAPIPort, storage port.TransactionStoragePort) *SyncTransactionsUseCase {
	return &SyncTransactionsUseCase{
		api:     api,
		storage: storage,
	}
}

func (uc *SyncTransactionsUseCase) Execute(ctx context.Context, months []string, regionCodes []string) (*domain.SyncReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SyncTransactions",
	})
	report := domain.NewSyncReport()

	if len(regionCodes) == 0 {
		for _, region := range constants.AllSigunguCodes() {
			regionCodes = append(regionCodes, region.Code)
		}
	}

	logger.Info("Starting transaction sync", port.Fields{
		"months":  months,
		"regions": len(regionCodes),
	})

	for _, month := range months {
		for _, region := range regionCodes {
			if err := ctx.Err(); err != nil {
				return report.Finish(), err
			}
			if err := uc.syncRegionMonth(ctx, region, month, report); err != nil {
				logger.Error("Aborting transaction sync", err, port.Fields{
					"region": region, "month": month,
				})
				return report.Finish(), err
			}
		}
	}

	report.Finish()
	logger.Info("Transaction sync finished", port.Fields{
		"processed": report.Processed,
		"inserted":  report.Inserted,
		"updated":   report.Updated,
		"failed":    report.Failed,
	})
	return report, nil
}

func (uc *SyncTransactionsUseCase) syncRegionMonth(ctx context.Context, region, month string, report *domain.SyncReport) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SyncTransactions",
		"region":   region,
		"month":    month,
	})

	trades, err := uc.api.FetchTrades(ctx, region, month)
	if err != nil {
		return err
	}
	report.AddProcessed(len(trades))
	if len(trades) > 0 {
		stats, err := uc.storage.UpsertTrades(ctx, trades)
		if err != nil {
			return fmt.Errorf("upsert trades %s/%s: %w", region, month, err)
		}
		uc.applyStats(stats, report)
	}

	rents, err := uc.api.FetchRents(ctx, region, month)
	if err != nil {
		return err
	}
	report.AddProcessed(len(rents))
	if len(rents) > 0 {
		stats, err := uc.storage.UpsertRents(ctx, rents)
		if err != nil {
			return fmt.Errorf("upsert rents %s/%s: %w", region, month, err)
		}
		uc.applyStats(stats, report)
	}

	logger.Debug("Region synced", port.Fields{
		"trades": len(trades),
		"rents":  len(rents),
	})
	return nil
}

func (uc *SyncTransactionsUseCase) applyStats(stats *domain.BatchStats, report *domain.SyncReport) {
	report.AddInserted(stats.Inserted)
	report.AddUpdated(stats.Updated)
	report.AddSkipped(stats.Skipped)
	for _, f := range stats.Failed {
		report.AddFailure(f.Key, f.Name, f.Message)
	}
}
