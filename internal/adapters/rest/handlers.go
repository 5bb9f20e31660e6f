package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"apt-sync-service/internal/constants"
	"apt-sync-service/internal/contextkeys"
	"apt-sync-service/internal/core/port"
	"apt-sync-service/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

var yearMonthPattern = regexp.MustCompile(`^\d{6}$`)

type SyncHandlers struct {
	discoverUC     usecases_port.DiscoverComplexesUseCase
	reconcileUC    usecases_port.ReconcileComplexesUseCase
	enrichUC       usecases_port.EnrichStaleComplexesUseCase
	transactionsUC usecases_port.SyncTransactionsUseCase
	feesUC         usecases_port.SyncManagementFeesUseCase

	defaultMonths int
}

func NewSyncHandlers(
	discoverUC usecases_port.DiscoverComplexesUseCase,
	reconcileUC usecases_port.ReconcileComplexesUseCase,
	enrichUC usecases_port.EnrichStaleComplexesUseCase,
	transactionsUC usecases_port.SyncTransactionsUseCase,
	feesUC usecases_port.SyncManagementFeesUseCase,
	defaultMonths int,
) *SyncHandlers {
	if defaultMonths <= 0 {
		defaultMonths = 3
	}
	return &SyncHandlers{
		discoverUC:     discoverUC,
		reconcileUC:    reconcileUC,
		enrichUC:       enrichUC,
		transactionsUC: transactionsUC,
		feesUC:         feesUC,
		defaultMonths:  defaultMonths,
	}
}

// HandleDiscoverComplexes - POST /api/v1/discover/complexes
//
// A full discovery walks every region's complex list, so like the transaction
// backfill it continues in the background and answers with a job id.
func (h *SyncHandlers) HandleDiscoverComplexes(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleDiscoverComplexes"})

	var reqDTO DiscoverRequestDTO
	if err := decodeBodyOptional(r, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	for _, code := range reqDTO.Regions {
		if _, ok := constants.RegionByCode(code); !ok {
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Unknown region code %q", code))
			return
		}
	}

	jobID := uuid.New().String()
	logger.Info("Starting complex discovery in background", port.Fields{
		"job_id":  jobID,
		"regions": len(reqDTO.Regions),
	})

	bgCtx := context.Background()
	bgCtx = contextkeys.ContextWithLogger(bgCtx, contextkeys.LoggerFromContext(r.Context()))
	bgCtx = contextkeys.ContextWithTraceID(bgCtx, contextkeys.TraceIDFromContext(r.Context()))

	go func() {
		bgLogger := contextkeys.LoggerFromContext(bgCtx).WithFields(port.Fields{"job_id": jobID})
		report, err := h.discoverUC.Execute(bgCtx, reqDTO.Regions)
		if err != nil {
			bgLogger.Error("Complex discovery failed", err, nil)
			return
		}
		bgLogger.Info("Complex discovery finished", port.Fields{
			"processed": report.Processed,
			"inserted":  report.Inserted,
			"skipped":   report.Skipped,
			"failed":    report.Failed,
		})
	}()

	RespondWithJSON(w, http.StatusAccepted, JobAcceptedDTO{
		Success: true,
		Message: "Discovery accepted",
		JobID:   jobID,
	})
}

// HandleReconcileComplexes - POST /api/v1/reconcile/complexes
func (h *SyncHandlers) HandleReconcileComplexes(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleReconcileComplexes"})
	logger.Info("Received reconciliation request", nil)

	report, err := h.reconcileUC.Execute(r.Context())
	if err != nil {
		respondRunError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ReportResponseDTO{
		Success: true,
		Message: "Reconciliation completed",
		Report:  report,
	})
}

// HandleEnrichComplexes - POST /api/v1/enrich/complexes
func (h *SyncHandlers) HandleEnrichComplexes(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleEnrichComplexes"})

	var reqDTO EnrichRequestDTO
	if err := decodeBodyOptional(r, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if reqDTO.Limit <= 0 {
		reqDTO.Limit = 100
	}

	logger.Info("Received enrichment request", port.Fields{"limit": reqDTO.Limit})

	report, err := h.enrichUC.Execute(r.Context(), reqDTO.Limit)
	if err != nil {
		respondRunError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ReportResponseDTO{
		Success: true,
		Message: "Enrichment completed",
		Report:  report,
	})
}

// HandleSyncRecentTransactions - POST /api/v1/sync/transactions/recent
func (h *SyncHandlers) HandleSyncRecentTransactions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSyncRecentTransactions"})

	var reqDTO SyncTransactionsRequestDTO
	if err := decodeBodyOptional(r, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if reqDTO.Months <= 0 {
		reqDTO.Months = h.defaultMonths
	}

	months := monthsBack(time.Now().UTC(), reqDTO.Months)
	logger.Info("Received recent transaction sync request", port.Fields{
		"months":  months,
		"regions": len(reqDTO.Regions),
	})

	report, err := h.transactionsUC.Execute(r.Context(), months, reqDTO.Regions)
	if err != nil {
		respondRunError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ReportResponseDTO{
		Success: true,
		Message: "Transaction sync completed",
		Report:  report,
	})
}

// HandleSyncFullTransactions - POST /api/v1/sync/transactions/full
//
// A full backfill spans years of (region, month) pairs, so the run continues
// in the background and the handler answers immediately with a job id.
func (h *SyncHandlers) HandleSyncFullTransactions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSyncFullTransactions"})

	var reqDTO FullSyncRequestDTO
	if err := decodeBodyOptional(r, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	now := time.Now().UTC()
	if reqDTO.To == "" {
		reqDTO.To = now.Format("200601")
	}
	if reqDTO.From == "" {
		reqDTO.From = now.AddDate(-5, 0, 0).Format("200601")
	}
	months, err := monthRange(reqDTO.From, reqDTO.To)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	jobID := uuid.New().String()
	logger.Info("Starting full transaction sync in background", port.Fields{
		"job_id": jobID,
		"months": len(months),
	})

	// Detach from the request context but keep the trace-scoped logger.
	bgCtx := context.Background()
	bgCtx = contextkeys.ContextWithLogger(bgCtx, contextkeys.LoggerFromContext(r.Context()))
	bgCtx = contextkeys.ContextWithTraceID(bgCtx, contextkeys.TraceIDFromContext(r.Context()))

	go func() {
		bgLogger := contextkeys.LoggerFromContext(bgCtx).WithFields(port.Fields{"job_id": jobID})
		report, err := h.transactionsUC.Execute(bgCtx, months, reqDTO.Regions)
		if err != nil {
			bgLogger.Error("Full transaction sync failed", err, nil)
			return
		}
		bgLogger.Info("Full transaction sync finished", port.Fields{
			"processed": report.Processed,
			"inserted":  report.Inserted,
			"updated":   report.Updated,
			"failed":    report.Failed,
		})
	}()

	RespondWithJSON(w, http.StatusAccepted, JobAcceptedDTO{
		Success: true,
		Message: fmt.Sprintf("Full sync accepted for %d months", len(months)),
		JobID:   jobID,
	})
}

// HandleSyncManagementFees - POST /api/v1/sync/fees
func (h *SyncHandlers) HandleSyncManagementFees(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSyncManagementFees"})

	var reqDTO SyncFeesRequestDTO
	if err := decodeBodyOptional(r, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if reqDTO.YearMonth == "" {
		// Fee data lags, the previous month is the newest complete one.
		reqDTO.YearMonth = time.Now().UTC().AddDate(0, -1, 0).Format("200601")
	}
	if !yearMonthPattern.MatchString(reqDTO.YearMonth) {
		WriteJSONError(w, http.StatusBadRequest, "Field 'year_month' must be formatted as YYYYMM")
		return
	}

	logger.Info("Received management-fee sync request", port.Fields{
		"year_month": reqDTO.YearMonth,
		"limit":      reqDTO.Limit,
	})

	report, err := h.feesUC.Execute(r.Context(), reqDTO.YearMonth, reqDTO.Limit)
	if err != nil {
		respondRunError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, ReportResponseDTO{
		Success: true,
		Message: "Management-fee sync completed",
		Report:  report,
	})
}

// HandleHealthz - GET /healthz
func (h *SyncHandlers) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeBodyOptional decodes a JSON body into dst, treating an empty body as
// an empty request.
func decodeBodyOptional(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	return err
}

// respondRunError maps a run-aborting error to the matching status code. A
// rejected service key is upstream's verdict, not ours, so it maps to 502.
func respondRunError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	logger.Error("Use case execution failed", err, nil)
	switch {
	case errors.Is(err, port.ErrServiceKey):
		WriteJSONError(w, http.StatusBadGateway, "Data portal rejected the service key")
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		WriteJSONError(w, http.StatusServiceUnavailable, "Run was cancelled before completion")
	default:
		WriteJSONError(w, http.StatusInternalServerError, "Synchronization run failed")
	}
}

// monthsBack returns n months as "YYYYMM", newest first, starting with the
// month of ref.
func monthsBack(ref time.Time, n int) []string {
	months := make([]string, 0, n)
	cursor := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		months = append(months, cursor.Format("200601"))
		cursor = cursor.AddDate(0, -1, 0)
	}
	return months
}

// monthRange expands an inclusive "YYYYMM" range, newest first.
func monthRange(from, to string) ([]string, error) {
	if !yearMonthPattern.MatchString(from) || !yearMonthPattern.MatchString(to) {
		return nil, fmt.Errorf("fields 'from' and 'to' must be formatted as YYYYMM")
	}
	start, err := time.Parse("200601", from)
	if err != nil {
		return nil, fmt.Errorf("invalid 'from' month: %v", err)
	}
	end, err := time.Parse("200601", to)
	if err != nil {
		return nil, fmt.Errorf("invalid 'to' month: %v", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("'to' month precedes 'from' month")
	}

	var months []string
	for cursor := end; !cursor.Before(start); cursor = cursor.AddDate(0, -1, 0) {
		months = append(months, cursor.Format("200601"))
	}
	return months, nil
}
