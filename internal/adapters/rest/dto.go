package rest

import "apt-sync-service/internal/core/domain"

// SyncTransactionsRequestDTO is the body for POST /sync/transactions/recent.
type SyncTransactionsRequestDTO struct {
	Months  int      `json:"months"`  // how many months back, newest first
	Regions []string `json:"regions"` // sigungu codes; empty means all
}

// FullSyncRequestDTO is the body for POST /sync/transactions/full.
type FullSyncRequestDTO struct {
	From    string   `json:"from"` // "YYYYMM" inclusive
	To      string   `json:"to"`   // "YYYYMM" inclusive; empty means current month
	Regions []string `json:"regions"`
}

// DiscoverRequestDTO is the body for POST /discover/complexes.
type DiscoverRequestDTO struct {
	Regions []string `json:"regions"` // sigungu codes; empty means all
}

// EnrichRequestDTO is the body for POST /enrich/complexes.
type EnrichRequestDTO struct {
	Limit int `json:"limit"`
}

// SyncFeesRequestDTO is the body for POST /sync/fees.
type SyncFeesRequestDTO struct {
	YearMonth string `json:"year_month"` // "YYYYMM"; empty means previous month
	Limit     int    `json:"limit"`
}

// ReportResponseDTO wraps a finished run report.
type ReportResponseDTO struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Report  *domain.SyncReport `json:"report,omitempty"`
}

// JobAcceptedDTO is returned for long runs that continue in the background.
type JobAcceptedDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}
