package domain

import (
	"sync"
	"time"
)

// SyncError records one record-level failure with enough context to re-run
// only the failures.
type SyncError struct {
	Key        string    `json:"key"` // business key (kaptCode, region|month, ...)
	Name       string    `json:"name,omitempty"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SyncReport is the operator-visible summary of one pipeline run. Record
// level failures end up in here as counters and entries, they never bubble up
// as errors.
type SyncReport struct {
	mu sync.Mutex

	Processed int         `json:"processed"`
	Inserted  int         `json:"inserted"`
	Updated   int         `json:"updated"`
	Skipped   int         `json:"skipped"`
	Failed    int         `json:"failed"`
	Errors    []SyncError `json:"errors"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewSyncReport() *SyncReport {
	return &SyncReport{StartedAt: time.Now().UTC()}
}

func (r *SyncReport) AddProcessed(n int) {
	r.mu.Lock()
	r.Processed += n
	r.mu.Unlock()
}

func (r *SyncReport) AddInserted(n int) {
	r.mu.Lock()
	r.Inserted += n
	r.mu.Unlock()
}

func (r *SyncReport) AddUpdated(n int) {
	r.mu.Lock()
	r.Updated += n
	r.mu.Unlock()
}

func (r *SyncReport) AddSkipped(n int) {
	r.mu.Lock()
	r.Skipped += n
	r.mu.Unlock()
}

// AddFailure counts one failed record and keeps its context.
func (r *SyncReport) AddFailure(key, name, message string) {
	r.mu.Lock()
	r.Failed++
	r.Errors = append(r.Errors, SyncError{
		Key:        key,
		Name:       name,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	})
	r.mu.Unlock()
}

// Finish stamps the completion time and returns the report for chaining.
func (r *SyncReport) Finish() *SyncReport {
	r.mu.Lock()
	r.FinishedAt = time.Now().UTC()
	r.mu.Unlock()
	return r
}

// BatchStats is what a storage adapter reports back for one batched write.
type BatchStats struct {
	Inserted int
	Updated  int
	Skipped  int
	Failed   []SyncError
}
