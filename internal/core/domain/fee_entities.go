package domain

import "time"

// ManagementFeeRecord aggregates the monthly management cost of one complex
// across all fee sub-categories. A sub-category that the API did not return
// is simply absent from Items and counts as zero, it does not invalidate the
// record as a whole.
type ManagementFeeRecord struct {
	KaptCode  string
	YearMonth string // "YYYYMM"

	// Items maps a fee category key (see constants.FeeCategories) to the
	// reported cost in won.
	Items map[string]int64

	CommonTotal     int64
	IndividualTotal int64
	TotalFee        int64

	FetchedAt time.Time
}

// ComputeTotals recalculates the three totals from Items. isCommon classifies
// a category key; unknown keys are counted into the individual bucket.
func (r *ManagementFeeRecord) ComputeTotals(isCommon func(key string) bool) {
	r.CommonTotal = 0
	r.IndividualTotal = 0
	for key, amount := range r.Items {
		if isCommon(key) {
			r.CommonTotal += amount
		} else {
			r.IndividualTotal += amount
		}
	}
	r.TotalFee = r.CommonTotal + r.IndividualTotal
}
