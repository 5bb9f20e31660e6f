package domain

import "time"

// TradeTransaction is one apartment sale observed by the ministry for a
// region and month. The apartment name is free text from the registry, not a
// foreign key, so transactions are keyed by their natural composite key.
type TradeTransaction struct {
	RegionCode    string // 5-digit LAWD_CD the record was fetched under
	AptName       string
	LegalDong     string // umdNm
	Jibun         *string
	DealYear      int
	DealMonth     int
	DealDay       int
	DealAmount    int64 // 만원
	ExclusiveArea float64
	Floor         int
	BuildYear     *int
	Cancelled     bool
	CancelDate    *string

	FetchedAt time.Time
}

// DealDate formats the deal date as "YYYY-MM-DD".
func (t TradeTransaction) DealDate() string {
	return formatDealDate(t.DealYear, t.DealMonth, t.DealDay)
}

// RentTransaction is one apartment rent contract. Deposit and monthly rent
// replace the single trade amount; a zero monthly rent means jeonse.
type RentTransaction struct {
	RegionCode    string
	AptName       string
	LegalDong     string
	Jibun         *string
	DealYear      int
	DealMonth     int
	DealDay       int
	Deposit       int64 // 만원
	MonthlyRent   int64 // 만원, 0 for jeonse
	ExclusiveArea float64
	Floor         int
	BuildYear     *int

	FetchedAt time.Time
}

// DealDate formats the deal date as "YYYY-MM-DD".
func (t RentTransaction) DealDate() string {
	return formatDealDate(t.DealYear, t.DealMonth, t.DealDay)
}

func formatDealDate(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
