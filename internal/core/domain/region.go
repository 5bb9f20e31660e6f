package domain

// RegionCode is one entry of the static administrative hierarchy table:
// a 5-digit sigungu code (LAWD_CD) under a 2-digit sido prefix.
type RegionCode struct {
	Code     string // 5-digit sigungu code
	Name     string
	SidoCode string // leading 2 digits of Code
	SidoName string
}
