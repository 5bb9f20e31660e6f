package domain

import "time"

// ApartmentComplex is one residential complex as registered in the K-apt
// system. KaptCode is the government issued identifier and the business key
// every other dataset is reconciled against.
//
// Enrichment fields are pointers: nil means the value is unknown (not yet
// fetched or absent upstream), which the upsert engine must not confuse with
// a known-empty value.
type ApartmentComplex struct {
	KaptCode string

	Name        *string
	Address     *string // legal (jibun) address
	RoadAddress *string
	BjdCode     *string // legal-dong code of the complex location

	AptType    *string // codeAptNm: 아파트 / 주상복합 / ...
	SaleType   *string // codeSaleNm: 분양 / 임대
	HeatType   *string // codeHeatNm
	ManageType *string // codeMgrNm
	HallType   *string // codeHallNm: 계단식 / 복도식
	UseDate    *string // approval-for-use date, "YYYYMMDD"

	TotalArea   *float64 // m^2
	ManageArea  *float64
	PrivateArea *float64

	DongCount    *int
	UnitCount    *int
	TopFloor     *int
	BaseFloor    *int
	UnitsUnder60 *int // supply area bands
	Units60to85  *int
	Units85to135 *int
	UnitsOver135 *int

	BuildCompany   *string // 시공사
	DevelopCompany *string // 시행사
	ManageCompany  *string

	Tel *string
	Fax *string
	URL *string

	ManagerCount  *int
	SecurityCount *int
	CleanerCount  *int

	ElevatorCount      *int
	ParkingGround      *int
	ParkingUnderground *int
	CCTVCount          *int
	EVChargerGround    *int
	EVChargerBasement  *int

	// Free-text blobs as delivered by the API. Kept verbatim so a re-parse
	// with improved heuristics never needs a re-fetch.
	WelfareFacilityRaw    *string
	ConvenientFacilityRaw *string
	EducationFacilityRaw  *string

	// Parsed token lists derived from the raw blobs above.
	ConvenientFacilities []string
	EducationFacilities  []string

	BusStopWalkTime *string
	SubwayLine      *string
	SubwayStation   *string
	SubwayWalkTime  *string

	DataSource string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComplexSummary is the narrow projection used when paging through the
// reference and target tables during reconciliation.
type ComplexSummary struct {
	KaptCode string
	Name     *string
	Address  *string
	BjdCode  *string
}

// HasRequiredFields reports whether the summary carries enough data to seed a
// target row without a live API re-fetch.
func (s ComplexSummary) HasRequiredFields() bool {
	return s.Name != nil && *s.Name != "" && s.Address != nil && *s.Address != ""
}
