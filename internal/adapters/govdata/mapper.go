package govdata

import (
	"time"

	"apt-sync-service/internal/core/domain"
)

// Mapping from portal field names (K-apt / RTMS conventions) to the target
// schema. Every helper degrades to nil on absent or garbage input; a record
// that maps only partially is still a valid record.

func mapComplexSummary(rec RawRecord) (domain.ComplexSummary, bool) {
	code := asString(rawValue(rec, "kaptCode"))
	if code == "" {
		return domain.ComplexSummary{}, false
	}
	return domain.ComplexSummary{
		KaptCode: code,
		Name:     getStringPtr(rawValue(rec, "kaptName")),
		Address:  getStringPtr(rawValue(rec, "kaptAddr", "as1")),
		BjdCode:  getStringPtr(rawValue(rec, "bjdCode")),
	}, true
}

// mapComplexBasic maps the basic-info endpoint (identification, areas, unit
// counts, companies).
func mapComplexBasic(rec RawRecord) *domain.ApartmentComplex {
	return &domain.ApartmentComplex{
		Name:        getStringPtr(rec["kaptName"]),
		Address:     getStringPtr(rec["kaptAddr"]),
		RoadAddress: getStringPtr(rec["doroJuso"]),
		BjdCode:     getStringPtr(rec["bjdCode"]),

		AptType:    getStringPtr(rec["codeAptNm"]),
		SaleType:   getStringPtr(rec["codeSaleNm"]),
		HeatType:   getStringPtr(rec["codeHeatNm"]),
		ManageType: getStringPtr(rec["codeMgrNm"]),
		HallType:   getStringPtr(rec["codeHallNm"]),
		UseDate:    getStringPtr(rec["kaptUsedate"]),

		TotalArea:   getFloat64Ptr(rec["kaptTarea"]),
		ManageArea:  getFloat64Ptr(rec["kaptMarea"]),
		PrivateArea: getFloat64Ptr(rec["privArea"]),

		DongCount:    getIntPtr(rec["kaptDongCnt"]),
		UnitCount:    getIntPtr(rec["kaptdaCnt"]),
		TopFloor:     getIntPtr(rec["kaptTopFloor"]),
		BaseFloor:    getIntPtr(rec["kaptBaseFloor"]),
		UnitsUnder60: getIntPtr(rec["kaptMparea_60"]),
		Units60to85:  getIntPtr(rec["kaptMparea_85"]),
		Units85to135: getIntPtr(rec["kaptMparea_135"]),
		UnitsOver135: getIntPtr(rec["kaptMparea_136"]),

		BuildCompany:   getStringPtr(rec["kaptBcompany"]),
		DevelopCompany: getStringPtr(rec["kaptAcompany"]),

		Tel: getStringPtr(rec["kaptTel"]),
		Fax: getStringPtr(rec["kaptFax"]),
		URL: getStringPtr(rec["kaptUrl"]),

		DataSource: "K-apt",
	}
}

// mapComplexDetail maps the detail-info endpoint (management staffing,
// parking, security, transit, facility blobs). The facility blobs are kept
// raw and parsed into token lists here, so a mapping failure in the parser
// never loses the original text.
func mapComplexDetail(rec RawRecord) *domain.ApartmentComplex {
	apt := &domain.ApartmentComplex{
		ManageCompany: getStringPtr(rec["kaptCcompany"]),
		ManagerCount:  getIntPtr(rec["kaptMgrCnt"]),
		SecurityCount: getIntPtr(rec["kaptdScnt"]),
		CleanerCount:  getIntPtr(rec["kaptdClcnt"]),

		ElevatorCount:      getIntPtr(rawValue(rec, "kaptdEcnt", "kaptdElevCnt")),
		ParkingGround:      getIntPtr(rec["kaptdPcnt"]),
		ParkingUnderground: getIntPtr(rec["kaptdPcntu"]),
		CCTVCount:          getIntPtr(rec["kaptdCccnt"]),
		EVChargerGround:    getIntPtr(rawValue(rec, "groundElChargerCnt", "kaptdEcntp")),
		EVChargerBasement:  getIntPtr(rec["undergroundElChargerCnt"]),

		WelfareFacilityRaw:    getStringPtr(rec["welfareFacility"]),
		ConvenientFacilityRaw: getStringPtr(rec["convenientFacility"]),
		EducationFacilityRaw:  getStringPtr(rec["educationFacility"]),

		BusStopWalkTime: getStringPtr(rec["kaptdWtimebus"]),
		SubwayLine:      getStringPtr(rec["subwayLine"]),
		SubwayStation:   getStringPtr(rec["subwayStation"]),
		SubwayWalkTime:  getStringPtr(rec["kaptdWtimesub"]),

		DataSource: "K-apt",
	}

	// Convenience tokens come from the convenience blob with school groups
	// stripped; education tokens come from both blobs since schools leak
	// into either upstream.
	apt.ConvenientFacilities = ParseConvenientFacilities(stringOrEmpty(apt.ConvenientFacilityRaw))
	apt.EducationFacilities = ParseEducationFacilities(
		stringOrEmpty(apt.EducationFacilityRaw) + " " + stringOrEmpty(apt.ConvenientFacilityRaw))

	return apt
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mapTrade(rec RawRecord, lawdCd string) (domain.TradeTransaction, bool) {
	aptName := asString(rawValue(rec, "aptNm", "아파트"))
	year := intOrZero(rawValue(rec, "dealYear", "년"))
	month := intOrZero(rawValue(rec, "dealMonth", "월"))
	day := intOrZero(rawValue(rec, "dealDay", "일"))
	if aptName == "" || year == 0 || month == 0 || day == 0 {
		return domain.TradeTransaction{}, false
	}

	cancelType := asString(rawValue(rec, "cdealType"))

	return domain.TradeTransaction{
		RegionCode:    lawdCd,
		AptName:       aptName,
		LegalDong:     asString(rawValue(rec, "umdNm", "법정동")),
		Jibun:         getStringPtr(rawValue(rec, "jibun", "지번")),
		DealYear:      year,
		DealMonth:     month,
		DealDay:       day,
		DealAmount:    int64OrZero(rawValue(rec, "dealAmount", "거래금액")),
		ExclusiveArea: float64OrZero(rawValue(rec, "excluUseAr", "전용면적")),
		Floor:         intOrZero(rawValue(rec, "floor", "층")),
		BuildYear:     getIntPtr(rawValue(rec, "buildYear", "건축년도")),
		Cancelled:     cancelType == "O",
		CancelDate:    getStringPtr(rawValue(rec, "cdealDay")),
		FetchedAt:     time.Now().UTC(),
	}, true
}

func mapRent(rec RawRecord, lawdCd string) (domain.RentTransaction, bool) {
	aptName := asString(rawValue(rec, "aptNm", "아파트"))
	year := intOrZero(rawValue(rec, "dealYear", "년"))
	month := intOrZero(rawValue(rec, "dealMonth", "월"))
	day := intOrZero(rawValue(rec, "dealDay", "일"))
	if aptName == "" || year == 0 || month == 0 || day == 0 {
		return domain.RentTransaction{}, false
	}

	return domain.RentTransaction{
		RegionCode:    lawdCd,
		AptName:       aptName,
		LegalDong:     asString(rawValue(rec, "umdNm", "법정동")),
		Jibun:         getStringPtr(rawValue(rec, "jibun", "지번")),
		DealYear:      year,
		DealMonth:     month,
		DealDay:       day,
		Deposit:       int64OrZero(rawValue(rec, "deposit", "보증금액")),
		MonthlyRent:   int64OrZero(rawValue(rec, "monthlyRent", "월세금액")),
		ExclusiveArea: float64OrZero(rawValue(rec, "excluUseAr", "전용면적")),
		Floor:         intOrZero(rawValue(rec, "floor", "층")),
		BuildYear:     getIntPtr(rawValue(rec, "buildYear", "건축년도")),
		FetchedAt:     time.Now().UTC(),
	}, true
}
