package constants

// Management-fee sub-categories: 17 common (공용관리비) and 10 individual
// (개별사용료) services, one endpoint operation each. The set and the amount
// field names are pinned against the V2 service catalog of the portal; the
// legacy scripts this replaces disagreed with each other on the list, so this
// table is the single authority.

// FeeKind classifies a sub-category into the common or individual bucket.
type FeeKind string

const (
	FeeKindCommon     FeeKind = "common"
	FeeKindIndividual FeeKind = "individual"
)

// FeeCategory describes one sub-category endpoint and the response field
// holding its monthly amount.
type FeeCategory struct {
	Key         string  // stable key used in storage and reports
	Label       string  // human name (Korean, as in the portal docs)
	Kind        FeeKind
	Service     string  // base service path
	Op          string  // operation name appended to the service path
	AmountField string  // envelope item field carrying the amount in won
}

var FeeCategories = []FeeCategory{
	// 공용관리비 (common)
	{"labor_cost", "인건비", FeeKindCommon, ServiceCommonCost, "getHsmpLaborCostInfoV2", "pay"},
	{"office_cost", "제사무비", FeeKindCommon, ServiceCommonCost, "getHsmpOfcrkCostInfoV2", "officeCost"},
	{"tax_cost", "제세공과금", FeeKindCommon, ServiceCommonCost, "getHsmpTaxdueInfoV2", "taxdue"},
	{"clothing_cost", "피복비", FeeKindCommon, ServiceCommonCost, "getHsmpClothingCostInfoV2", "clothesCost"},
	{"training_cost", "교육훈련비", FeeKindCommon, ServiceCommonCost, "getHsmpEduTrainingCostInfoV2", "eduTrainingCost"},
	{"vehicle_cost", "차량유지비", FeeKindCommon, ServiceCommonCost, "getHsmpVhcleMntncCostInfoV2", "vhcleMntncCost"},
	{"etc_cost", "그밖의부대비용", FeeKindCommon, ServiceCommonCost, "getHsmpEtcCostInfoV2", "etcCost"},
	{"cleaning_cost", "청소비", FeeKindCommon, ServiceCommonCost, "getHsmpCleaningCostInfoV2", "cleanCost"},
	{"guard_cost", "경비비", FeeKindCommon, ServiceCommonCost, "getHsmpGuardCostInfoV2", "guardCost"},
	{"disinfection_cost", "소독비", FeeKindCommon, ServiceCommonCost, "getHsmpDisinfectionCostInfoV2", "disinfCost"},
	{"elevator_cost", "승강기유지비", FeeKindCommon, ServiceCommonCost, "getHsmpElevatorMntncCostInfoV2", "elevMntncCost"},
	{"homenet_cost", "지능형홈네트워크설비유지비", FeeKindCommon, ServiceCommonCost, "getHsmpHomeNetworkMntncCostInfoV2", "hnetwCost"},
	{"repair_cost", "수선비", FeeKindCommon, ServiceCommonCost, "getHsmpRepairsCostInfoV2", "lrefCost"},
	{"facility_cost", "시설유지비", FeeKindCommon, ServiceCommonCost, "getHsmpFacilityMntncCostInfoV2", "facilityMntncCost"},
	{"safety_cost", "안전점검비", FeeKindCommon, ServiceCommonCost, "getHsmpSafetyCheckUpCostInfoV2", "safetyCheckUpCost"},
	{"disaster_cost", "재해예방비", FeeKindCommon, ServiceCommonCost, "getHsmpDisasterPreventionCostInfoV2", "disasterPreventionCost"},
	{"consign_fee", "위탁관리수수료", FeeKindCommon, ServiceCommonCost, "getHsmpConsignManageFeeInfoV2", "manageFee"},

	// 개별사용료 (individual)
	{"heat_cost", "난방비", FeeKindIndividual, ServiceIndividualCost, "getHsmpHeatCostInfoV2", "heatC"},
	{"hot_water_cost", "급탕비", FeeKindIndividual, ServiceIndividualCost, "getHsmpHotWaterCostInfoV2", "waterHotC"},
	{"electricity_cost", "전기료", FeeKindIndividual, ServiceIndividualCost, "getHsmpElectricityCostInfoV2", "electC"},
	{"water_cost", "수도료", FeeKindIndividual, ServiceIndividualCost, "getHsmpWaterCostInfoV2", "waterCoolC"},
	{"gas_cost", "가스사용료", FeeKindIndividual, ServiceIndividualCost, "getHsmpGasRentalFeeInfoV2", "gasC"},
	{"septic_cost", "정화조오물수수료", FeeKindIndividual, ServiceIndividualCost, "getHsmpPurifrManageCostInfoV2", "purifrC"},
	{"waste_cost", "생활폐기물수수료", FeeKindIndividual, ServiceIndividualCost, "getHsmpDomesticWasteFeeInfoV2", "scrapC"},
	{"insurance_cost", "건물보험료", FeeKindIndividual, ServiceIndividualCost, "getHsmpBuildInsrfeeInfoV2", "buildInsuC"},
	{"rep_meeting_cost", "입주자대표회의운영비", FeeKindIndividual, ServiceIndividualCost, "getHsmpOprtnCmteOprtnCostInfoV2", "preMeetC"},
	{"election_cost", "선거관리위원회운영비", FeeKindIndividual, ServiceIndividualCost, "getHsmpElectionMngmtCostInfoV2", "electionMngmtC"},
}

// IsCommonFee reports whether a category key belongs to the common bucket.
// Unknown keys are treated as individual.
func IsCommonFee(key string) bool {
	for _, cat := range FeeCategories {
		if cat.Key == key {
			return cat.Kind == FeeKindCommon
		}
	}
	return false
}
