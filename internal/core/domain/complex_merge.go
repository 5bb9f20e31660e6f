package domain

// MergeComplex overlays detail fields onto a basic record, keeping the first
// non-nil value per field. Used when both endpoints were fetched for one
// enrichment pass.
func MergeComplex(base, overlay *ApartmentComplex) *ApartmentComplex {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}
	merged := *base

	mergeStr := func(dst **string, src *string) {
		if *dst == nil && src != nil {
			*dst = src
		}
	}
	mergeInt := func(dst **int, src *int) {
		if *dst == nil && src != nil {
			*dst = src
		}
	}
	mergeFloat := func(dst **float64, src *float64) {
		if *dst == nil && src != nil {
			*dst = src
		}
	}

	mergeStr(&merged.Name, overlay.Name)
	mergeStr(&merged.Address, overlay.Address)
	mergeStr(&merged.RoadAddress, overlay.RoadAddress)
	mergeStr(&merged.BjdCode, overlay.BjdCode)
	mergeStr(&merged.AptType, overlay.AptType)
	mergeStr(&merged.SaleType, overlay.SaleType)
	mergeStr(&merged.HeatType, overlay.HeatType)
	mergeStr(&merged.ManageType, overlay.ManageType)
	mergeStr(&merged.HallType, overlay.HallType)
	mergeStr(&merged.UseDate, overlay.UseDate)
	mergeFloat(&merged.TotalArea, overlay.TotalArea)
	mergeFloat(&merged.ManageArea, overlay.ManageArea)
	mergeFloat(&merged.PrivateArea, overlay.PrivateArea)
	mergeInt(&merged.DongCount, overlay.DongCount)
	mergeInt(&merged.UnitCount, overlay.UnitCount)
	mergeInt(&merged.TopFloor, overlay.TopFloor)
	mergeInt(&merged.BaseFloor, overlay.BaseFloor)
	mergeInt(&merged.UnitsUnder60, overlay.UnitsUnder60)
	mergeInt(&merged.Units60to85, overlay.Units60to85)
	mergeInt(&merged.Units85to135, overlay.Units85to135)
	mergeInt(&merged.UnitsOver135, overlay.UnitsOver135)
	mergeStr(&merged.BuildCompany, overlay.BuildCompany)
	mergeStr(&merged.DevelopCompany, overlay.DevelopCompany)
	mergeStr(&merged.ManageCompany, overlay.ManageCompany)
	mergeStr(&merged.Tel, overlay.Tel)
	mergeStr(&merged.Fax, overlay.Fax)
	mergeStr(&merged.URL, overlay.URL)
	mergeInt(&merged.ManagerCount, overlay.ManagerCount)
	mergeInt(&merged.SecurityCount, overlay.SecurityCount)
	mergeInt(&merged.CleanerCount, overlay.CleanerCount)
	mergeInt(&merged.ElevatorCount, overlay.ElevatorCount)
	mergeInt(&merged.ParkingGround, overlay.ParkingGround)
	mergeInt(&merged.ParkingUnderground, overlay.ParkingUnderground)
	mergeInt(&merged.CCTVCount, overlay.CCTVCount)
	mergeInt(&merged.EVChargerGround, overlay.EVChargerGround)
	mergeInt(&merged.EVChargerBasement, overlay.EVChargerBasement)
	mergeStr(&merged.WelfareFacilityRaw, overlay.WelfareFacilityRaw)
	mergeStr(&merged.ConvenientFacilityRaw, overlay.ConvenientFacilityRaw)
	mergeStr(&merged.EducationFacilityRaw, overlay.EducationFacilityRaw)
	mergeStr(&merged.BusStopWalkTime, overlay.BusStopWalkTime)
	mergeStr(&merged.SubwayLine, overlay.SubwayLine)
	mergeStr(&merged.SubwayStation, overlay.SubwayStation)
	mergeStr(&merged.SubwayWalkTime, overlay.SubwayWalkTime)

	if len(merged.ConvenientFacilities) == 0 {
		merged.ConvenientFacilities = overlay.ConvenientFacilities
	}
	if len(merged.EducationFacilities) == 0 {
		merged.EducationFacilities = overlay.EducationFacilities
	}
	return &merged
}
