package govdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apt-sync-service/internal/core/domain"
)

func TestCoercionHelpers(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want *int
	}{
		{"plain string", "42", intPtr(42)},
		{"comma separated", "1,234", intPtr(1234)},
		{"full-width digits", "１２３", intPtr(123)},
		{"inner spaces", "1 234", intPtr(1234)},
		{"float string truncates", "12.8", intPtr(12)},
		{"empty", "", nil},
		{"dash only", "-", nil},
		{"garbage", "없음", nil},
		{"nil", nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := getIntPtr(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestGetStringPtr(t *testing.T) {
	assert.Nil(t, getStringPtr(""))
	assert.Nil(t, getStringPtr("   "))
	assert.Nil(t, getStringPtr("-"))
	assert.Nil(t, getStringPtr(nil))

	got := getStringPtr("  서울시 성동구  ")
	require.NotNil(t, got)
	assert.Equal(t, "서울시 성동구", *got)
}

func TestMapComplexSummary(t *testing.T) {
	summary, ok := mapComplexSummary(RawRecord{
		"kaptCode": "A10027875",
		"kaptName": "강변금호타운",
		"kaptAddr": "서울특별시 성동구 행당동",
		"bjdCode":  "1120011400",
	})
	require.True(t, ok)
	assert.Equal(t, "A10027875", summary.KaptCode)
	assert.True(t, summary.HasRequiredFields())

	_, ok = mapComplexSummary(RawRecord{"kaptName": "코드없는단지"})
	assert.False(t, ok, "a record without kaptCode is unusable")
}

func TestMapComplexBasic_PartialRecord(t *testing.T) {
	apt := mapComplexBasic(RawRecord{
		"kaptName":      "행당한진타운",
		"kaptdaCnt":     "2,123",
		"kaptTarea":     "176,237.52",
		"kaptMparea_60": "1,038",
		"codeHeatNm":    "지역난방",
		"kaptTel":       "-",
	})

	require.NotNil(t, apt.Name)
	assert.Equal(t, "행당한진타운", *apt.Name)
	require.NotNil(t, apt.UnitCount)
	assert.Equal(t, 2123, *apt.UnitCount)
	require.NotNil(t, apt.TotalArea)
	assert.InDelta(t, 176237.52, *apt.TotalArea, 0.001)
	require.NotNil(t, apt.UnitsUnder60)
	assert.Equal(t, 1038, *apt.UnitsUnder60)

	// absent and placeholder values stay nil
	assert.Nil(t, apt.Address)
	assert.Nil(t, apt.DongCount)
	assert.Nil(t, apt.Tel)
}

func TestMapComplexDetail_ParsesFacilities(t *testing.T) {
	apt := mapComplexDetail(RawRecord{
		"kaptdScnt":          "14",
		"kaptdPcnt":          "230",
		"kaptdPcntu":         "1,570",
		"convenientFacility": "관공서(성동구청, 행당동주민센터) 병원(한양대병원) 초등학교(행당)",
		"educationFacility":  "초등학교(행당) 중학교(무학중)",
	})

	require.NotNil(t, apt.SecurityCount)
	assert.Equal(t, 14, *apt.SecurityCount)
	require.NotNil(t, apt.ParkingUnderground)
	assert.Equal(t, 1570, *apt.ParkingUnderground)

	require.NotNil(t, apt.ConvenientFacilityRaw)
	assert.Contains(t, apt.ConvenientFacilities, "성동구청")
	assert.Contains(t, apt.ConvenientFacilities, "한양대병원")
	assert.NotContains(t, apt.ConvenientFacilities, "행당", "school tokens stay out of convenience")

	assert.Contains(t, apt.EducationFacilities, "행당초")
	assert.Contains(t, apt.EducationFacilities, "무학중")
}

func TestMapTrade(t *testing.T) {
	trade, ok := mapTrade(RawRecord{
		"aptNm":      "한강타운",
		"umdNm":      "옥수동",
		"jibun":      "428",
		"dealYear":   "2024",
		"dealMonth":  "1",
		"dealDay":    "15",
		"dealAmount": "115,000",
		"excluUseAr": "84.97",
		"floor":      "10",
		"buildYear":  "1998",
		"cdealType":  "O",
		"cdealDay":   "24.02.01",
	}, "11200")
	require.True(t, ok)

	assert.Equal(t, "11200", trade.RegionCode)
	assert.Equal(t, int64(115000), trade.DealAmount)
	assert.InDelta(t, 84.97, trade.ExclusiveArea, 0.001)
	assert.Equal(t, "2024-01-15", trade.DealDate())
	assert.True(t, trade.Cancelled)
	require.NotNil(t, trade.CancelDate)
	assert.Equal(t, "24.02.01", *trade.CancelDate)

	_, ok = mapTrade(RawRecord{"aptNm": "날짜없는단지"}, "11200")
	assert.False(t, ok, "a trade without a deal date is unusable")
}

func TestMapRent(t *testing.T) {
	rent, ok := mapRent(RawRecord{
		"아파트":  "전통필드단지",
		"년":    "2024",
		"월":    "3",
		"일":    "2",
		"보증금액": "50,000",
		"월세금액": "120",
		"전용면적": "59.92",
		"층":    "7",
	}, "11110")
	require.True(t, ok, "legacy korean field names are accepted")

	assert.Equal(t, int64(50000), rent.Deposit)
	assert.Equal(t, int64(120), rent.MonthlyRent)
	assert.Equal(t, 7, rent.Floor)
}

func TestMergeComplex_FirstNonNilWins(t *testing.T) {
	basic := &domain.ApartmentComplex{
		KaptCode:  "A1",
		Name:      strPtr("기본이름"),
		UnitCount: intPtr(1000),
	}
	detail := &domain.ApartmentComplex{
		Name:          strPtr("상세이름"),
		SecurityCount: intPtr(12),
	}

	merged := domain.MergeComplex(basic, detail)
	require.NotNil(t, merged)
	assert.Equal(t, "기본이름", *merged.Name, "existing value is not overwritten")
	assert.Equal(t, 1000, *merged.UnitCount)
	assert.Equal(t, 12, *merged.SecurityCount, "missing value is filled from overlay")

	assert.Same(t, detail, domain.MergeComplex(nil, detail))
	assert.Same(t, basic, domain.MergeComplex(basic, nil))
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
