package constants

import "apt-sync-service/internal/core/domain"

// Administrative region reference data. The 5-digit sigungu codes (LAWD_CD)
// drive both the complex-list pagination and the monthly transaction pulls.
// The table is static: the code hierarchy changes by law, not at runtime,
// so an out-of-date table is a configuration error.

type sidoEntry struct {
	code    string
	name    string
	sigungu []domain.RegionCode
}

func sg(code, name string) domain.RegionCode {
	return domain.RegionCode{Code: code, Name: name}
}

var sidoTable = []sidoEntry{
	{code: "11", name: "서울특별시", sigungu: []domain.RegionCode{
		sg("11110", "종로구"), sg("11140", "중구"), sg("11170", "용산구"),
		sg("11200", "성동구"), sg("11215", "광진구"), sg("11230", "동대문구"),
		sg("11260", "중랑구"), sg("11290", "성북구"), sg("11305", "강북구"),
		sg("11320", "도봉구"), sg("11350", "노원구"), sg("11380", "은평구"),
		sg("11410", "서대문구"), sg("11440", "마포구"), sg("11470", "양천구"),
		sg("11500", "강서구"), sg("11530", "구로구"), sg("11545", "금천구"),
		sg("11560", "영등포구"), sg("11590", "동작구"), sg("11620", "관악구"),
		sg("11650", "서초구"), sg("11680", "강남구"), sg("11710", "송파구"),
		sg("11740", "강동구"),
	}},
	{code: "26", name: "부산광역시", sigungu: []domain.RegionCode{
		sg("26110", "중구"), sg("26140", "서구"), sg("26170", "동구"),
		sg("26200", "영도구"), sg("26230", "부산진구"), sg("26260", "동래구"),
		sg("26290", "남구"), sg("26320", "북구"), sg("26350", "해운대구"),
		sg("26380", "사하구"), sg("26410", "금정구"), sg("26440", "강서구"),
		sg("26470", "연제구"), sg("26500", "수영구"), sg("26530", "사상구"),
		sg("26710", "기장군"),
	}},
	{code: "27", name: "대구광역시", sigungu: []domain.RegionCode{
		sg("27110", "중구"), sg("27140", "동구"), sg("27170", "서구"),
		sg("27200", "남구"), sg("27230", "북구"), sg("27260", "수성구"),
		sg("27290", "달서구"), sg("27710", "달성군"),
	}},
	{code: "28", name: "인천광역시", sigungu: []domain.RegionCode{
		sg("28110", "중구"), sg("28140", "동구"), sg("28177", "미추홀구"),
		sg("28185", "연수구"), sg("28200", "남동구"), sg("28237", "부평구"),
		sg("28245", "계양구"), sg("28260", "서구"),
	}},
	{code: "29", name: "광주광역시", sigungu: []domain.RegionCode{
		sg("29110", "동구"), sg("29140", "서구"), sg("29155", "남구"),
		sg("29170", "북구"), sg("29200", "광산구"),
	}},
	{code: "30", name: "대전광역시", sigungu: []domain.RegionCode{
		sg("30110", "동구"), sg("30140", "중구"), sg("30170", "서구"),
		sg("30200", "유성구"), sg("30230", "대덕구"),
	}},
	{code: "31", name: "울산광역시", sigungu: []domain.RegionCode{
		sg("31110", "중구"), sg("31140", "남구"), sg("31170", "동구"),
		sg("31200", "북구"), sg("31710", "울주군"),
	}},
	{code: "36", name: "세종특별자치시", sigungu: []domain.RegionCode{
		sg("36110", "세종시"),
	}},
	{code: "41", name: "경기도", sigungu: []domain.RegionCode{
		sg("41111", "수원시 장안구"), sg("41113", "수원시 권선구"),
		sg("41115", "수원시 팔달구"), sg("41117", "수원시 영통구"),
		sg("41131", "성남시 수정구"), sg("41133", "성남시 중원구"),
		sg("41135", "성남시 분당구"), sg("41171", "안양시 만안구"),
		sg("41173", "안양시 동안구"), sg("41190", "부천시"),
		sg("41210", "광명시"), sg("41360", "남양주시"),
		sg("41390", "시흥시"), sg("41450", "하남시"),
		sg("41461", "용인시 처인구"), sg("41463", "용인시 기흥구"),
		sg("41465", "용인시 수지구"), sg("41570", "김포시"),
		sg("41590", "화성시"), sg("41610", "광주시"),
	}},
}

// AllSigunguCodes returns every configured sigungu code in a stable order:
// sido tables first, sigungu in ascending code order within each sido.
func AllSigunguCodes() []domain.RegionCode {
	var out []domain.RegionCode
	for _, sido := range sidoTable {
		for _, region := range sido.sigungu {
			region.SidoCode = sido.code
			region.SidoName = sido.name
			out = append(out, region)
		}
	}
	return out
}

// SigunguBySido returns the sigungu codes of one sido, or nil when the sido
// code is not configured.
func SigunguBySido(sidoCode string) []domain.RegionCode {
	for _, sido := range sidoTable {
		if sido.code != sidoCode {
			continue
		}
		out := make([]domain.RegionCode, 0, len(sido.sigungu))
		for _, region := range sido.sigungu {
			region.SidoCode = sido.code
			region.SidoName = sido.name
			out = append(out, region)
		}
		return out
	}
	return nil
}

// RegionByCode looks a single sigungu code up.
func RegionByCode(code string) (domain.RegionCode, bool) {
	for _, region := range AllSigunguCodes() {
		if region.Code == code {
			return region, true
		}
	}
	return domain.RegionCode{}, false
}
