package govdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConvenientFacilities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "mixed groups with schools",
			in:   "관공서(성동구청, 행당동주민센터) 병원(한양대병원) 초등학교(행당) 중학교(무학중)",
			want: []string{"성동구청", "행당동주민센터", "한양대병원"},
		},
		{
			name: "bare list without categories",
			in:   "이마트, 옥수역, 중앙하이츠상가",
			want: []string{"이마트", "옥수역", "중앙하이츠상가"},
		},
		{
			name: "alternative delimiters",
			in:   "대형마트(이마트·홈플러스/코스트코)",
			want: []string{"이마트", "홈플러스", "코스트코"},
		},
		{
			name: "duplicate tokens collapse",
			in:   "병원(한양대병원) 약국(한양대병원)",
			want: []string{"한양대병원"},
		},
		{
			name: "school-only blob yields nothing",
			in:   "초등학교(행당)",
			want: nil,
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseConvenientFacilities(tc.in))
		})
	}
}

func TestParseEducationFacilities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "suffix appended to bare names",
			in:   "초등학교(행당) 중학교(무학중)",
			want: []string{"행당초", "무학중"},
		},
		{
			name: "marker already present",
			in:   "초등학교(행당초, 금호초) 고등학교(무학여자고등학교)",
			want: []string{"행당초", "금호초", "무학여자고등학교"},
		},
		{
			name: "single rune tokens dropped",
			in:   "중학교(무, 무학중)",
			want: []string{"무학중"},
		},
		{
			name: "university without marker dropped",
			in:   "대학교(한양대학교, xx)",
			want: []string{"한양대학교"},
		},
		{
			name: "convenience groups ignored",
			in:   "관공서(성동구청) 병원(한양대병원)",
			want: nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseEducationFacilities(tc.in))
		})
	}
}
