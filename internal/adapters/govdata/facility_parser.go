package govdata

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Best-effort parsing of the semi-structured facility blobs the registry
// delivers, e.g.
//
//	"관공서(성동구청, 행당동주민센터) 병원(한양대병원) 초등학교(행당) 중학교(무학중)"
//
// This is a heuristic splitter, not a grammar: it recognizes known
// category(items) groups, splits the inner list, and validates tokens per
// category. Everything it does not recognize it leaves alone. The rules
// live in one table so new categories are data, not code.

type facilityTarget int

const (
	targetConvenience facilityTarget = iota
	targetEducation
)

type facilityRule struct {
	keyword string
	target  facilityTarget
	// suffix is appended to tokens that lack a school marker, so that
	// "행당" under 초등학교 becomes "행당초". Empty for non-school rules.
	suffix string
	re     *regexp.Regexp
}

func newRule(keyword string, target facilityTarget, suffix string) facilityRule {
	return facilityRule{
		keyword: keyword,
		target:  target,
		suffix:  suffix,
		re:      regexp.MustCompile(regexp.QuoteMeta(keyword) + `\s*\(([^)]*)\)`),
	}
}

var facilityRules = []facilityRule{
	// education: schools are reported separately, so their groups must be
	// stripped out of the generic convenience output
	newRule("초등학교", targetEducation, "초"),
	newRule("중학교", targetEducation, "중"),
	newRule("고등학교", targetEducation, "고"),
	newRule("대학교", targetEducation, ""),
	newRule("유치원", targetEducation, ""),

	// convenience
	newRule("관공서", targetConvenience, ""),
	newRule("병원", targetConvenience, ""),
	newRule("약국", targetConvenience, ""),
	newRule("공원", targetConvenience, ""),
	newRule("백화점", targetConvenience, ""),
	newRule("대형마트", targetConvenience, ""),
	newRule("시장", targetConvenience, ""),
	newRule("은행", targetConvenience, ""),
}

var tokenSplitter = regexp.MustCompile(`[,;·/]`)

// ParseConvenientFacilities extracts convenience tokens from a facility
// blob. School groups are excluded even when the registry reports them
// inside the convenience field. A blob without any recognizable group is
// treated as one plain delimited list.
func ParseConvenientFacilities(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}
	matchedAny := false

	for _, rule := range facilityRules {
		groups := rule.re.FindAllStringSubmatch(text, -1)
		if len(groups) > 0 {
			matchedAny = true
		}
		if rule.target != targetConvenience {
			continue
		}
		for _, group := range groups {
			for _, token := range splitTokens(group[1]) {
				appendUnique(&out, seen, token)
			}
		}
	}

	if !matchedAny {
		// no category structure at all: the blob is a bare list
		for _, token := range splitTokens(text) {
			appendUnique(&out, seen, token)
		}
	}
	return out
}

// ParseEducationFacilities extracts validated school tokens. Tokens shorter
// than two runes are dropped as truncation garbage; tokens without a school
// marker get the category suffix appended (행당 → 행당초); rules without a
// suffix require the token to already carry 학교/대학교 or a school suffix.
func ParseEducationFacilities(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	seen := map[string]struct{}{}

	for _, rule := range facilityRules {
		if rule.target != targetEducation {
			continue
		}
		for _, group := range rule.re.FindAllStringSubmatch(text, -1) {
			for _, token := range splitTokens(group[1]) {
				if valid, ok := validateSchoolToken(token, rule.suffix); ok {
					appendUnique(&out, seen, valid)
				}
			}
		}
	}
	return out
}

func validateSchoolToken(token, suffix string) (string, bool) {
	token = strings.TrimSpace(token)
	if utf8.RuneCountInString(token) < 2 {
		return "", false
	}
	if hasSchoolMarker(token) {
		return token, true
	}
	if suffix == "" {
		return "", false
	}
	return token + suffix, true
}

func hasSchoolMarker(token string) bool {
	if strings.Contains(token, "학교") {
		return true
	}
	for _, suffix := range []string{"초", "중", "고", "대"} {
		if strings.HasSuffix(token, suffix) {
			return true
		}
	}
	return false
}

func splitTokens(s string) []string {
	var tokens []string
	for _, raw := range tokenSplitter.Split(s, -1) {
		token := strings.TrimSpace(raw)
		if token == "" || utf8.RuneCountInString(token) < 2 {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func appendUnique(out *[]string, seen map[string]struct{}, token string) {
	if _, dup := seen[token]; dup {
		return
	}
	seen[token] = struct{}{}
	*out = append(*out, token)
}
