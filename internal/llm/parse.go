package llm

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"triangulate/internal/model"
)

// Parsers for the minimal key:value output the extraction prompts ask
// for. Models drift, so each parser tolerates surrounding prose and
// falls back to a bare year match when the tagged line is missing.

var (
	yearRe      = regexp.MustCompile(`\b(1[6-9]\d{2}|20\d{2})\b`)
	containsRe  = regexp.MustCompile(`(?i)contains_birthdate:\s*(true|false)`)
	birthYearRe = regexp.MustCompile(`(?i)birth_year:\s*(null|\d{4})`)
	statusRe    = regexp.MustCompile(`(?i)status:\s*(deceased|alive|unknown)`)
	deathYearRe = regexp.MustCompile(`(?i)death_year:\s*(null|\d{4})`)
	natFoundRe  = regexp.MustCompile(`(?i)nationalities_found:\s*(true|false)`)
	natListRe   = regexp.MustCompile(`(?is)nationalities:\s*\[(.*?)\]`)
	natCodeRe   = regexp.MustCompile(`"([A-Z]{3})"`)
)

func yearInRange(y int) bool {
	return y >= model.MinYear && y <= model.MaxYear
}

// parseTaggedYear reads a `key: YYYY|null` line, returning 0 when absent,
// null, or out of range.
func parseTaggedYear(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	val := strings.ToLower(m[1])
	if val == "null" {
		return 0
	}
	y, err := strconv.Atoi(val)
	if err != nil || !yearInRange(y) {
		return 0
	}
	return y
}

// fallbackYear scans the whole output for any in-range year
func fallbackYear(text string) int {
	m := yearRe.FindString(text)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	if !yearInRange(y) {
		return 0
	}
	return y
}

// ParseBirthOutput interprets the birth prompt's output
func ParseBirthOutput(text string) model.Claim {
	claim := model.Claim{}

	if m := containsRe.FindStringSubmatch(text); m != nil && strings.EqualFold(m[1], "true") {
		claim.Present = true
	}

	claim.Year = parseTaggedYear(birthYearRe, text)
	if claim.Present && claim.Year == 0 {
		claim.Year = fallbackYear(text)
	}
	if claim.Year == 0 {
		// A birthdate flag without a parseable year is no claim
		claim.Present = false
	}
	return claim
}

// ParseDeathOutput interprets the death prompt's output
func ParseDeathOutput(text string) model.Claim {
	claim := model.Claim{Status: model.StatusUnknown}

	if m := statusRe.FindStringSubmatch(text); m != nil {
		claim.Status = model.LifeStatus(strings.ToLower(m[1]))
	}

	claim.Year = parseTaggedYear(deathYearRe, text)
	if claim.Status == model.StatusDeceased && claim.Year == 0 {
		claim.Year = fallbackYear(text)
	}

	claim.Present = claim.Status == model.StatusDeceased || claim.Status == model.StatusAlive
	return claim
}

// ParseNationalityOutput interprets the nationality prompt's output.
// Codes are deduplicated and sorted so repeated runs are stable.
func ParseNationalityOutput(text string) model.Claim {
	claim := model.Claim{}

	if m := natFoundRe.FindStringSubmatch(text); m != nil && strings.EqualFold(m[1], "true") {
		claim.Present = true
	}

	if m := natListRe.FindStringSubmatch(text); m != nil {
		seen := make(map[string]struct{})
		for _, cm := range natCodeRe.FindAllStringSubmatch(m[1], -1) {
			if _, dup := seen[cm[1]]; !dup {
				seen[cm[1]] = struct{}{}
				claim.Codes = append(claim.Codes, cm[1])
			}
		}
		sort.Strings(claim.Codes)
	}

	if len(claim.Codes) == 0 {
		claim.Present = false
	}
	return claim
}

var (
	eduFoundRe  = regexp.MustCompile(`(?i)education_found:\s*(true|false)`)
	eduListRe   = regexp.MustCompile(`(?is)education_mentions:\s*\[(.*?)\]`)
	quotedRe    = regexp.MustCompile(`"([^"]+)"`)
	jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*|```\\s*$")
)

// ParseEducationMentions interprets the stage-1 education output
func ParseEducationMentions(text string) (bool, []string) {
	found := false
	if m := eduFoundRe.FindStringSubmatch(text); m != nil && strings.EqualFold(m[1], "true") {
		found = true
	}

	var mentions []string
	if m := eduListRe.FindStringSubmatch(text); m != nil {
		for _, qm := range quotedRe.FindAllStringSubmatch(m[1], -1) {
			mentions = append(mentions, qm[1])
		}
	}
	if len(mentions) == 0 {
		found = false
	}
	return found, mentions
}

// ParseEducationEvents interprets the stage-2 structuring output,
// tolerating a markdown code fence around the JSON
func ParseEducationEvents(text string) []model.EducationEvent {
	cleaned := strings.TrimSpace(jsonFenceRe.ReplaceAllString(text, ""))

	var out struct {
		Events []model.EducationEvent `json:"education_events"`
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil
	}
	return out.Events
}
