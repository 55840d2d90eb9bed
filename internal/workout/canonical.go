package workout

import (
	"regexp"
	"strings"
)

type aliasRule struct {
	canonical string
	keys      []string
}

// matches reports whether any of the rule keys is contained in the
// cleaned (lowercased, trimmed) exercise name
func (r aliasRule) matches(clean string) bool {
	for _, k := range r.keys {
		if strings.Contains(clean, k) {
			return true
		}
	}
	return false
}

// aliasRules are evaluated in order, the first matching rule wins
var aliasRules = []aliasRule{
	{canonical: "Bench press", keys: []string{"bench", "bp", "flat bench"}},
	{canonical: "Overhead press", keys: []string{"ohp", "shoulder", "military", "overhead"}},
	{canonical: "Back squat", keys: []string{"squat", "bsq"}},
	{canonical: "Deadlift", keys: []string{"deadlift", "dl"}},
	{canonical: "Lat pulldown", keys: []string{"lat", "pulldown", "lats"}},
	{canonical: "Barbell row", keys: []string{"row", "bor", "barbell row"}},
	{canonical: "Dips", keys: []string{"dip"}},
}

var (
	wordStartRegex  = regexp.MustCompile(`\b\w`)
	nonLettersRegex = regexp.MustCompile(`[^a-zA-Z]`)
)

const liftCodeSuffix = "01"

// Canonicalize maps a free-text exercise name to its canonical name.
// Unknown names are returned with the first letter of every word upper-cased.
func Canonicalize(raw string) string {
	clean := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range aliasRules {
		if rule.matches(clean) {
			return rule.canonical
		}
	}
	return wordStartRegex.ReplaceAllStringFunc(raw, strings.ToUpper)
}

// LiftCode derives the short row key from a canonical exercise name,
// e.g. "Bench press" -> "BEN01". Names with fewer than 3 letters are not padded.
func LiftCode(canonical string) string {
	letters := nonLettersRegex.ReplaceAllString(canonical, "")
	if len(letters) > 3 {
		letters = letters[:3]
	}
	return strings.ToUpper(letters) + liftCodeSuffix
}
