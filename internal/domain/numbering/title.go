package numbering

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultTitleSuffix is appended to a party name to form the base title of
// a quotation created without one.
const DefaultTitleSuffix = "_Quotation"

// Disambiguate returns base unchanged when no existing title is base or a
// versioned form of it. Otherwise it returns base_v<n> where n is one above
// the highest version already taken. An unversioned base counts as version 1.
// The legacy base_<n> form, written as a running count, is honoured for
// counts of up to three digits; longer numbers such as base_2024 are part of
// a different title. Matching ignores case.
func Disambiguate(base string, existing []string) string {
	pattern := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(base) + `(?:_v(\d+)|_([1-9]\d{0,2}))?$`)

	matched := false
	highest := 0
	for _, title := range existing {
		m := pattern.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		matched = true
		version := 1
		if suffix := m[1] + m[2]; suffix != "" {
			n, err := strconv.Atoi(suffix)
			if err != nil {
				continue
			}
			version = n
		}
		if version > highest {
			highest = version
		}
	}

	if !matched {
		return base
	}
	return fmt.Sprintf("%s_v%d", base, highest+1)
}
