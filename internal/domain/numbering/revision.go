package numbering

import (
	"fmt"
	"regexp"
	"strconv"
)

var revisionToken = regexp.MustCompile(`^quote-.*?-(\d+)$`)

// NextRevision returns the revision number for a copy of a quotation whose
// current revision number, quotation number and title are given. A stored
// revision number wins; otherwise a trailing quote-...-<n> token in the
// number or title is used; otherwise the copy is revision 1.
func NextRevision(current int, number, title string) int {
	if current > 0 {
		return current + 1
	}
	for _, s := range []string{number, title} {
		m := revisionToken.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n + 1
		}
	}
	return 1
}

// RevisionNumber builds the quotation number of a revision:
// quote-<first 8 chars of the party id>-<revision>.
func RevisionNumber(partyID string, revision int) string {
	short := partyID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("quote-%s-%d", short, revision)
}
