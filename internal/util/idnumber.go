package util

import (
	"regexp"
	"strings"
)

var idJunk = regexp.MustCompile(`[^0-9A-Za-z]+`)

// NormalizeIDNumber canonicalizes a national id number for matching.
// Legacy imports carry the same id as "63-123456A78", "63 123456 A 78"
// or "63123456a78"; all collapse to "63123456A78". Empty input stays
// empty so blank ids never collide with each other.
func NormalizeIDNumber(raw string) string {
	s := idJunk.ReplaceAllString(strings.TrimSpace(raw), "")

	return strings.ToUpper(s)
}
