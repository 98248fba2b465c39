package extract

import (
	"regexp"
	"strings"
)

// phoneRe matches a mainland mobile number that is not part of a longer run
// of digits. Any decimal digit counts after the 1[3-9] prefix, full-width
// included. RE2 has no lookaround, so the neighbours are consumed and the
// number is read from group 1.
var phoneRe = regexp.MustCompile(`(?:^|[^\p{Nd}])(1[3-9]\p{Nd}{9})(?:[^\p{Nd}]|$)`)

// ExtractPhone returns the first mobile number in text and text with the
// first occurrence of that number removed. When there is no number the text
// is returned unchanged.
func ExtractPhone(text string) (phone, remainder string) {
	m := phoneRe.FindStringSubmatch(text)
	if m == nil {
		return "", text
	}
	phone = m[1]
	return phone, strings.Replace(text, phone, "", 1)
}
