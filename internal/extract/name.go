package extract

import (
	"regexp"
	"strings"
)

// nameRe accepts 2-4 common CJK ideographs, or a Latin name of 2-20
// letters, spaces and periods ("John Q. Public"). The whitespace class
// includes the ideographic space U+3000.
var nameRe = regexp.MustCompile(`^([\x{4e00}-\x{9fa5}]{2,4}|[A-Za-z\s\v\p{Z}.]{2,20})`)

// ExtractName returns the name found at the start of text and the rest of
// the text with the first occurrence of that name removed and trimmed.
// When no name is found the text is returned unchanged.
func ExtractName(text string) (name, remainder string) {
	m := nameRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", text
	}
	name = strings.TrimSpace(m[1])
	return name, strings.TrimSpace(strings.Replace(text, name, "", 1))
}
