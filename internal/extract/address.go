package extract

import (
	"regexp"
	"strings"
)

// Components holds the address fields carved out by SegmentAddress. Empty
// strings mean the field was not found.
type Components struct {
	Province string
	City     string
	District string
	Street   string
	Detail   string
}

// segment is one step of the address walk: the matched group 1 of re is
// stored through set and then cut out of the working string.
type segment struct {
	re  *regexp.Regexp
	set func(*Components, string)
}

// Order matters. City and district share the 市/区 suffixes, so district
// only sees what city left behind.
var segments = []segment{
	{
		re:  regexp.MustCompile(`([^省]+省?|上海|北京|天津|重庆)`),
		set: func(c *Components, v string) { c.Province = v },
	},
	{
		re:  regexp.MustCompile(`([^市]+市|[^州]+州|[^盟]+盟|[^区]+区|.+区划)`),
		set: func(c *Components, v string) { c.City = v },
	},
	{
		re:  regexp.MustCompile(`([^市]+市|[^区]+区|.+?[县旗]|.+?市|.+?区)`),
		set: func(c *Components, v string) { c.District = v },
	},
	{
		re:  regexp.MustCompile(`([^路]+路|[^街]+街|[^道]+道|.+?镇|.+乡|.+街道)`),
		set: func(c *Components, v string) { c.Street = v },
	},
	{
		re:  regexp.MustCompile(`(\p{Nd}+[号-][^，,。.；;!！?？、\s\p{Z}]*)`),
		set: func(c *Components, v string) { c.Detail = v },
	},
}

// SegmentAddress splits address into its components. Each pattern is tried
// once against the text the previous ones left; whatever is still unmatched
// at the end is appended to Detail.
func SegmentAddress(address string) Components {
	var c Components
	for _, s := range segments {
		m := s.re.FindStringSubmatch(address)
		if m == nil || m[1] == "" {
			continue
		}
		s.set(&c, m[1])
		address = strings.TrimSpace(strings.Replace(address, m[1], "", 1))
	}

	if address != "" {
		c.Detail = strings.TrimSpace(c.Detail + " " + address)
	}
	return c
}

// Map returns the components keyed by field name, empty values included.
func (c Components) Map() map[string]string {
	return map[string]string{
		FieldProvince: c.Province,
		FieldCity:     c.City,
		FieldDistrict: c.District,
		FieldStreet:   c.Street,
		FieldDetail:   c.Detail,
	}
}
