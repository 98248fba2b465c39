// Package extract splits one pasted line of "name, phone, address" text into
// structured recipient fields.
//
// The pipeline runs four stages strictly left to right: the phone number is
// removed first, then a name anchored at the start of what is left, then the
// remaining address is carved into province, city, district, street and
// detail. Each stage consumes the first textual occurrence of what it matched
// and hands the rest on.
//
// All functions are safe for concurrent use by multiple goroutines.
package extract

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// Field names of a Record.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldProvince = "province"
	FieldCity     = "city"
	FieldDistrict = "district"
	FieldStreet   = "street"
	FieldDetail   = "detail"
)

// Fields lists every key a Record may carry, in output order.
var Fields = []string{
	FieldName,
	FieldPhone,
	FieldProvince,
	FieldCity,
	FieldDistrict,
	FieldStreet,
	FieldDetail,
}

// ErrEmptyAddress is returned when the input is blank after trimming.
var ErrEmptyAddress = errors.New("address must not be empty")

// Record maps field names to extracted values. Only populated fields are
// present; a Record may be empty.
type Record map[string]string

// Get returns the value of field, or "" when it was not extracted.
func (r Record) Get(field string) string {
	return r[field]
}

// Extract runs the full pipeline over input.
func Extract(input string) (Record, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyAddress
	}

	phone, remaining := ExtractPhone(input)
	name, remaining := ExtractName(remaining)
	address := SegmentAddress(remaining)

	all := address.Map()
	all[FieldName] = name
	all[FieldPhone] = phone
	all[FieldDetail] = strings.TrimSpace(all[FieldDetail])

	return Record(lo.PickBy(all, func(_ string, v string) bool {
		return v != ""
	})), nil
}
