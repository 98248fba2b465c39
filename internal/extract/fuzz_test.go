package extract

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/samber/lo"
)

var mobileRe = regexp.MustCompile(`^1[3-9]\p{Nd}{9}$`)

func FuzzExtract(f *testing.F) {
	f.Add("李雷 13800000000 广东省广州市天河区天河路100号")
	f.Add("张三 13912345678 北京市朝阳区")
	f.Add("John Q. Public 13500001111 上海市浦东新区世纪大道100号")
	f.Add("")
	f.Add("   ")
	f.Add("省省省")
	f.Add("\xff\xfe")
	f.Add("138000000001")

	f.Fuzz(func(t *testing.T, s string) {
		got, err := Extract(s)
		if strings.TrimSpace(s) == "" {
			if !errors.Is(err, ErrEmptyAddress) {
				t.Fatalf("blank input %q: want ErrEmptyAddress, got %v", s, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("Extract(%q) returned error: %v", s, err)
		}
		for k, v := range got {
			if !lo.Contains(Fields, k) {
				t.Fatalf("unexpected field %q", k)
			}
			if v == "" {
				t.Fatalf("field %q kept with empty value", k)
			}
		}
		if phone, ok := got[FieldPhone]; ok && !mobileRe.MatchString(phone) {
			t.Fatalf("phone %q does not have the mobile shape", phone)
		}
	})
}
