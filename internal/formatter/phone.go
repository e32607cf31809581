package formatter

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DialingCode returns the international calling prefix for an ISO 3166-1
// alpha-2 region, e.g. "NG" -> "+234". Unknown regions give "".
func DialingCode(region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return ""
	}
	code := phonenumbers.GetCountryCodeForRegion(region)
	if code == 0 {
		return ""
	}
	return "+" + strconv.Itoa(code)
}
