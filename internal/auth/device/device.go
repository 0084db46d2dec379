// Package device turns raw User-Agent strings into short human-readable
// descriptions for the audit trail, so an entry reads "Chrome on Mac OS X"
// instead of a full UA string.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a compact "<browser> on <platform>" description.
func ParseUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	name, _ := ua.Browser()

	where := ua.OSInfo().Name
	if where == "" {
		where = ua.Platform()
	}

	switch {
	case name == "" && where == "":
		return "Unknown Device"
	case where == "":
		return name
	case name == "":
		return where
	}
	return strings.Join(strings.Fields(name+" on "+where), " ")
}
