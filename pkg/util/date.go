package util

import (
	"strings"
	"time"
)

// tplReplacer maps template placeholders to Go layout tokens. Longer tokens
// come first so YYYY wins over YY.
var tplReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"hh", "15",
	"mm", "04",
	"ss", "05",
	"AP", "PM",
)

// FormatTimeTpl formats t using a template with placeholders.
//
// Supported placeholders:
//   - YYYY: 4-digit year
//   - YY: 2-digit year
//   - MM: 2-digit month (01-12)
//   - DD: 2-digit day (01-31)
//   - hh: 2-digit hour (00-23)
//   - mm: 2-digit minute (00-59)
//   - ss: 2-digit second (00-59)
//   - AP: AM/PM marker
//
// Example:
//
//	FormatTimeTpl(t, "DD/MM/YYYY") // "10/11/2023"
//	FormatTimeTpl(t, "hh:mm AP")   // "14:05 PM"
func FormatTimeTpl(t time.Time, tpl string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(tplReplacer.Replace(tpl))
}
