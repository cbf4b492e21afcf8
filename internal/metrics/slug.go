package metrics

import (
	"strings"
	"unicode"
)

// slug turns a label into a lowercase identifier safe for keys and file
// names: "High Demand, Minor Gap" becomes "high_demand_minor_gap".
func slug(label string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			pendingSep = false
			continue
		}
		pendingSep = true
	}
	return b.String()
}
