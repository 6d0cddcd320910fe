package validator

import "time"

// ValidateRFC3339 reports whether s parses as an RFC 3339 timestamp, the
// format spec.md §4.2 rule 3 requires for dateTime attributes.
func ValidateRFC3339(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
