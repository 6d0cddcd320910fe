package validator

import "net/url"

// ValidateURI reports whether s is a syntactically valid URI, the check
// spec.md §4.2 rule 3 requires for reference-typed attributes.
func ValidateURI(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" || u.Opaque != "" || len(u.Path) > 0
}
