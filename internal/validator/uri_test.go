package validator

import "testing"

func TestValidateURI(t *testing.T) {
	valid := []string{
		"https://example.com/Users/2819c223",
		"urn:ietf:params:scim:schemas:core:2.0:User",
		"/Users/2819c223",
	}
	invalid := []string{
		"",
		"\x7f",
	}
	for _, v := range valid {
		if !ValidateURI(v) {
			t.Errorf("expected valid URI: %s", v)
		}
	}
	for _, v := range invalid {
		if ValidateURI(v) {
			t.Errorf("expected invalid URI: %q", v)
		}
	}
}
