package validator

import "testing"

func TestValidateRFC3339(t *testing.T) {
	valid := []string{
		"2026-07-31T10:00:00Z",
		"2026-07-31T10:00:00.123Z",
		"2026-07-31T10:00:00+02:00",
	}
	invalid := []string{
		"",
		"2026-07-31",
		"not-a-date",
		"2026-07-31 10:00:00",
	}
	for _, v := range valid {
		if !ValidateRFC3339(v) {
			t.Errorf("expected valid dateTime: %s", v)
		}
	}
	for _, v := range invalid {
		if ValidateRFC3339(v) {
			t.Errorf("expected invalid dateTime: %s", v)
		}
	}
}
