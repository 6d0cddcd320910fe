package values

import (
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// PhoneNumber is the scalar "value" sub-attribute of a multi-valued
// phoneNumbers entry. RFC 7643 recommends, but does not require, E.164;
// this core enforces only non-blank, leaving strict formatting to a
// collaborator schema extension if one is needed.
type PhoneNumber string

// NewPhoneNumber validates that s is non-blank.
func NewPhoneNumber(s string) (PhoneNumber, error) {
	if strings.TrimSpace(s) == "" {
		return "", errs.InvalidInput("phoneNumbers.value", "must not be blank")
	}
	return PhoneNumber(s), nil
}

func (p PhoneNumber) String() string {
	return string(p)
}
