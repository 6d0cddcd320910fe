package values

import (
	"github.com/xraph/scimcore/internal/errs"
	"github.com/xraph/scimcore/internal/validator"
)

// EmailAddress is the scalar "value" sub-attribute of a multi-valued
// emails entry (spec.md §2 L0). Type/primary/display wrapping is carried
// generically by MultiValued[T], not by this type.
type EmailAddress string

// NewEmailAddress validates s as an email address.
func NewEmailAddress(s string) (EmailAddress, error) {
	if !validator.ValidateEmail(s) {
		return "", errs.InvalidInput("emails.value", "not a valid email address: "+s)
	}
	return EmailAddress(s), nil
}

func (e EmailAddress) String() string {
	return string(e)
}
