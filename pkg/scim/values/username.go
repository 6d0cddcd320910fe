package values

import (
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// UserName is the RFC 7643 User.userName attribute: a required, server- or
// client-unique identifier with no format constraint beyond non-empty.
type UserName string

// NewUserName validates that s is non-blank.
func NewUserName(s string) (UserName, error) {
	if strings.TrimSpace(s) == "" {
		return "", errs.MissingRequiredAttribute("userName")
	}
	return UserName(s), nil
}

func (u UserName) String() string {
	return string(u)
}
