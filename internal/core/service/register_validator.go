package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/marketplace/identity-service/internal/core/domain"
)

// emailPattern requires a plausible local part, one @, dotted domain labels,
// and a final label of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

// RegisterValidator runs the ordered registration checks. Checks are
// fail-fast: the first failing rule is the only one reported, so a request
// always yields exactly one terminal outcome.
type RegisterValidator struct {
	v *validator.Validate
}

func NewRegisterValidator() *RegisterValidator {
	return &RegisterValidator{v: validator.New()}
}

// Validate applies the checks in order: presence, role, seller shop name,
// email format, password strength. Uniqueness is not checked here; it is the
// repository's concern.
func (rv *RegisterValidator) Validate(reg domain.Registration) error {
	for _, field := range []string{reg.Username, reg.Email, reg.Password, reg.Role} {
		if err := rv.v.Var(field, "required"); err != nil {
			return domain.ErrMissingFields
		}
	}

	if err := rv.v.Var(reg.Role, "oneof=customer seller"); err != nil {
		return domain.ErrInvalidRole
	}

	if reg.Role == domain.RoleSeller && strings.TrimSpace(reg.ShopName) == "" {
		return domain.ErrMissingShopName
	}

	if !emailPattern.MatchString(reg.Email) {
		return domain.ErrInvalidEmailFormat
	}

	if len(reg.Password) < minPasswordLen {
		return domain.ErrWeakPassword
	}

	return nil
}
