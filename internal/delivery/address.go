package delivery

import (
	"regexp"
	"strings"

	deliveryerrors "go-payroll/internal/delivery/errors"
)

var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Domains that never receive mail.
var disallowedDomains = map[string]struct{}{
	"example.org": {},
	"test.com":    {},
	"localhost":   {},
	"invalid":     {},
}

// ValidateAddress rejects recipients that are malformed, use an IP literal
// domain or belong to a reserved domain.
func ValidateAddress(addr string) error {
	addr = strings.TrimSpace(addr)
	if !addressPattern.MatchString(addr) {
		return deliveryerrors.ErrInvalidAddress
	}

	parts := strings.Split(addr, "@")
	if len(parts) != 2 {
		return deliveryerrors.ErrInvalidAddress
	}

	domain := strings.ToLower(parts[1])
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		return deliveryerrors.ErrInvalidAddress
	}
	if _, denied := disallowedDomains[domain]; denied {
		return deliveryerrors.ErrInvalidAddress
	}
	return nil
}

func IsValidAddress(addr string) bool {
	return ValidateAddress(addr) == nil
}
