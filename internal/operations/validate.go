package operations

import (
	"net"
	"net/mail"
	"strings"
)

const minPasswordLength = 8

// lookupMX is swappable in tests.
var lookupMX = net.LookupMX

// ValidateEmail rejects malformed addresses. When checkDomain is set it also
// requires the domain to have at least one MX record.
func ValidateEmail(email string, checkDomain bool) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "malformed email address"}
	}
	if checkDomain {
		domain := email[strings.LastIndex(email, "@")+1:]
		records, err := lookupMX(domain)
		if err != nil || len(records) == 0 {
			return &ValidationError{Field: "email", Message: "email domain does not accept mail"}
		}
	}
	return nil
}

// ValidatePassword enforces the minimum credential strength.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &ValidationError{Field: "password", Message: "password must have at least 8 characters"}
	}
	return nil
}
