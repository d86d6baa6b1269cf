package validators

import (
	"net"
	"strings"
)

// LookupDomain reports whether a mail domain resolves. Tests replace it.
var LookupDomain = func(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	return LookupDomain(email[at+1:])
}
