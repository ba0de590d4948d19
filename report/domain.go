package report

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// OrganizationalDomain returns the organizational domain for the given
// domain: the domain directly under the public suffix.
// For example:
//   - example.com -> example.com
//   - sub.example.com -> example.com
//   - sub.example.co.uk -> example.co.uk
//
// Report rows for hosts under the same registrable parent can be grouped on
// this field. Uses the ICANN section of the Public Suffix List.
func OrganizationalDomain(domain string) string {
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	if domain == "" {
		return ""
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		// "localhost", bare TLDs and other names without a registrable
		// parent are reported as-is.
		return domain
	}

	return etld1
}
