// Package dns provides the DNS lookups needed to walk SPF records:
// TXT, A/AAAA and MX queries against configurable nameservers.
package dns

import (
	"context"
	"net"
)

// Client issues the DNS queries the SPF resolver depends on.
//
// Implementations must return an error for which IsNotFound is true when a
// name has no matching records, and a different error when the query itself
// could not be completed. The SPF resolver treats the former as a normal
// empty result and the latter as fatal for the branch being resolved.
type Client interface {
	// LookupTXT returns the TXT records for name. The character-strings of
	// each record are joined without a separator per RFC 7208 Section 3.3,
	// so each returned string is one complete TXT record.
	LookupTXT(ctx context.Context, name string) ([]string, error)

	// LookupIP returns the A and AAAA records for name.
	LookupIP(ctx context.Context, name string) ([]net.IP, error)

	// LookupMX returns the MX records for name.
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}
