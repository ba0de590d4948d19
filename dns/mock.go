package dns

import (
	"context"
	"net"
	"slices"
)

// MockClient is a Client used for testing.
// Set DNS records in the fields, which map FQDNs (with trailing dot) to
// values. Names without records get ErrNotFound, matching real resolvers.
type MockClient struct {
	TXT  map[string][]string
	A    map[string][]string
	AAAA map[string][]string
	MX   map[string][]*net.MX

	// Fail contains records that will return a transport error (SERVFAIL).
	// Format: "type name", e.g. "txt example.com." where type is lowercase.
	Fail []string
}

var _ Client = MockClient{}

// mockReq identifies one mock DNS request.
type mockReq struct {
	Type string // E.g. "txt", "a", "aaaa", "mx".
	Name string // FQDN with trailing dot.
}

func (mr mockReq) String() string {
	return mr.Type + " " + mr.Name
}

// ensureFQDN ensures the name ends with a dot.
func ensureFQDN(name string) string {
	if len(name) == 0 || name[len(name)-1] != '.' {
		return name + "."
	}
	return name
}

func (c MockClient) check(ctx context.Context, mr mockReq) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if slices.Contains(c.Fail, mr.String()) {
		return ErrServFail
	}
	return nil
}

// LookupTXT returns the configured TXT records for the given domain.
func (c MockClient) LookupTXT(ctx context.Context, name string) ([]string, error) {
	fqdn := ensureFQDN(name)

	if err := c.check(ctx, mockReq{"txt", fqdn}); err != nil {
		return nil, err
	}

	records, ok := c.TXT[fqdn]
	if !ok || len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// LookupIP returns the configured A and AAAA records for the given domain.
func (c MockClient) LookupIP(ctx context.Context, name string) ([]net.IP, error) {
	fqdn := ensureFQDN(name)

	if err := c.check(ctx, mockReq{"a", fqdn}); err != nil {
		return nil, err
	}
	if err := c.check(ctx, mockReq{"aaaa", fqdn}); err != nil {
		return nil, err
	}

	var ips []net.IP
	for _, ip := range c.A[fqdn] {
		ips = append(ips, net.ParseIP(ip))
	}
	for _, ip := range c.AAAA[fqdn] {
		ips = append(ips, net.ParseIP(ip))
	}

	if len(ips) == 0 {
		return nil, ErrNotFound
	}

	return ips, nil
}

// LookupMX returns the configured MX records for the given domain.
func (c MockClient) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	fqdn := ensureFQDN(name)

	if err := c.check(ctx, mockReq{"mx", fqdn}); err != nil {
		return nil, err
	}

	records, ok := c.MX[fqdn]
	if !ok || len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}
