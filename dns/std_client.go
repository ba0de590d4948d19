package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// StdClient implements the Client interface using the standard library net
// package. Use Resolver to query specific nameservers; StdClient always goes
// through the system resolver.
type StdClient struct {
	resolver *net.Resolver
}

var _ Client = (*StdClient)(nil)

// NewStdClient creates a client backed by the default system resolver.
func NewStdClient() *StdClient {
	return &StdClient{
		resolver: net.DefaultResolver,
	}
}

// NewStdClientWithDialer creates a client using a custom dialer. This allows
// directing queries at specific DNS servers while keeping the stdlib interface.
func NewStdClientWithDialer(dial func(ctx context.Context, network, address string) (net.Conn, error)) *StdClient {
	return &StdClient{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial:     dial,
		},
	}
}

// LookupTXT retrieves TXT records using the standard library. The stdlib
// already joins the character-strings of each record.
func (c *StdClient) LookupTXT(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSuffix(name, ".")

	records, err := c.resolver.LookupTXT(ctx, name)
	if err != nil {
		return nil, convertError(err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// LookupIP retrieves A and AAAA records using the standard library.
func (c *StdClient) LookupIP(ctx context.Context, name string) ([]net.IP, error) {
	name = strings.TrimSuffix(name, ".")

	ips, err := c.resolver.LookupIP(ctx, "ip", name)
	if err != nil {
		return nil, convertError(err)
	}

	if len(ips) == 0 {
		return nil, ErrNotFound
	}

	return ips, nil
}

// LookupMX retrieves MX records using the standard library.
func (c *StdClient) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	name = strings.TrimSuffix(name, ".")

	records, err := c.resolver.LookupMX(ctx, name)
	if err != nil {
		return nil, convertError(err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// convertError maps standard library DNS errors to package errors so that
// "not found" stays distinguishable from transport failures.
func convertError(err error) error {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return ErrNotFound
		}
		if dnsErr.IsTimeout {
			return ErrTimeout
		}
		if dnsErr.IsTemporary {
			return ErrServFail
		}
	}

	return fmt.Errorf("dns lookup failed: %w", err)
}
