package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		isNotFound bool
		isTemp     bool
	}{
		{
			name:       "not found error",
			err:        ErrNotFound,
			isNotFound: true,
		},
		{
			name:   "timeout error",
			err:    ErrTimeout,
			isTemp: true,
		},
		{
			name:   "server failure",
			err:    ErrServFail,
			isTemp: true,
		},
		{
			name:   "refused",
			err:    ErrRefused,
			isTemp: true,
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("lookup example.com: %w", ErrNotFound),
			isNotFound: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("boom"),
		},
		{
			name: "nil error",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.isNotFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.isNotFound)
			}
			if got := IsTemporary(tt.err); got != tt.isTemp {
				t.Errorf("IsTemporary() = %v, want %v", got, tt.isTemp)
			}
		})
	}
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(Config{Nameservers: []string{"192.0.2.53"}})

	cfg := r.Config()
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.Retries != 2 {
		t.Errorf("Retries = %d, want 2", cfg.Retries)
	}
	if len(cfg.Nameservers) != 1 || cfg.Nameservers[0] != "192.0.2.53:53" {
		t.Errorf("Nameservers = %v, want default port appended", cfg.Nameservers)
	}
}

func TestEnsureAbsolute(t *testing.T) {
	if got := ensureAbsolute("example.com"); got != "example.com." {
		t.Errorf("ensureAbsolute(example.com) = %q", got)
	}
	if got := ensureAbsolute("example.com."); got != "example.com." {
		t.Errorf("ensureAbsolute(example.com.) = %q", got)
	}
}

func TestMockClientTXT(t *testing.T) {
	mock := MockClient{
		TXT: map[string][]string{
			"example.com.": {"v=spf1 -all", "other record"},
		},
		Fail: []string{"txt broken.example.com."},
	}

	ctx := context.Background()

	records, err := mock.LookupTXT(ctx, "example.com")
	if err != nil {
		t.Fatalf("LookupTXT() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("LookupTXT() returned %d records, want 2", len(records))
	}

	_, err = mock.LookupTXT(ctx, "missing.example.com")
	if !IsNotFound(err) {
		t.Errorf("LookupTXT(missing) error = %v, want not found", err)
	}

	_, err = mock.LookupTXT(ctx, "broken.example.com")
	if !errors.Is(err, ErrServFail) {
		t.Errorf("LookupTXT(broken) error = %v, want ErrServFail", err)
	}
}

func TestMockClientIP(t *testing.T) {
	mock := MockClient{
		A: map[string][]string{
			"mail.example.com.": {"192.0.2.10"},
		},
		AAAA: map[string][]string{
			"mail.example.com.": {"2001:db8::10"},
		},
	}

	ips, err := mock.LookupIP(context.Background(), "mail.example.com")
	if err != nil {
		t.Fatalf("LookupIP() error = %v", err)
	}
	if len(ips) != 2 {
		t.Fatalf("LookupIP() returned %d addresses, want 2", len(ips))
	}
	if !ips[0].Equal(net.ParseIP("192.0.2.10")) {
		t.Errorf("LookupIP()[0] = %v, want 192.0.2.10", ips[0])
	}
}

func TestMockClientMX(t *testing.T) {
	mock := MockClient{
		MX: map[string][]*net.MX{
			"example.com.": {{Host: "mail.example.com.", Pref: 10}},
		},
	}

	mxs, err := mock.LookupMX(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("LookupMX() error = %v", err)
	}
	if len(mxs) != 1 || mxs[0].Host != "mail.example.com." {
		t.Errorf("LookupMX() = %v, want mail.example.com.", mxs)
	}
}

func TestMockClientContextCancelled(t *testing.T) {
	mock := MockClient{
		TXT: map[string][]string{"example.com.": {"v=spf1 -all"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.LookupTXT(ctx, "example.com")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("LookupTXT() error = %v, want context.Canceled", err)
	}
}

func TestConvertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "not found",
			err:  &net.DNSError{Err: "no such host", IsNotFound: true},
			want: ErrNotFound,
		},
		{
			name: "timeout",
			err:  &net.DNSError{Err: "i/o timeout", IsTimeout: true},
			want: ErrTimeout,
		},
		{
			name: "temporary",
			err:  &net.DNSError{Err: "server misbehaving", IsTemporary: true},
			want: ErrServFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("convertError() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := convertError(nil); got != nil {
		t.Errorf("convertError(nil) = %v, want nil", got)
	}
}
