package spf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/idna"

	"github.com/synqronlabs/spftrace/dns"
)

// RFC 7208 Section 4.6.4 caps DNS-querying terms at 10 per check; chains
// past 6 are worth warning about before they grow into the cap.
const (
	lookupWarn = 6
	lookupMax  = 10
)

// versionTag is the required first term of an SPF record, matched
// case-sensitively per RFC 7208 Section 4.5.
const versionTag = "v=spf1"

// Resolver walks SPF chains. It fetches a domain's SPF TXT record, parses
// its directives and recursively follows include, redirect, a and mx
// mechanisms, producing the flattened list of authorized sources.
//
// Resolution is a synchronous recursive descent: every mechanism needing a
// DNS answer blocks until it arrives. Cancellation and timeouts are the
// dns.Client's concern; pass a context with a deadline to bound a call.
type Resolver struct {
	client dns.Client
	log    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for per-domain debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// NewResolver returns a Resolver that issues its lookups through client.
func NewResolver(client dns.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client: client,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// state carries the bookkeeping threaded through one Resolve call: the cycle
// guard, the distinct source domains seen so far and the collected
// diagnostics. Nothing here is shared between calls.
type state struct {
	// path holds the domains on the current recursion path. Only a chain
	// referring back to an ancestor loops; distinct branches may legitimately
	// include the same domain twice.
	path    map[string]bool
	domains map[string]bool
	diags   []Diagnostic

	warned   bool
	exceeded bool
}

func (st *state) diag(code DiagnosticCode, domain, detail string) {
	st.diags = append(st.diags, Diagnostic{Code: code, Domain: domain, Detail: detail})
}

// trackBudget emits the lookup-budget diagnostics when the chain's
// distinct-domain count crosses the RFC 7208 thresholds, once per threshold.
// The budget is reported, never enforced: resolution continues.
func (st *state) trackBudget(domain string) {
	n := len(st.domains)
	if n > lookupWarn && !st.warned {
		st.warned = true
		st.diag(DiagLookupBudgetAdvisory, domain,
			fmt.Sprintf("chain touches %d domains, approaching the RFC 7208 cap of %d", n, lookupMax))
	}
	if n > lookupMax && !st.exceeded {
		st.exceeded = true
		st.diag(DiagLookupBudgetExceeded, domain,
			fmt.Sprintf("chain touches %d domains, RFC 7208 allows %d", n, lookupMax))
	}
}

// Resolve walks the SPF chain for domain and returns the flattened entries
// together with any diagnostics. Missing or malformed SPF content never
// fails the call; the only error returned is a DNS transport failure, which
// aborts resolution of this domain. Callers checking several domains should
// isolate failures per domain.
func (r *Resolver) Resolve(ctx context.Context, domain string) (*Result, error) {
	name, err := normalizeDomain(domain)
	if err != nil {
		return nil, fmt.Errorf("spf: invalid domain %q: %w", domain, err)
	}

	st := &state{
		path:    make(map[string]bool),
		domains: make(map[string]bool),
	}

	entries, err := r.resolve(ctx, st, name, "")
	if err != nil {
		return nil, err
	}

	return &Result{Entries: entries, Diagnostics: st.diags}, nil
}

// resolve handles one domain of the chain. referrer is non-empty on
// recursive invocations and names the domain whose record referred here;
// its presence is what marks produced entries as included.
func (r *Resolver) resolve(ctx context.Context, st *state, domain, referrer string) ([]Entry, error) {
	if st.path[domain] {
		st.diag(DiagRevisitedDomain, domain, "include or redirect chain loops back to "+domain)
		return nil, nil
	}
	st.path[domain] = true
	defer delete(st.path, domain)

	txts, err := r.client.LookupTXT(ctx, domain)
	if err != nil && !dns.IsNotFound(err) {
		return nil, fmt.Errorf("spf: TXT lookup for %s: %w", domain, err)
	}

	var records []string
	for _, txt := range txts {
		if isSPFRecord(txt) {
			records = append(records, txt)
		}
	}

	switch {
	case len(records) == 0:
		st.diag(DiagNoRecord, domain, "no v=spf1 TXT record")
		return nil, nil
	case len(records) > 1:
		// RFC 7208 Section 3.2 forbids publishing more than one record.
		// Picking one would guess at the publisher's intent.
		st.diag(DiagMultipleRecords, domain, fmt.Sprintf("%d v=spf1 TXT records published", len(records)))
		return nil, nil
	}

	terms := strings.Fields(records[0])
	directives := make([]directive, 0, len(terms))
	for _, term := range terms {
		directives = append(directives, parseDirective(term))
	}

	qualifier := terminalQualifier(directives)

	// A redirect modifier replaces evaluation of this record entirely, even
	// when other mechanisms are present alongside it.
	for _, d := range directives {
		if d.kind != mechRedirect {
			continue
		}
		target, err := normalizeDomain(d.arg)
		if err != nil {
			st.diag(DiagUnknownDirective, domain, d.raw)
			return nil, nil
		}
		r.log.Debug("following redirect", "domain", domain, "target", target)
		return r.resolve(ctx, st, target, domain)
	}

	var entries []Entry
	add := func(value string) {
		entries = append(entries, newEntry(domain, value, qualifier, referrer))
		st.domains[domain] = true
	}

	for _, d := range directives {
		switch d.kind {
		case mechVersion, mechAll:
			// Version tag and terminal all are consumed above.

		case mechMacro:
			st.diag(DiagUnsupportedDirective, domain, "macros are not evaluated: "+d.raw)

		case mechExp:
			st.diag(DiagUnsupportedDirective, domain, "exp is not evaluated: "+d.raw)

		case mechInclude:
			target, err := normalizeDomain(d.arg)
			if err != nil {
				st.diag(DiagUnknownDirective, domain, d.raw)
				continue
			}
			r.log.Debug("following include", "domain", domain, "target", target)
			sub, err := r.resolve(ctx, st, target, domain)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)

		case mechIP4, mechIP6:
			add(d.arg)

		case mechA:
			target := d.arg
			if target == "" {
				target = domain
			}
			ips, err := r.client.LookupIP(ctx, target)
			if err != nil && !dns.IsNotFound(err) {
				return nil, fmt.Errorf("spf: A lookup for %s: %w", target, err)
			}
			for _, ip := range ips {
				add(ip.String())
			}

		case mechMX:
			target := d.arg
			if target == "" {
				target = domain
			}
			mxs, err := r.client.LookupMX(ctx, target)
			if err != nil && !dns.IsNotFound(err) {
				return nil, fmt.Errorf("spf: MX lookup for %s: %w", target, err)
			}
			for _, mx := range mxs {
				host := strings.TrimSuffix(mx.Host, ".")
				if host == "" {
					continue
				}
				ips, err := r.client.LookupIP(ctx, host)
				if err != nil && !dns.IsNotFound(err) {
					return nil, fmt.Errorf("spf: A lookup for %s: %w", host, err)
				}
				for _, ip := range ips {
					add(ip.String())
				}
			}

		default:
			st.diag(DiagUnknownDirective, domain, d.raw)
		}
	}

	st.trackBudget(domain)

	return entries, nil
}

// isSPFRecord reports whether txt is an SPF record. The version tag must be
// the whole first term and is matched case-sensitively.
func isSPFRecord(txt string) bool {
	return txt == versionTag || strings.HasPrefix(txt, versionTag+" ")
}

// normalizeDomain lower-cases a domain, strips the trailing dot and converts
// internationalized names to their ASCII (A-label) form.
func normalizeDomain(domain string) (string, error) {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	if domain == "" {
		return "", fmt.Errorf("empty domain")
	}
	if isASCII(domain) {
		return domain, nil
	}
	return idna.Lookup.ToASCII(domain)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
