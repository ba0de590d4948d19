// Package report turns resolved SPF chains into per-domain report records
// and renders them for operators. It is the glue between the spf resolver
// and whatever consumes the numbers; it does not persist anything.
package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/synqronlabs/spftrace/spf"
)

// Report is the flattened SPF resolution outcome for one domain.
type Report struct {
	// ID uniquely identifies this resolution run.
	ID string

	// Domain is the domain as requested.
	Domain string

	// OrgDomain is the organizational domain: the registrable domain
	// directly under the public suffix.
	OrgDomain string

	// Entries is the flattened list of authorized sources.
	Entries []spf.Entry

	// Diagnostics lists the non-fatal conditions found while resolving.
	Diagnostics []spf.Diagnostic

	// Lookups is the number of distinct source domains in the chain, the
	// SPF lookup count RFC 7208 caps at 10.
	Lookups int

	// Err is the transport failure that aborted resolution, if any.
	// A report with Err set has no entries.
	Err error

	// CheckedAt is when the resolution ran, in UTC.
	CheckedAt time.Time
}

// Runner resolves batches of domains. A transport failure for one domain is
// recorded on its report and never aborts the rest of the batch.
type Runner struct {
	resolver *spf.Resolver
	log      *slog.Logger
}

// NewRunner returns a Runner that resolves through resolver. A nil logger
// falls back to slog.Default.
func NewRunner(resolver *spf.Resolver, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{resolver: resolver, log: log}
}

// Run resolves each domain in order and returns one report per domain, in
// the same order.
func (r *Runner) Run(ctx context.Context, domains []string) []Report {
	reports := make([]Report, 0, len(domains))
	for _, domain := range domains {
		reports = append(reports, r.runOne(ctx, domain))
	}
	return reports
}

func (r *Runner) runOne(ctx context.Context, domain string) Report {
	rep := Report{
		ID:        ulid.Make().String(),
		Domain:    domain,
		OrgDomain: OrganizationalDomain(domain),
		CheckedAt: time.Now().UTC(),
	}

	result, err := r.resolver.Resolve(ctx, domain)
	if err != nil {
		r.log.Warn("SPF resolution failed",
			slog.String("domain", domain),
			slog.Any("error", err),
		)
		rep.Err = err
		return rep
	}

	rep.Entries = result.Entries
	rep.Diagnostics = result.Diagnostics
	rep.Lookups = result.Lookups()

	r.log.Info("SPF chain resolved",
		slog.String("domain", domain),
		slog.Int("entries", len(rep.Entries)),
		slog.Int("lookups", rep.Lookups),
		slog.Int("diagnostics", len(rep.Diagnostics)),
	)

	return rep
}
