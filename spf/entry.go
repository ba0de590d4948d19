package spf

// Qualifier is the disposition a record attaches to the sources it lists,
// derived from the record's terminal "all" directive.
type Qualifier string

const (
	// QualifierPass: hosts matching the record's mechanisms are authorized.
	QualifierPass Qualifier = "pass"

	// QualifierFail: unmatched hosts are explicitly not authorized. "-all".
	QualifierFail Qualifier = "fail"

	// QualifierSoftfail: unmatched hosts are probably not authorized. "~all".
	QualifierSoftfail Qualifier = "softfail"

	// QualifierNeutral: the record states nothing about unmatched hosts.
	// "?all", or no terminal "all" at all.
	QualifierNeutral Qualifier = "neutral"
)

// qualifierFor maps a directive's qualifier prefix to its Qualifier.
// A bare "all" is equivalent to "+all" per RFC 7208 Section 4.6.2.
func qualifierFor(c byte) Qualifier {
	switch c {
	case '-':
		return QualifierFail
	case '~':
		return QualifierSoftfail
	case '?':
		return QualifierNeutral
	default:
		return QualifierPass
	}
}

// Entry is one resolved authorization: an IP address or CIDR range that some
// domain in the SPF chain allows to send mail.
type Entry struct {
	// Domain is the domain whose SPF record produced this entry. For
	// entries reached through include or redirect this is the nested
	// domain, not the domain originally queried.
	Domain string

	// Value is the authorized IP address or CIDR range, taken from an
	// ip4/ip6 mechanism or resolved from an a/mx lookup.
	Value string

	// Qualifier is the disposition of the record that produced this entry.
	Qualifier Qualifier

	// Referrer names the domain whose include (or redirect) pulled this
	// entry into the chain. Empty for entries found at the top level.
	Referrer string

	// Included reports whether this entry was reached through a nested
	// resolution rather than the top-level record.
	Included bool
}

// newEntry is the single construction path for entries. A non-empty referrer
// is what marks an entry as included.
func newEntry(domain, value string, qualifier Qualifier, referrer string) Entry {
	return Entry{
		Domain:    domain,
		Value:     value,
		Qualifier: qualifier,
		Referrer:  referrer,
		Included:  referrer != "",
	}
}

// DiagnosticCode classifies the non-fatal conditions found while walking an
// SPF chain.
type DiagnosticCode string

const (
	// DiagNoRecord: the domain publishes no v=spf1 TXT record.
	DiagNoRecord DiagnosticCode = "no_record"

	// DiagMultipleRecords: the domain publishes two or more v=spf1 records,
	// which RFC 7208 Section 3.2 forbids. All of them are discarded rather
	// than guessed at.
	DiagMultipleRecords DiagnosticCode = "multiple_records"

	// DiagUnsupportedDirective: a macro or exp term, which this resolver
	// recognizes but does not evaluate.
	DiagUnsupportedDirective DiagnosticCode = "unsupported_directive"

	// DiagUnknownDirective: a term matching no known mechanism grammar.
	DiagUnknownDirective DiagnosticCode = "unknown_directive"

	// DiagLookupBudgetAdvisory: the chain's distinct-domain count has
	// passed 6, approaching the RFC 7208 cap.
	DiagLookupBudgetAdvisory DiagnosticCode = "lookup_budget_advisory"

	// DiagLookupBudgetExceeded: the chain's distinct-domain count has
	// passed the RFC 7208 cap of 10.
	DiagLookupBudgetExceeded DiagnosticCode = "lookup_budget_exceeded"

	// DiagRevisitedDomain: an include or redirect led back to a domain
	// already seen in this resolution; the branch is cut to avoid looping.
	DiagRevisitedDomain DiagnosticCode = "revisited_domain"
)

// Diagnostic records a non-fatal condition encountered during resolution.
// Diagnostics accompany the result, they never replace it.
type Diagnostic struct {
	// Code classifies the condition.
	Code DiagnosticCode

	// Domain is the domain being evaluated when the condition was found.
	Domain string

	// Detail is a human-readable description.
	Detail string
}

// Result is the outcome of resolving one domain's SPF chain.
type Result struct {
	// Entries is the flattened list of authorized sources, in the order
	// the chain's directives produced them.
	Entries []Entry

	// Diagnostics lists every non-fatal condition encountered.
	Diagnostics []Diagnostic
}

// Lookups returns the number of distinct source domains across all entries.
// This is the chain's DNS lookup count for the RFC 7208 budget: a domain
// contributing entries through several mechanisms still counts once.
func (r *Result) Lookups() int {
	seen := make(map[string]struct{}, len(r.Entries))
	for _, e := range r.Entries {
		seen[e.Domain] = struct{}{}
	}
	return len(seen)
}

// Diagnosed reports whether the result carries a diagnostic with the given code.
func (r *Result) Diagnosed(code DiagnosticCode) bool {
	for _, d := range r.Diagnostics {
		if d.Code == code {
			return true
		}
	}
	return false
}
