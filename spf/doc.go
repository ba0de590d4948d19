// Package spf resolves Sender Policy Framework (RFC 7208) chains.
//
// Given a domain, the resolver fetches its SPF TXT record, parses the
// directives and recursively follows include, redirect, a and mx mechanisms,
// producing the flattened list of sources the chain authorizes to send mail.
// Along the way it reports the conditions an operator cares about: missing
// or duplicate records, unsupported or unknown directives, chains that loop,
// and chains whose distinct-domain count approaches or exceeds the RFC 7208
// limit of 10 DNS lookups.
//
// This package inspects published policy; it does not evaluate whether a
// particular sending host passes. SPF macros and exp explanation strings are
// recognized and skipped, never expanded.
//
// Basic usage:
//
//	client := dns.NewResolver(dns.Config{
//	    Nameservers: []string{"1.1.1.1:53"},
//	})
//
//	resolver := spf.NewResolver(client)
//	result, err := resolver.Resolve(ctx, "example.com")
//	if err != nil {
//	    // DNS transport failure; the chain could not be walked.
//	}
//
//	for _, e := range result.Entries {
//	    fmt.Println(e.Domain, e.Value, e.Qualifier)
//	}
//	fmt.Println("lookups:", result.Lookups())
//
// Malformed SPF content never fails a resolution: missing records, duplicate
// records, macros and unknown directives all surface as Diagnostics on the
// Result while resolution continues. The only error Resolve returns is a
// failed DNS query.
//
// References:
//   - RFC 7208: Sender Policy Framework (SPF)
package spf
