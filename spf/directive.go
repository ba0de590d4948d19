package spf

import "strings"

// mechanism identifies the parsed kind of an SPF term. Every term is
// classified before dispatch, which keeps evaluation-order rules (a redirect
// replacing the rest of its record) explicit branches instead of
// control-flow accidents.
type mechanism int

const (
	mechUnknown mechanism = iota
	mechVersion
	mechAll
	mechInclude
	mechIP4
	mechIP6
	mechA
	mechMX
	mechRedirect
	mechExp
	mechMacro
)

// directive is one whitespace-separated term of an SPF record.
type directive struct {
	kind mechanism

	// qualifier is the leading '+', '-', '~' or '?', or 0 when absent.
	// Parsed so the grammar is accepted; only the terminal "all" qualifier
	// is evaluated, see terminalQualifier.
	qualifier byte

	// arg is the mechanism target or modifier value.
	arg string

	// raw is the original term, kept for diagnostics.
	raw string
}

// macroMarkers are the escape sequences of the SPF macro language
// (RFC 7208 Section 7). Terms containing any of them are reported as
// unsupported, never expanded.
var macroMarkers = []string{"%{", "%%", "%-", "%_"}

func containsMacro(term string) bool {
	for _, m := range macroMarkers {
		if strings.Contains(term, m) {
			return true
		}
	}
	return false
}

// parseDirective classifies a single term of an SPF record.
func parseDirective(term string) directive {
	d := directive{raw: term}
	if term == "" {
		return d
	}

	if containsMacro(term) {
		d.kind = mechMacro
		return d
	}

	rest := term
	switch rest[0] {
	case '+', '-', '~', '?':
		d.qualifier = rest[0]
		rest = rest[1:]
	}
	if rest == "" {
		return d
	}

	// Modifiers use name=value.
	if name, value, ok := strings.Cut(rest, "="); ok && !strings.Contains(name, ":") {
		d.arg = value
		switch name {
		case "v":
			d.kind = mechVersion
		case "redirect":
			d.kind = mechRedirect
		case "exp":
			d.kind = mechExp
		}
		return d
	}

	name, arg, _ := strings.Cut(rest, ":")
	d.arg = arg
	switch name {
	case "all":
		if arg == "" {
			d.kind = mechAll
		}
	case "include":
		d.kind = mechInclude
	case "ip4":
		d.kind = mechIP4
	case "ip6":
		d.kind = mechIP6
	case "a":
		d.kind = mechA
	case "mx":
		d.kind = mechMX
	case "exp":
		// Occasionally published with a colon; same treatment as exp=.
		d.kind = mechExp
	}
	return d
}

// terminalQualifier derives a record's qualifier from its "all" directive.
// Records without a terminal "all" state nothing about unmatched hosts;
// their entries are reported as neutral.
func terminalQualifier(directives []directive) Qualifier {
	for _, d := range directives {
		if d.kind == mechAll {
			return qualifierFor(d.qualifier)
		}
	}
	return QualifierNeutral
}
