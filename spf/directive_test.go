package spf

import (
	"strings"
	"testing"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		term      string
		kind      mechanism
		qualifier byte
		arg       string
	}{
		{term: "v=spf1", kind: mechVersion, arg: "spf1"},
		{term: "all", kind: mechAll},
		{term: "+all", kind: mechAll, qualifier: '+'},
		{term: "-all", kind: mechAll, qualifier: '-'},
		{term: "~all", kind: mechAll, qualifier: '~'},
		{term: "?all", kind: mechAll, qualifier: '?'},
		{term: "ip4:203.0.113.0/24", kind: mechIP4, arg: "203.0.113.0/24"},
		{term: "ip6:2001:db8::/32", kind: mechIP6, arg: "2001:db8::/32"},
		{term: "include:_spf.example.com", kind: mechInclude, arg: "_spf.example.com"},
		{term: "~include:_spf.example.com", kind: mechInclude, qualifier: '~', arg: "_spf.example.com"},
		{term: "a", kind: mechA},
		{term: "a:mail.example.com", kind: mechA, arg: "mail.example.com"},
		{term: "mx", kind: mechMX},
		{term: "mx:mx.example.com", kind: mechMX, arg: "mx.example.com"},
		{term: "redirect=_spf.example.net", kind: mechRedirect, arg: "_spf.example.net"},
		{term: "exp=explain.example.com", kind: mechExp, arg: "explain.example.com"},
		{term: "exp:explain.example.com", kind: mechExp, arg: "explain.example.com"},
		{term: "%{i}", kind: mechMacro},
		{term: "exists:%{i}.sbl.example.org", kind: mechMacro},
		{term: "include:%{d}.trusted.example.net", kind: mechMacro},
		{term: "ptr", kind: mechUnknown},
		{term: "exists:positive.example.com", kind: mechUnknown, arg: "positive.example.com"},
		{term: "a/24", kind: mechUnknown},
		{term: "all:garbage", kind: mechUnknown, arg: "garbage"},
		{term: "unknown=value", kind: mechUnknown, arg: "value"},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			d := parseDirective(tt.term)
			if d.kind != tt.kind {
				t.Errorf("kind = %d, want %d", d.kind, tt.kind)
			}
			if d.qualifier != tt.qualifier {
				t.Errorf("qualifier = %q, want %q", d.qualifier, tt.qualifier)
			}
			if tt.kind != mechMacro && d.arg != tt.arg {
				t.Errorf("arg = %q, want %q", d.arg, tt.arg)
			}
			if d.raw != tt.term {
				t.Errorf("raw = %q, want %q", d.raw, tt.term)
			}
		})
	}
}

func TestTerminalQualifier(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   Qualifier
	}{
		{name: "hard fail", record: "v=spf1 ip4:203.0.113.0/24 -all", want: QualifierFail},
		{name: "softfail", record: "v=spf1 include:_spf.example.com ~all", want: QualifierSoftfail},
		{name: "neutral", record: "v=spf1 a ?all", want: QualifierNeutral},
		{name: "explicit pass", record: "v=spf1 mx +all", want: QualifierPass},
		{name: "bare all is pass", record: "v=spf1 mx all", want: QualifierPass},
		{name: "no terminal all", record: "v=spf1 ip4:203.0.113.0/24", want: QualifierNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var directives []directive
			for _, term := range strings.Fields(tt.record) {
				directives = append(directives, parseDirective(term))
			}
			if got := terminalQualifier(directives); got != tt.want {
				t.Errorf("terminalQualifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsSPFRecord(t *testing.T) {
	tests := []struct {
		txt  string
		want bool
	}{
		{"v=spf1", true},
		{"v=spf1 -all", true},
		{"v=spf1 ip4:203.0.113.0/24 ~all", true},
		{"v=spf10 -all", false},
		{"V=SPF1 -all", false}, // version tag is case-sensitive
		{"v=spf1-all", false},
		{"google-site-verification=abc123", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isSPFRecord(tt.txt); got != tt.want {
			t.Errorf("isSPFRecord(%q) = %v, want %v", tt.txt, got, tt.want)
		}
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "example.com", want: "example.com"},
		{in: "EXAMPLE.COM", want: "example.com"},
		{in: "example.com.", want: "example.com"},
		{in: " example.com ", want: "example.com"},
		{in: "_spf.example.com", want: "_spf.example.com"},
		{in: "bücher.example", want: "xn--bcher-kva.example"},
		{in: "", wantErr: true},
		{in: ".", wantErr: true},
	}

	for _, tt := range tests {
		got, err := normalizeDomain(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("normalizeDomain(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("normalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
