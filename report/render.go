package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteTable writes one aligned row per resolved entry, followed by a
// per-domain summary with lookup counts and diagnostics.
func WriteTable(w io.Writer, reports []Report) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "DOMAIN\tSOURCE\tVALUE\tQUALIFIER\tVIA")
	for _, rep := range reports {
		if rep.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\tresolution failed: %v\n", rep.Domain, rep.Err)
			continue
		}
		if len(rep.Entries) == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\n", rep.Domain)
			continue
		}
		for _, e := range rep.Entries {
			via := "-"
			if e.Included {
				via = e.Referrer
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", rep.Domain, e.Domain, e.Value, e.Qualifier, via)
		}
	}

	fmt.Fprintln(tw, "")
	fmt.Fprintln(tw, "DOMAIN\tORG DOMAIN\tENTRIES\tLOOKUPS\tDIAGNOSTICS")
	for _, rep := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			rep.Domain, rep.OrgDomain, len(rep.Entries), rep.Lookups, summarize(rep))
	}

	return tw.Flush()
}

// WriteTSV writes one tab-separated row per entry, suitable for piping into
// other tools. Columns: domain, source, value, qualifier, referrer, included.
func WriteTSV(w io.Writer, reports []Report) error {
	for _, rep := range reports {
		for _, e := range rep.Entries {
			_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
				rep.Domain, e.Domain, e.Value, e.Qualifier, e.Referrer, e.Included)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// summarize renders a report's diagnostics as a compact comma-separated list.
func summarize(rep Report) string {
	if rep.Err != nil {
		return "error: " + rep.Err.Error()
	}
	if len(rep.Diagnostics) == 0 {
		return "-"
	}
	codes := make([]string, 0, len(rep.Diagnostics))
	for _, d := range rep.Diagnostics {
		codes = append(codes, string(d.Code))
	}
	return strings.Join(codes, ",")
}
