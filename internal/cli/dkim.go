package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/codevuk/mxroute-tools/internal/directadmin"
	"github.com/codevuk/mxroute-tools/internal/dkim"
	"github.com/codevuk/mxroute-tools/internal/dnscheck"
	"github.com/codevuk/mxroute-tools/internal/report"
)

func newDkimCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dkim",
		Short: "Check each domain's published DKIM record against the panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDkim(cmd, opts)
		},
	}
}

func runDkim(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := directadmin.NewClient(cfg)
	resolver := dnscheck.NewResolver(cfg.Nameserver)
	w := newReportWriter(cmd, opts)

	domains, err := client.ShowDomains(ctx)
	if err != nil {
		return err
	}

	w.DkimHeader()
	for _, domain := range domains {
		if err := checkDomain(ctx, client, resolver, w, domain); err != nil {
			return err
		}
	}
	return nil
}

// checkDomain verifies one domain. API failures abort the run; DNS lookup
// failures are verification output and only annotate the report line.
func checkDomain(ctx context.Context, client *directadmin.Client, resolver dnscheck.Resolver, w *report.Writer, domain string) error {
	records, err := client.DNSRecords(ctx, domain)
	if err != nil {
		return err
	}

	raw, ok := records.DkimValue(dkim.Selector)
	if !ok {
		// The panel has no DKIM entry for this domain; nothing to verify.
		return nil
	}
	expected := dkim.UnwrapQuotes(raw)

	segments, lookupErr := resolver.LookupTXT(ctx, dkim.Selector+"."+domain)
	observed := dkim.ConcatSegments(segments)

	state, rec := dkim.Verify(expected, observed, lookupErr == nil)

	note := ""
	if lookupErr != nil && !errors.Is(lookupErr, dnscheck.ErrNoRecord) {
		note = "lookup error: " + lookupErr.Error()
	}
	w.DkimResult(domain, state, rec, note)
	return nil
}
