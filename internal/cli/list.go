package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codevuk/mxroute-tools/internal/directadmin"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List domains, email accounts and forwarders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}
}

func runList(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client := directadmin.NewClient(cfg)
	w := newReportWriter(cmd, opts)

	domains, err := client.ShowDomains(ctx)
	if err != nil {
		return err
	}
	w.Domains(domains)

	mailboxes, err := client.MailboxesByDomain(ctx, domains)
	if err != nil {
		return err
	}
	w.Mailboxes(domains, mailboxes)

	forwarders, err := client.ForwardersByDomain(ctx, domains)
	if err != nil {
		return err
	}
	w.Forwarders(domains, forwarders)

	return nil
}
