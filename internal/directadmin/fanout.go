package directadmin

import "context"

// MailboxesByDomain issues one mailbox listing per domain, sequentially, in
// the given order. The first failure aborts the whole fan-out; partial
// results are never returned. Resilience across domains is a non-goal here —
// a report built from half the account is worse than no report.
func (c *Client) MailboxesByDomain(ctx context.Context, domains []string) (map[string][]string, error) {
	result := make(map[string][]string, len(domains))
	for _, domain := range domains {
		boxes, err := c.ListMailboxes(ctx, domain)
		if err != nil {
			return nil, err
		}
		result[domain] = boxes
	}
	return result, nil
}

// ForwardersByDomain is MailboxesByDomain for forwarder rules, with the same
// fail-fast contract.
func (c *Client) ForwardersByDomain(ctx context.Context, domains []string) (map[string][]ForwarderRule, error) {
	result := make(map[string][]ForwarderRule, len(domains))
	for _, domain := range domains {
		rules, err := c.ListForwarders(ctx, domain)
		if err != nil {
			return nil, err
		}
		result[domain] = rules
	}
	return result, nil
}
