package directadmin

import "strings"

// DirectAdmin commands used by this tool. All are read-only.
const (
	CmdShowDomains     = "CMD_API_SHOW_DOMAINS"
	CmdPop             = "CMD_API_POP"
	CmdEmailForwarders = "CMD_API_EMAIL_FORWARDERS"
	CmdDNSControl      = "CMD_API_DNS_CONTROL"
)

// ForwarderRule maps one source address to its ordered destinations.
// DirectAdmin keys forwarders by local-part, one rule per source per domain.
type ForwarderRule struct {
	Source       string
	Destinations []string
}

// ZoneRecord is one entry from the panel's DNS control listing.
type ZoneRecord struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ZoneRecords is the CMD_API_DNS_CONTROL response shape.
type ZoneRecords struct {
	Records []ZoneRecord `json:"records"`
}

// DkimValue returns the raw value of the record whose name matches the given
// selector, and whether such a record exists. The panel stores TXT values
// wrapped in literal quote characters; callers unwrap with dkim.UnwrapQuotes.
func (z ZoneRecords) DkimValue(selector string) (string, bool) {
	for _, rec := range z.Records {
		if rec.Name == selector {
			return rec.Value, true
		}
	}
	return "", false
}

// splitDestinations normalizes a forwarder destination list. The API returns
// destinations either as a JSON array or as a single comma-joined string
// depending on panel version.
func splitDestinations(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, part := range raw {
		for _, dest := range strings.Split(part, ",") {
			dest = strings.TrimSpace(dest)
			if dest != "" {
				out = append(out, dest)
			}
		}
	}
	return out
}
