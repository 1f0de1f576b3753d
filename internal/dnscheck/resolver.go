// Package dnscheck performs the live TXT lookups the DKIM report compares
// against. It distinguishes "no record published" from resolver failures so
// the report can say which one happened, even though both verify the same.
package dnscheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
)

// ErrNoRecord means the name resolved cleanly but no TXT record exists
// (NXDOMAIN or an empty answer section).
var ErrNoRecord = errors.New("dnscheck: no TXT record")

// Resolver looks up the TXT character-strings published at a name, in
// answer order.
type Resolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

const queryTimeout = 5 * time.Second

// MiekgResolver resolves over github.com/miekg/dns against the system
// nameservers, or a single pinned server.
type MiekgResolver struct {
	nameservers []string
	client      *mdns.Client
}

// NewResolver builds a resolver. nameserver pins all queries to one server
// ("host" or "host:port"); when empty, servers come from /etc/resolv.conf
// with public DNS as a fallback.
func NewResolver(nameserver string) *MiekgResolver {
	var servers []string
	if nameserver != "" {
		servers = []string{withPort(nameserver)}
	} else {
		servers = systemNameservers()
	}
	return &MiekgResolver{
		nameservers: servers,
		client:      &mdns.Client{Timeout: queryTimeout},
	}
}

func systemNameservers() []string {
	conf, err := mdns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(conf.Servers) == 0 {
		return []string{"8.8.8.8:53", "1.1.1.1:53"}
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, withPort(s))
	}
	return servers
}

func withPort(server string) string {
	if strings.Contains(server, ":") {
		return server
	}
	return server + ":53"
}

func ensureAbsolute(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "."
}

// LookupTXT queries each configured nameserver in turn until one answers.
// The character-strings of each TXT answer are kept as returned; callers
// concatenate segments themselves.
func (r *MiekgResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	m := new(mdns.Msg)
	m.SetQuestion(ensureAbsolute(name), mdns.TypeTXT)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range r.nameservers {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, _, err := r.client.ExchangeContext(ctx, m, server)
		if err != nil {
			lastErr = fmt.Errorf("dnscheck: query against %s: %w", server, err)
			continue
		}

		switch resp.Rcode {
		case mdns.RcodeSuccess:
			var segments []string
			for _, rr := range resp.Answer {
				if txt, ok := rr.(*mdns.TXT); ok {
					segments = append(segments, txt.Txt...)
				}
			}
			if len(segments) == 0 {
				return nil, ErrNoRecord
			}
			return segments, nil
		case mdns.RcodeNameError:
			return nil, ErrNoRecord
		default:
			lastErr = fmt.Errorf("dnscheck: %s answered rcode %s", server, mdns.RcodeToString[resp.Rcode])
		}
	}

	if lastErr == nil {
		lastErr = errors.New("dnscheck: no nameservers configured")
	}
	return nil, lastErr
}
