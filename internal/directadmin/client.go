// Package directadmin is a read-only client for the DirectAdmin API exposed
// by MXRoute mail servers. It covers the four listing commands this tool
// needs: domains, mailboxes, forwarders and DNS control records.
package directadmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"github.com/codevuk/mxroute-tools/internal/config"
)

const (
	endpointPrefix = "https://"
	endpointSuffix = ".mxrouting.net:2222"
)

// HTTPDoer is the interface for executing HTTP requests.
// *http.Client satisfies it; tests inject fakes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to one DirectAdmin host with one set of credentials.
type Client struct {
	baseURL    string
	username   string
	secret     string
	httpClient HTTPDoer
}

// NewClient builds a client for the server named by cfg.Host (short name,
// e.g. "maildemo" for maildemo.mxrouting.net).
//
// Requests are not retried: a single manual report run gains nothing from
// backoff, and any failure should surface immediately.
func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:  endpointPrefix + cfg.Host + endpointSuffix,
		username: cfg.Username,
		secret:   cfg.Secret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// NewClientWithDoer is NewClient with an explicit transport, for tests and
// for callers that already hold a configured http.Client.
func NewClientWithDoer(baseURL, username, secret string, doer HTTPDoer) *Client {
	return &Client{
		baseURL:    baseURL,
		username:   username,
		secret:     secret,
		httpClient: doer,
	}
}

// fetch issues one authenticated GET for the given command. The json=yes
// output format is always forced; caller params win on key collision.
func (c *Client) fetch(ctx context.Context, command string, params map[string]string) ([]byte, error) {
	values := url.Values{}
	values.Set("json", "yes")
	for k, v := range params {
		values.Set(k, v)
	}

	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, command, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.username, c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing %s: %w", command, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", command, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Command: command, Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// decode unmarshals a response body, wrapping decode failures with the raw
// body so auth pages and URL-encoded error strings stay diagnosable.
func decode(command string, body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &MalformedResponseError{Command: command, Body: string(body), Err: err}
	}
	return nil
}

// ShowDomains lists the domains owned by the account.
func (c *Client) ShowDomains(ctx context.Context) ([]string, error) {
	body, err := c.fetch(ctx, CmdShowDomains, nil)
	if err != nil {
		return nil, err
	}

	var domains []string
	if err := decode(CmdShowDomains, body, &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// ListMailboxes lists mailbox local-parts for one domain.
func (c *Client) ListMailboxes(ctx context.Context, domain string) ([]string, error) {
	body, err := c.fetch(ctx, CmdPop, map[string]string{"domain": domain, "action": "list"})
	if err != nil {
		return nil, err
	}

	var boxes []string
	if err := decode(CmdPop, body, &boxes); err != nil {
		return nil, err
	}
	return boxes, nil
}

// ListForwarders lists forwarder rules for one domain, sorted by source
// address so output is deterministic across runs.
func (c *Client) ListForwarders(ctx context.Context, domain string) ([]ForwarderRule, error) {
	body, err := c.fetch(ctx, CmdEmailForwarders, map[string]string{"domain": domain, "action": "list"})
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := decode(CmdEmailForwarders, body, &raw); err != nil {
		return nil, err
	}

	rules := make([]ForwarderRule, 0, len(raw))
	for source, value := range raw {
		var dests []string
		if err := json.Unmarshal(value, &dests); err != nil {
			// Older panels return a single comma-joined string.
			var joined string
			if err := json.Unmarshal(value, &joined); err != nil {
				return nil, &MalformedResponseError{Command: CmdEmailForwarders, Body: string(body), Err: err}
			}
			dests = []string{joined}
		}
		rules = append(rules, ForwarderRule{Source: source, Destinations: splitDestinations(dests)})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Source < rules[j].Source })
	return rules, nil
}

// DNSRecords fetches the panel's DNS control listing for one domain.
func (c *Client) DNSRecords(ctx context.Context, domain string) (ZoneRecords, error) {
	body, err := c.fetch(ctx, CmdDNSControl, map[string]string{"domain": domain})
	if err != nil {
		return ZoneRecords{}, err
	}

	var records ZoneRecords
	if err := decode(CmdDNSControl, body, &records); err != nil {
		return ZoneRecords{}, err
	}
	return records, nil
}
