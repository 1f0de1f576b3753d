package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevuk/mxroute-tools/internal/directadmin"
	"github.com/codevuk/mxroute-tools/internal/dnscheck"
	"github.com/codevuk/mxroute-tools/internal/report"
)

const testKey = "v=DKIM1; k=rsa; p=MIGfMA0GCSq"

func newPanelStub(t *testing.T, dkimValue string) *directadmin.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		records := directadmin.ZoneRecords{}
		if dkimValue != "" {
			records.Records = []directadmin.ZoneRecord{
				{Name: "x._domainkey", Type: "TXT", Value: dkimValue},
			}
		}
		json.NewEncoder(w).Encode(records)
	}))
	t.Cleanup(server.Close)
	return directadmin.NewClientWithDoer(server.URL, "demo", "secret", server.Client())
}

func TestCheckDomainCorrect(t *testing.T) {
	client := newPanelStub(t, `"`+testKey+`"`)
	resolver := dnscheck.MockResolver{
		TXT: map[string][]string{"x._domainkey.example.com.": {testKey}},
	}

	var buf bytes.Buffer
	w := report.New(&buf)
	require.NoError(t, checkDomain(context.Background(), client, resolver, w, "example.com"))

	assert.Equal(t, "** DNS CORRECT for example.com\n", buf.String())
}

func TestCheckDomainSplitRecordStillCorrect(t *testing.T) {
	client := newPanelStub(t, `"`+testKey+`"`)
	// Resolvers split long values into multiple character-strings.
	resolver := dnscheck.MockResolver{
		TXT: map[string][]string{"x._domainkey.example.com.": {testKey[:10], testKey[10:]}},
	}

	var buf bytes.Buffer
	require.NoError(t, checkDomain(context.Background(), client, resolver, report.New(&buf), "example.com"))
	assert.Contains(t, buf.String(), "DNS CORRECT")
}

func TestCheckDomainStaleRecord(t *testing.T) {
	client := newPanelStub(t, `"`+testKey+`"`)
	resolver := dnscheck.MockResolver{
		TXT: map[string][]string{"x._domainkey.example.com.": {"v=DKIM1; p=OLDKEY"}},
	}

	var buf bytes.Buffer
	require.NoError(t, checkDomain(context.Background(), client, resolver, report.New(&buf), "example.com"))

	out := buf.String()
	assert.Contains(t, out, "** DNS SETUP for example.com")
	assert.Contains(t, out, `x._domainkey 3000 IN TXT "`+testKey+`"`)
}

func TestCheckDomainNoPublishedRecord(t *testing.T) {
	client := newPanelStub(t, `"`+testKey+`"`)
	resolver := dnscheck.MockResolver{}

	var buf bytes.Buffer
	require.NoError(t, checkDomain(context.Background(), client, resolver, report.New(&buf), "example.com"))

	out := buf.String()
	assert.Contains(t, out, "** DNS FAILURE for example.com")
	assert.NotContains(t, out, "lookup error", "an absent record is not a resolver fault")
}

func TestCheckDomainResolverFailureAnnotated(t *testing.T) {
	client := newPanelStub(t, `"`+testKey+`"`)
	resolver := dnscheck.MockResolver{Fail: []string{"x._domainkey.example.com."}}

	var buf bytes.Buffer
	require.NoError(t, checkDomain(context.Background(), client, resolver, report.New(&buf), "example.com"))

	out := buf.String()
	assert.Contains(t, out, "** DNS FAILURE for example.com (lookup error:")
}

func TestCheckDomainEmptyPanelValueAbsentRecord(t *testing.T) {
	// A panel entry that unwraps to nothing with no published record is
	// still a failure, not a vacuous match.
	client := newPanelStub(t, `""`)
	resolver := dnscheck.MockResolver{}

	var buf bytes.Buffer
	require.NoError(t, checkDomain(context.Background(), client, resolver, report.New(&buf), "example.com"))

	assert.Contains(t, buf.String(), "** DNS FAILURE for example.com")
}

func TestCheckDomainSkipsDomainsWithoutPanelRecord(t *testing.T) {
	client := newPanelStub(t, "")
	resolver := dnscheck.MockResolver{}

	var buf bytes.Buffer
	require.NoError(t, checkDomain(context.Background(), client, resolver, report.New(&buf), "example.com"))

	assert.Empty(t, buf.String())
}
