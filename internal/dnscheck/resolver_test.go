package dnscheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockResolverLookup(t *testing.T) {
	resolver := MockResolver{
		TXT: map[string][]string{
			"x._domainkey.example.com.": {"v=DKIM1; ", "k=rsa; p=ABC"},
		},
	}

	segments, err := resolver.LookupTXT(context.Background(), "x._domainkey.example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"v=DKIM1; ", "k=rsa; p=ABC"}, segments)
}

func TestMockResolverNoRecord(t *testing.T) {
	resolver := MockResolver{}

	_, err := resolver.LookupTXT(context.Background(), "x._domainkey.absent.com")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestMockResolverFailure(t *testing.T) {
	resolver := MockResolver{
		Fail: []string{"x._domainkey.broken.com."},
	}

	_, err := resolver.LookupTXT(context.Background(), "x._domainkey.broken.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRecord)
}

func TestMockResolverHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := MockResolver{TXT: map[string][]string{"a.com.": {"x"}}}
	_, err := resolver.LookupTXT(ctx, "a.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithPort(t *testing.T) {
	assert.Equal(t, "1.2.3.4:53", withPort("1.2.3.4"))
	assert.Equal(t, "1.2.3.4:5353", withPort("1.2.3.4:5353"))
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "example.com.", ensureAbsolute("example.com"))
	assert.Equal(t, "example.com.", ensureAbsolute("example.com."))
}

func TestNewResolverPinnedNameserver(t *testing.T) {
	resolver := NewResolver("203.0.113.53")
	assert.Equal(t, []string{"203.0.113.53:53"}, resolver.nameservers)
}

func TestNewResolverSystemDefaults(t *testing.T) {
	resolver := NewResolver("")
	require.NotEmpty(t, resolver.nameservers)
	for _, s := range resolver.nameservers {
		assert.Contains(t, s, ":")
	}
}

func TestMockResolverErrOverride(t *testing.T) {
	sentinel := errors.New("resolver melted")
	resolver := MockResolver{Fail: []string{"x.com."}, Err: sentinel}

	_, err := resolver.LookupTXT(context.Background(), "x.com")
	assert.ErrorIs(t, err, sentinel)
}
