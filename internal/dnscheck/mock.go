package dnscheck

import (
	"context"
	"errors"
	"slices"
)

// MockResolver is a Resolver for tests. TXT maps names (with or without the
// trailing dot) to character-string segments; names in Fail return a
// resolver error instead.
type MockResolver struct {
	TXT  map[string][]string
	Fail []string

	// Err overrides the error returned for failing names. Nil means a
	// generic resolver error.
	Err error
}

var _ Resolver = MockResolver{}

func (m MockResolver) LookupTXT(ctx context.Context, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if slices.Contains(m.Fail, name) || slices.Contains(m.Fail, ensureAbsolute(name)) {
		if m.Err != nil {
			return nil, m.Err
		}
		return nil, errMockServFail
	}

	for _, key := range []string{name, ensureAbsolute(name)} {
		if segments, ok := m.TXT[key]; ok {
			return segments, nil
		}
	}
	return nil, ErrNoRecord
}

var errMockServFail = errors.New("dnscheck: mock SERVFAIL")
