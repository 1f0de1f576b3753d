// Package dkim compares the DKIM TXT value a panel says should be published
// against the value actually found in DNS, and builds the zone line an
// operator pastes when they disagree.
package dkim

import (
	"fmt"
	"strings"
)

// Selector is the record name MXRoute provisions for every domain.
const Selector = "x._domainkey"

// chunkSize is the widest quoted character-string emitted in a zone line.
// DNS caps a single character-string at 255 bytes; providers conventionally
// split well below that.
const chunkSize = 110

// recordTTL is the TTL printed on provisioning lines, matching the panel's
// own zone output.
const recordTTL = 3000

// State classifies one domain's DKIM posture.
type State int

const (
	// StateMatch: the published record equals the panel's expected value.
	StateMatch State = iota
	// StateMismatch: a record is published but differs from the expected
	// value, usually a stale or partially copied key.
	StateMismatch
	// StateMissing: no record could be resolved.
	StateMissing
)

func (s State) String() string {
	switch s {
	case StateMatch:
		return "DNS CORRECT"
	case StateMismatch:
		return "DNS SETUP"
	case StateMissing:
		return "DNS FAILURE"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ProvisioningRecord reconstructs the resource-record line for a domain whose
// published value is wrong or absent. It is a pure function of the expected
// value: identical keys always render identical lines.
type ProvisioningRecord struct {
	Expected string
}

// ZoneLine renders the paste-ready record. The key is split into contiguous
// quoted chunks so long RSA keys stay within the single-string limit without
// losing any bytes.
func (r ProvisioningRecord) ZoneLine() string {
	chunks := splitChunks(r.Expected)
	quoted := make([]string, len(chunks))
	for i, c := range chunks {
		quoted[i] = `"` + c + `"`
	}
	return fmt.Sprintf("%s %d IN TXT %s", Selector, recordTTL, strings.Join(quoted, " "))
}

// splitChunks tiles s into contiguous chunkSize-character substrings.
// An empty s still yields one empty chunk so the zone line keeps its
// quoted-string shape.
func splitChunks(s string) []string {
	if s == "" {
		return []string{""}
	}
	var chunks []string
	for i := 0; i < len(s); i += chunkSize {
		end := i + chunkSize
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, s[i:end])
	}
	return chunks
}

// UnwrapQuotes strips exactly one leading and one trailing double-quote from
// the panel's raw TXT value. Values that are not fully wrapped are returned
// unchanged; inner quotes are never touched.
func UnwrapQuotes(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// Verify classifies one domain. expected is the unwrapped panel value;
// observed is the concatenation of the TXT character-strings found in DNS.
// published is false when the lookup found no record or failed outright — a
// record that cannot be resolved is not serving DKIM either way, so both
// verify as missing regardless of what the panel expects.
func Verify(expected, observed string, published bool) (State, *ProvisioningRecord) {
	if published && observed == expected {
		return StateMatch, nil
	}
	rec := &ProvisioningRecord{Expected: expected}
	if published && observed != "" {
		return StateMismatch, rec
	}
	return StateMissing, rec
}

// ConcatSegments joins the raw character-strings of one TXT answer in
// response order. Resolvers split long values at 255 bytes; the logical
// value is the in-order concatenation.
func ConcatSegments(segments []string) string {
	return strings.Join(segments, "")
}
