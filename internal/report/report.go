// Package report renders the line-oriented output of both subcommands. It
// makes no decisions: everything it prints was fetched or computed upstream.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/codevuk/mxroute-tools/internal/directadmin"
	"github.com/codevuk/mxroute-tools/internal/dkim"
)

// Writer renders report sections to one output stream.
type Writer struct {
	out     io.Writer
	colored bool
}

// New builds a Writer. Color is off until EnableColor; tests and piped
// output stay plain.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// EnableColor turns on status-word colorization.
func (w *Writer) EnableColor(on bool) {
	w.colored = on
}

// Domains prints the domain section with its count header.
func (w *Writer) Domains(domains []string) {
	fmt.Fprintf(w.out, "# Domains (%d)\n", len(domains))
	for _, d := range domains {
		fmt.Fprintln(w.out, d)
	}
	fmt.Fprintln(w.out)
}

// Mailboxes prints one local@domain line per mailbox, iterating domains in
// the given order.
func (w *Writer) Mailboxes(domains []string, byDomain map[string][]string) {
	total := 0
	for _, boxes := range byDomain {
		total += len(boxes)
	}
	fmt.Fprintf(w.out, "# Email Accounts (%d)\n", total)
	for _, domain := range domains {
		for _, box := range byDomain[domain] {
			fmt.Fprintf(w.out, "%s@%s\n", box, domain)
		}
	}
	fmt.Fprintln(w.out)
}

// Forwarders prints one source --> destinations line per rule.
func (w *Writer) Forwarders(domains []string, byDomain map[string][]directadmin.ForwarderRule) {
	total := 0
	for _, rules := range byDomain {
		total += len(rules)
	}
	fmt.Fprintf(w.out, "# Forwarders (%d)\n", total)
	for _, domain := range domains {
		for _, rule := range byDomain[domain] {
			fmt.Fprintf(w.out, "%s@%s --> %s\n", rule.Source, domain, strings.Join(rule.Destinations, ","))
		}
	}
	fmt.Fprintln(w.out)
}

// DkimHeader opens the DKIM section.
func (w *Writer) DkimHeader() {
	fmt.Fprintln(w.out, "* DKIM settings")
}

// DkimResult prints one domain's verdict. note carries lookup diagnostics
// (resolver errors) and is printed parenthesized; rec, when present, is the
// paste-ready zone line followed by a blank separator.
func (w *Writer) DkimResult(domain string, state dkim.State, rec *dkim.ProvisioningRecord, note string) {
	line := fmt.Sprintf("** %s for %s", w.paint(state), domain)
	if note != "" {
		line += fmt.Sprintf(" (%s)", note)
	}
	fmt.Fprintln(w.out, line)
	if rec != nil {
		fmt.Fprintln(w.out, rec.ZoneLine())
		fmt.Fprintln(w.out)
	}
}

func (w *Writer) paint(state dkim.State) string {
	s := state.String()
	if !w.colored {
		return s
	}
	switch state {
	case dkim.StateMatch:
		return color.Green.Sprint(s)
	case dkim.StateMismatch:
		return color.Yellow.Sprint(s)
	default:
		return color.Red.Sprint(s)
	}
}
