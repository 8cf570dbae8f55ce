// Package ledger reads the append-only gift log and derives views from it.
// The log is the single source of truth: entries are never persisted as
// objects but reconstructed from text on every read.
//
// Each line has the canonical shape
//
//	2025-09-07T18:42:08.399Z 99.34 SEK for Alice (on naughty list!)
//
// where the recipient and the trailing annotation are optional. The log is
// a free-form file a user may hand-edit, so parsing is deliberately
// tolerant: a line that does not match the shape yields no entry and no
// error.
package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampFormat is the canonical instant format written to the log,
// RFC 3339 in UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Entry is one parsed log line. Entries are immutable once parsed.
type Entry struct {
	// Timestamp orders entries; the log is appended chronologically.
	Timestamp time.Time

	// Amount is the non-negative gift amount.
	Amount decimal.Decimal

	// Currency is the 3-letter uppercase code following the amount.
	Currency string

	// Recipient is the optional name after the literal "for". Matching is
	// case-insensitive; the original casing is preserved for display.
	Recipient string

	// Raw is the original line, kept for exact redisplay.
	Raw string
}

// entryPattern captures timestamp, amount, currency, and the optional
// recipient. A trailing parenthetical annotation is matched but discarded.
var entryPattern = regexp.MustCompile(
	`^(\S+) (\d+(?:\.\d+)?) ([A-Z]{3})(?: for (.+?))?(?: \(([^)]*)\))?\s*$`,
)

// Parse turns one raw log line into an Entry. It returns nil for any line
// that does not match the expected shape; it never returns an error.
func Parse(line string) *Entry {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	ts, err := time.Parse(TimestampFormat, m[1])
	if err != nil {
		return nil
	}

	amount, err := decimal.NewFromString(m[2])
	if err != nil || amount.IsNegative() {
		return nil
	}

	return &Entry{
		Timestamp: ts,
		Amount:    amount,
		Currency:  m[3],
		Recipient: strings.TrimSpace(m[4]),
		Raw:       line,
	}
}

// Render produces the canonical log line for the entry. Parsing a rendered
// line reproduces the same amount, currency, and recipient.
func (e *Entry) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s",
		e.Timestamp.UTC().Format(TimestampFormat),
		e.Amount.String(),
		e.Currency,
	)
	if e.Recipient != "" {
		fmt.Fprintf(&b, " for %s", e.Recipient)
	}
	return b.String()
}

// RenderAnnotated appends a parenthetical annotation to the canonical line.
// The annotation is display-only and discarded on parse.
func (e *Entry) RenderAnnotated(annotation string) string {
	if annotation == "" {
		return e.Render()
	}
	return fmt.Sprintf("%s (%s)", e.Render(), annotation)
}

// MatchesRecipient reports whether the entry's recipient equals name,
// ignoring case and surrounding whitespace.
func (e *Entry) MatchesRecipient(name string) bool {
	return e.Recipient != "" &&
		strings.EqualFold(e.Recipient, strings.TrimSpace(name))
}
