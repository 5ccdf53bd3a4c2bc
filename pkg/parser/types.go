// Package parser provides ping log file reading and record parsing.
package parser

import "time"

// Record represents a single probe record extracted from a ping log line.
type Record struct {
	// Raw is the original line content, trimmed.
	Raw string

	// Host is the probe destination: the parenthesized address when the
	// line carries one, otherwise the bare destination text.
	Host string

	// Seq is the icmp_seq value, the probe's position in transmission order.
	Seq int

	// TTL is the ttl value reported for the reply.
	TTL int

	// RTT is the measured round-trip time in milliseconds.
	RTT float64

	// Timestamp is the optional bracketed epoch timestamp converted to
	// local time. Zero when the line has no timestamp prefix.
	Timestamp time.Time

	// LineNum is the 1-based line number in the source file.
	LineNum int

	// Source is the file path this record came from.
	Source string
}

// HasTimestamp reports whether the record carried a timestamp prefix.
func (r *Record) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}
