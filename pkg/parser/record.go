package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultRecordPattern matches a standard ping reply line, optionally
// prefixed with a bracketed epoch timestamp (ping -D style):
//
//	[1700000000.123456] 64 bytes from example.com (93.184.216.34): icmp_seq=5 ttl=56 time=11.3 ms
//
// Required groups: seq, time. Optional groups: timestamp, domain, ip, ttl.
const DefaultRecordPattern = `^(\[(?P<timestamp>\d+(\.\d+)?)\])?\s*\d+ \w+ \w+ (?P<domain>.+?)( \((?P<ip>(\d{1,3}\.){3}\d{1,3}|[:\dA-Fa-f]+)\))?: icmp_seq=(?P<seq>\d+) ttl=(?P<ttl>\d+) time=(?P<time>\d+(\.\d+)?) .+$`

// titlePattern matches the header line ping prints before the replies.
var titlePattern = regexp.MustCompile(`^PING (.+) \([\d.:]+\) \d+.*`)

// ErrNotRecord is returned by Parse for lines that are not probe records.
// Callers treat such lines as noise and continue.
var ErrNotRecord = errors.New("not a ping record")

// TimestampMode controls how the timestamp prefix is handled.
type TimestampMode string

const (
	// TimestampAuto accepts lines with or without a timestamp prefix.
	TimestampAuto TimestampMode = "auto"

	// TimestampRequired rejects lines without a timestamp prefix.
	TimestampRequired TimestampMode = "required"

	// TimestampNone ignores timestamp prefixes even when present.
	TimestampNone TimestampMode = "none"
)

// RecordParser converts raw log lines into Records using a compiled
// capture-group pattern. The zero value is not usable; use NewRecordParser
// or NewRecordParserPattern.
type RecordParser struct {
	pattern *regexp.Regexp
	mode    TimestampMode

	// Capture group indexes resolved from the pattern's names.
	idxTimestamp int
	idxDomain    int
	idxIP        int
	idxSeq       int
	idxTTL       int
	idxTime      int
}

// NewRecordParser creates a parser using the default record pattern.
func NewRecordParser() *RecordParser {
	p, err := NewRecordParserPattern(DefaultRecordPattern)
	if err != nil {
		panic(fmt.Sprintf("default record pattern invalid: %v", err))
	}
	return p
}

// NewRecordParserPattern creates a parser from a custom pattern.
// The pattern must contain named capture groups "seq" and "time";
// groups "timestamp", "domain", "ip" and "ttl" are optional.
func NewRecordParserPattern(expr string) (*RecordParser, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling record pattern: %w", err)
	}
	return NewRecordParserRegexp(re)
}

// NewRecordParserRegexp creates a parser from an already-compiled pattern,
// with the same capture group requirements as NewRecordParserPattern.
func NewRecordParserRegexp(re *regexp.Regexp) (*RecordParser, error) {
	p := &RecordParser{
		pattern:      re,
		mode:         TimestampAuto,
		idxTimestamp: -1,
		idxDomain:    -1,
		idxIP:        -1,
		idxSeq:       -1,
		idxTTL:       -1,
		idxTime:      -1,
	}

	for i, name := range re.SubexpNames() {
		switch name {
		case "timestamp":
			p.idxTimestamp = i
		case "domain":
			p.idxDomain = i
		case "ip":
			p.idxIP = i
		case "seq":
			p.idxSeq = i
		case "ttl":
			p.idxTTL = i
		case "time":
			p.idxTime = i
		}
	}

	if p.idxSeq < 0 {
		return nil, errors.New(`record pattern must have a "seq" capture group`)
	}
	if p.idxTime < 0 {
		return nil, errors.New(`record pattern must have a "time" capture group`)
	}

	return p, nil
}

// SetTimestampMode changes how the timestamp prefix is handled.
func (p *RecordParser) SetTimestampMode(mode TimestampMode) {
	p.mode = mode
}

// Parse converts one log line into a Record.
// Returns ErrNotRecord for lines that do not match the record pattern;
// this is an expected per-line condition, never fatal for a run.
func (p *RecordParser) Parse(line string) (*Record, error) {
	line = strings.TrimSpace(line)

	matches := p.pattern.FindStringSubmatch(line)
	if matches == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotRecord, line)
	}

	rec := &Record{Raw: line}

	seq, err := strconv.Atoi(matches[p.idxSeq])
	if err != nil {
		return nil, fmt.Errorf("%w: bad icmp_seq in %q", ErrNotRecord, line)
	}
	rec.Seq = seq

	rtt, err := strconv.ParseFloat(matches[p.idxTime], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad time in %q", ErrNotRecord, line)
	}
	rec.RTT = rtt

	if p.idxTTL >= 0 && matches[p.idxTTL] != "" {
		rec.TTL, _ = strconv.Atoi(matches[p.idxTTL])
	}

	// Parenthesized address wins over the bare destination text.
	if p.idxIP >= 0 && matches[p.idxIP] != "" {
		rec.Host = matches[p.idxIP]
	} else if p.idxDomain >= 0 {
		rec.Host = matches[p.idxDomain]
	}

	if p.idxTimestamp >= 0 && p.mode != TimestampNone {
		if raw := matches[p.idxTimestamp]; raw != "" {
			ts, err := parseEpoch(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: bad timestamp in %q", ErrNotRecord, line)
			}
			rec.Timestamp = ts
		}
	}
	if p.mode == TimestampRequired && rec.Timestamp.IsZero() {
		return nil, fmt.Errorf("%w: missing timestamp in %q", ErrNotRecord, line)
	}

	return rec, nil
}

// ParseTitle checks whether a line is a ping title line
// (the "PING host (addr) 56(84) bytes of data." header) and returns the
// report title derived from it.
func ParseTitle(line string) (string, bool) {
	line = strings.TrimRight(line, "\n")
	if !titlePattern.MatchString(line) {
		return "", false
	}
	return "Statistics of " + line, true
}

// parseEpoch converts a fractional epoch-seconds string to local time.
func parseEpoch(raw string) (time.Time, error) {
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing epoch timestamp %q: %w", raw, err)
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)), nil
}
