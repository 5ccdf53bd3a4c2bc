package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoTitle is returned by Next when title detection was requested and
// the input was exhausted without a title line. It indicates a corrupted
// or unexpected log file and is fatal for the run.
var ErrNoTitle = errors.New("no ping title found")

// RecordSource provides an iterator over parsed probe records.
// Implementations must be safe for sequential access (not concurrent).
type RecordSource interface {
	// Next returns the next probe record.
	// Returns io.EOF when no more records are available.
	// Lines that are not probe records are skipped.
	Next(ctx context.Context) (*Record, error)

	// Close releases any resources held by the source.
	Close() error
}

// SourceOption configures a FileSource.
type SourceOption func(*FileSource)

// WithTitle makes the source scan for the ping title line before the
// first record. Lines ahead of the title are discarded. If the input ends
// without a title, Next returns ErrNoTitle.
func WithTitle() SourceOption {
	return func(s *FileSource) {
		s.wantTitle = true
	}
}

// FileSource implements RecordSource for reading from ping log files.
// Files are consumed strictly in argument order, one line at a time;
// line order defines "previous" for gap detection downstream, so the
// source never reorders input.
type FileSource struct {
	files     []string
	parser    *RecordParser
	wantTitle bool
	title     string

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
	linesRead      int
}

// NewFileSource creates a RecordSource that reads from the given files
// using the given record parser.
func NewFileSource(files []string, p *RecordParser, opts ...SourceOption) *FileSource {
	s := &FileSource{
		files:     files,
		parser:    p,
		fileIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next probe record.
// Non-record lines are skipped. Returns io.EOF when all files have been
// exhausted, or ErrNoTitle if a title was required but never seen.
func (s *FileSource) Next(ctx context.Context) (*Record, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Ensure we have a file open
		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				if err == io.EOF && s.wantTitle && s.title == "" {
					return nil, ErrNoTitle
				}
				return nil, err
			}
		}

		// Try to read the next line
		if s.currentScanner.Scan() {
			s.currentLine++
			s.linesRead++
			line := s.currentScanner.Text()

			// Consume lines up to and including the title before
			// parsing records.
			if s.wantTitle && s.title == "" {
				if title, ok := ParseTitle(line); ok {
					s.title = title
				}
				continue
			}

			rec, err := s.parser.Parse(line)
			if err != nil {
				// Noise line, skip
				continue
			}
			rec.Source = s.currentSource
			rec.LineNum = s.currentLine
			return rec, nil
		}

		// Check for scanner error
		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
		s.currentScanner = nil
	}
}

// Title returns the detected title, or "" if none was seen (yet).
func (s *FileSource) Title() string {
	return s.title
}

// LinesRead returns the total number of lines consumed so far.
func (s *FileSource) LinesRead() int {
	return s.linesRead
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	return nil
}

// ReadAll drains a source into an ordered record list.
// All records are retained in memory for the statistics pass; this is an
// accepted bound for log-file-sized inputs.
func ReadAll(ctx context.Context, source RecordSource) ([]Record, error) {
	var records []Record
	for {
		rec, err := source.Next(ctx)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
}
