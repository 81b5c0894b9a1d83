package recorder

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

const TimestampLayout = "15:04:05"

// CSVSink writes one row per sample after a "Time(s),Timestamp,..." header.
type CSVSink struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVSink writes the header immediately.
func NewCSVSink(w io.Writer, columns []string) (*CSVSink, error) {
	s := &CSVSink{w: csv.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}

	header := append([]string{"Time(s)", "Timestamp"}, columns...)
	if err := s.w.Write(header); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	return s, nil
}

// CreateCSV creates or truncates path.
func CreateCSV(path string, columns []string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s, err := NewCSVSink(f, columns)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

func (s *CSVSink) Write(sample Sample) error {
	row := make([]string, 0, len(sample.Readings)+2)
	row = append(row, formatValue(sample.ElapsedSeconds()), sample.Timestamp.Format(TimestampLayout))
	for _, r := range sample.Readings {
		// an unreadable sensor leaves its cell empty
		if !r.Valid() {
			row = append(row, "")
			continue
		}
		row = append(row, formatValue(r.Value))
	}

	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("csv row: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("csv row: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
