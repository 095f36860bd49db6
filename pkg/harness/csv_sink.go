package harness

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// CSVSink appends rows to a CSV file, one "board,move,score" line per row,
// matching the column layout original_source's generate_training_data
// writes. Safe for concurrent use across workers.
type CSVSink struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVSink opens (creating if necessary) path for appending, writing a
// header row only if the file is new/empty.
func NewCSVSink(path string) (*CSVSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening training data file %q", path)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "stating training data file %q", path)
	}

	writer := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := writer.Write([]string{"board", "move", "score"}); err != nil {
			file.Close()
			return nil, errors.Wrap(err, "writing training data header")
		}
		writer.Flush()
	}

	return &CSVSink{file: file, writer: writer}, nil
}

// Append writes one row, flushing immediately so concurrent writers never
// interleave partial lines.
func (s *CSVSink) Append(row TrainingRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writer.Write([]string{row.BoardEncoding, row.Move, fmt.Sprintf("%d", row.Score)}); err != nil {
		return errors.Wrap(err, "writing training data row")
	}
	s.writer.Flush()
	return s.writer.Error()
}

// Close flushes and closes the underlying file.
func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer.Flush()
	return s.file.Close()
}
