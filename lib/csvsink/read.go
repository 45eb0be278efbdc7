package csvsink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"interview-harvest/lib/question"
	"io"
	"os"
	"strings"
)

// ReadError is returned when an interchange file cannot be opened or parsed.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read csv: %s", e.Err.Error())
	}
	return fmt.Sprintf("read csv %s: %s", e.Path, e.Err.Error())
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

var ErrNoHeader = errors.New("missing header row")

const utf8BOM = "\ufeff"

// Read parses an interchange file into raw records. Columns are matched by
// header name, unknown columns are ignored and absent ones stay absent so the
// normalizer can default them.
func Read(r io.Reader) ([]question.Raw, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ReadError{Err: ErrNoHeader}
	}
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var out []question.Raw
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ReadError{Err: err}
		}

		raw := make(question.Raw, len(header))
		for i, column := range header {
			raw[strings.TrimSpace(column)] = row[i]
		}
		out = append(out, raw)
	}
	return out, nil
}

// ReadFile is Read on the file at path.
func ReadFile(path string) ([]question.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	raws, err := Read(f)
	var readErr *ReadError
	if errors.As(err, &readErr) {
		readErr.Path = path
	}
	return raws, err
}
