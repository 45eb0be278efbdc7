// Package csvsink reads and writes the CSV interchange files that sit between
// a collect run and a load run.
package csvsink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"interview-harvest/lib/question"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxCollisions bounds the suffixes tried when a file with the same
// timestamp already exists.
const maxCollisions = 100

// FileName renders the name of a collect run's output file,
// `<prefix>_YYYYMMDD_HHMMSS.csv`.
func FileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, t.Format("20060102_150405"))
}

// Write serializes records with a header row, one row per record.
func Write(w io.Writer, records []question.Record) error {
	cw := csv.NewWriter(w)
	err := cw.Write(question.Header)
	if err != nil {
		return err
	}
	for _, r := range records {
		err = cw.Write(r.Values())
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// createExclusive creates the file for name under dir, never truncating an
// existing one. On collision `_2`, `_3`, ... is appended before the extension.
func createExclusive(dir, name string) (*os.File, string, error) {
	base := strings.TrimSuffix(name, ".csv")
	for i := 1; i <= maxCollisions; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s_%d.csv", base, i)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return f, path, nil
	}
	return nil, "", fmt.Errorf("%s: %d files with the same name already exist", filepath.Join(dir, name), maxCollisions)
}

// WriteFile writes records into a new timestamped file under dir and returns
// its path. dir is created if needed. An existing file is never overwritten.
func WriteFile(dir, prefix string, now time.Time, records []question.Record) (string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", err
	}

	f, path, err := createExclusive(dir, FileName(prefix, now))
	if err != nil {
		return "", err
	}

	err = Write(f, records)
	if err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	err = f.Close()
	if err != nil {
		return "", err
	}
	return path, nil
}
