// Package restyutil writes transcripts of collector HTTP exchanges to disk
// so scraping heuristics can be debugged against what a site actually
// returned.
package restyutil

import (
	"fmt"
	devenv "interview-harvest/dev/env"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type Output interface {
	Write(id string, contents string)
}

type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput clears and recreates dir, `<dev_state>/...` paths are
// resolved.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.RemoveAll(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http transcript", "id", id, "err", err)
	}
}

// DumpTranscripts writes every response the client receives to output as
// `<prefix>-<n>.txt`.
func DumpTranscripts(client *resty.Client, prefix string, output Output) {
	if output == nil {
		return
	}
	var counter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := fmt.Sprintf("%s-%d.txt", prefix, atomic.AddUint64(&counter, 1))
		output.Write(id, formatTranscript(res))
		return nil
	})
}
