package ingest

import (
	"context"
	"errors"
	"fmt"
	"interview-harvest/lib/chrono"
	"interview-harvest/lib/collectors"
	"interview-harvest/lib/csvsink"
	"interview-harvest/lib/question"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrNoData = errors.New("no data collected")

// Uploader ships a written CSV somewhere else, returning where it went.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

type CollectOptions struct {
	ExportDir string
	Clock     chrono.API
	// optional
	Uploader Uploader
}

type CollectReport struct {
	RunID     string
	Collector string
	File      string
	// remote location, empty when nothing was uploaded
	Remote  string
	Raw     int
	Records []question.Record
}

// Collect runs a collector and writes its normalized, deduplicated records
// to a timestamped CSV in the export directory.
func Collect(ctx context.Context, c collectors.Collector, normalizer question.Normalizer, opts CollectOptions) (report CollectReport, err error) {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	runId, err := random.String(8)
	if err != nil {
		return CollectReport{}, err
	}
	report = CollectReport{
		RunID:     runId,
		Collector: c.Name(),
	}
	span.SetAttributes(
		attribute.String("run_id", runId),
		attribute.String("collector", c.Name()),
	)

	raws, err := c.Collect(ctx)
	if err != nil {
		return report, &SourceReadError{Source: c.Name(), Err: err}
	}
	report.Raw = len(raws)
	if len(raws) == 0 {
		return report, ErrNoData
	}

	report.Records = question.Dedupe(normalizer.NormalizeAll(raws))

	clock := opts.Clock
	if clock == nil {
		clock = chrono.NewStandardImpl()
	}
	report.File, err = csvsink.WriteFile(opts.ExportDir, c.FilePrefix(), clock.Now(), report.Records)
	if err != nil {
		return report, fmt.Errorf("write csv: %w", err)
	}

	if opts.Uploader != nil {
		report.Remote, err = opts.Uploader.Upload(ctx, report.File)
		if err != nil {
			return report, fmt.Errorf("upload %s: %w", report.File, err)
		}
	}
	return report, nil
}
