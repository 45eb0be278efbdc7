package ingest

import (
	"context"
	"interview-harvest/lib/csvsink"
	"interview-harvest/lib/question"
	"interview-harvest/lib/telemetry"
	"interview-harvest/lib/warehouse"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("interview-harvest/lib/ingest")

const (
	report_load_affected_mismatch = "load.affected-mismatch"
	report_load_inserted          = "load.inserted"
	report_load_close             = "load.close"
)

// LoadReport describes one load run. Before and After are only meaningful
// once the trace has passed the counted and verified states.
type LoadReport struct {
	Source string
	// rows read from the source
	Read int
	// records left after normalization and dedup
	Unique   int
	Before   int64
	After    int64
	Inserted int64
	Trace    []State
}

// OpenFunc connects to a warehouse.
type OpenFunc func(ctx context.Context, config warehouse.Config) (warehouse.Store, error)

type Loader struct {
	config     warehouse.Config
	normalizer question.Normalizer
	open       OpenFunc
	tel        telemetry.API
}

func NewLoader(config warehouse.Config, normalizer question.Normalizer, tel telemetry.API) Loader {
	return Loader{
		config:     config,
		normalizer: normalizer,
		open:       warehouse.Open,
		tel:        telemetry.NewScopedAPI("ingest", tel),
	}
}

// WithOpen replaces how the loader connects to the warehouse.
func (l Loader) WithOpen(open OpenFunc) Loader {
	l.open = open
	return l
}

// LoadFile reads a CSV written by a collect run and merges it into the
// warehouse.
func (l Loader) LoadFile(ctx context.Context, path string) (LoadReport, error) {
	raws, err := csvsink.ReadFile(path)
	if err != nil {
		report := LoadReport{Source: path}
		m := newMachine()
		m.close()
		report.Trace = m.trace
		return report, &SourceReadError{Source: path, Err: err}
	}
	return l.Load(ctx, path, raws)
}

// Load normalizes and dedupes raws, then inserts every record whose
// (company_name, interview_question) pair is not already stored. Either all
// insertable records are committed or none are.
func (l Loader) Load(ctx context.Context, source string, raws []question.Raw) (report LoadReport, err error) {
	ctx, span := tracer.Start(ctx, "Load")
	defer span.End()
	span.SetAttributes(attribute.String("source", source))

	records := question.Dedupe(l.normalizer.NormalizeAll(raws))
	report = LoadReport{
		Source: source,
		Read:   len(raws),
		Unique: len(records),
	}

	m := newMachine()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		m.close()
		report.Trace = m.trace
	}()

	store, err := l.open(ctx, l.config)
	if err != nil {
		m.fail()
		return report, &ConnectionError{Driver: l.config.Driver, Err: err}
	}
	defer func() {
		closeErr := store.Close()
		if closeErr != nil {
			l.tel.ReportBroken(report_load_close, closeErr)
		}
	}()
	m.advance()

	report.Before, err = store.Count(ctx)
	if err != nil {
		state := m.current()
		m.fail()
		return report, &MergeError{State: state, Err: err}
	}
	m.advance()

	batch, err := store.PrepareBatch(ctx, records)
	if err != nil {
		state := m.current()
		m.fail()
		return report, &MergeError{State: state, Err: err}
	}
	defer batch.Discard()
	m.advance()

	affected, err := batch.Merge(ctx)
	if err != nil {
		state := m.current()
		m.fail()
		return report, &MergeError{State: state, Err: err}
	}
	m.advance()

	report.After, err = store.Count(ctx)
	if err != nil {
		state := m.current()
		m.fail()
		return report, &MergeError{State: state, Err: err}
	}
	m.advance()

	report.Inserted = report.After - report.Before
	if report.Inserted != affected {
		// only possible when another writer touched the table mid-load
		l.tel.ReportWarning(report_load_affected_mismatch, report.Inserted, affected)
	}
	l.tel.ReportCount(report_load_inserted, report.Inserted)
	span.SetAttributes(
		attribute.Int64("before", report.Before),
		attribute.Int64("after", report.After),
		attribute.Int64("inserted", report.Inserted),
	)
	return report, nil
}
