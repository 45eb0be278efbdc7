package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InitSlog installs a text logger on stderr, debug records are only kept
// when verbose is set.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

var reportMeter = otel.Meter("interview-harvest/lib/telemetry")

// SlogAPI logs reports through log/slog. Counts are additionally recorded
// on the `harvest.count` gauge so they reach the metric exporter when one
// is configured.
type SlogAPI struct{}

// positional params become params.0, params.1, ...
func paramPairs(prefix []any, params []any) []any {
	out := prefix
	for i, p := range params {
		out = append(out, fmt.Sprintf("params.%d", i), p)
	}
	return out
}

func (SlogAPI) ReportBroken(id string, params ...any) {
	slog.Error("broken component", paramPairs([]any{"id", id}, params)...)
}

func (SlogAPI) ReportWarning(id string, params ...any) {
	slog.Warn("warning", paramPairs([]any{"id", id}, params)...)
}

func (SlogAPI) ReportDebug(message string, params ...any) {
	slog.Debug(message, paramPairs(nil, params)...)
}

func (SlogAPI) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "n", count)

	gauge, err := reportMeter.Int64Gauge("harvest.count")
	if err != nil {
		return
	}
	gauge.Record(context.Background(), count, metric.WithAttributes(attribute.String("id", id)))
}
