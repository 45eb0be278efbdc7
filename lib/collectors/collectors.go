// Package collectors defines the interface every question source
// implements and a registry the CLI resolves collector names through.
package collectors

import (
	"context"
	"interview-harvest/lib/question"
	"sort"
	"strings"
)

type Collector interface {
	// Name is the identifier used on the command line.
	Name() string
	// FilePrefix is prepended to the timestamped CSV file name.
	FilePrefix() string
	// Collect fetches the source and returns its records in raw form.
	Collect(ctx context.Context) ([]question.Raw, error)
}

var registry = map[string]Collector{}

func Register(c Collector) {
	registry[strings.ToLower(c.Name())] = c
}

func Get(name string) (Collector, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

// Names lists registered collectors in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Func adapts a function into a Collector.
type Func struct {
	ID     string
	Prefix string
	Fn     func(ctx context.Context) ([]question.Raw, error)
}

func (f Func) Name() string {
	return f.ID
}

func (f Func) FilePrefix() string {
	return f.Prefix
}

func (f Func) Collect(ctx context.Context) ([]question.Raw, error) {
	return f.Fn(ctx)
}
