package question

import (
	"interview-harvest/lib/chrono"
	"interview-harvest/lib/telemetry"
	"strings"
	"time"
)

const (
	report_normalize_default    = "normalize.default"
	report_normalize_difficulty = "normalize.difficulty"
	report_normalize_date       = "normalize.date"
)

// the values dataframe and spreadsheet exports use to spell "nothing here"
var missingTokens = map[string]struct{}{
	"nan":  {},
	"NaN":  {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NULL": {},
	"null": {},
	"None": {},
	"<NA>": {},
}

func isMissing(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return true
	}
	_, ok := missingTokens[trimmed]
	return ok
}

// csv readers turn CRLF inside a quoted field into LF, so line breaks are
// stored as LF from the start.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeDifficulty folds any casing (and surrounding whitespace) of
// easy/medium/hard into its title case form, everything else is "Not Specified".
func NormalizeDifficulty(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	}
	return DifficultyNotSpecified
}

// Normalizer maps raw records into canonical ones.
type Normalizer struct {
	clock chrono.API
	tel   telemetry.API
}

func NewNormalizer(clock chrono.API, tel telemetry.API) Normalizer {
	return Normalizer{
		clock: clock,
		tel:   telemetry.NewScopedAPI("question", tel),
	}
}

// stats accumulates the silent corrections made over a batch so they can be
// reported once instead of per record.
type stats struct {
	defaulted  map[string]int64
	difficulty int64
	date       int64
}

func newStats() *stats {
	return &stats{defaulted: map[string]int64{}}
}

func (n Normalizer) pick(raw Raw, field, fallback string, s *stats) string {
	value, ok := raw[field]
	if !ok || isMissing(value) {
		s.defaulted[field]++
		return fallback
	}
	return lineBreaks.Replace(value)
}

func (n Normalizer) difficulty(raw Raw, s *stats) string {
	value, ok := raw[FieldDifficulty]
	if !ok || isMissing(value) {
		s.defaulted[FieldDifficulty]++
		return DefaultDifficulty
	}
	normalized := NormalizeDifficulty(value)
	if normalized == DifficultyNotSpecified &&
		!strings.EqualFold(strings.TrimSpace(value), DifficultyNotSpecified) {
		s.difficulty++
	}
	return normalized
}

func (n Normalizer) date(raw Raw, s *stats) string {
	value, ok := raw[FieldDateCollected]
	if !ok || isMissing(value) {
		s.defaulted[FieldDateCollected]++
		return FormatDate(n.clock.Now())
	}
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err == nil {
			return FormatDate(t)
		}
	}
	s.date++
	return FormatDate(n.clock.Now())
}

func (n Normalizer) normalize(raw Raw, s *stats) Record {
	return Record{
		CompanyName:       n.pick(raw, FieldCompanyName, DefaultCompanyName, s),
		RoleName:          n.pick(raw, FieldRoleName, DefaultRoleName, s),
		InterviewQuestion: n.pick(raw, FieldInterviewQuestion, DefaultQuestion, s),
		Difficulty:        n.difficulty(raw, s),
		QuestionURL:       n.pick(raw, FieldQuestionURL, DefaultQuestionURL, s),
		Source:            n.pick(raw, FieldSource, DefaultSource, s),
		DateCollected:     n.date(raw, s),
	}
}

// Normalize produces exactly one canonical record from a raw one.
func (n Normalizer) Normalize(raw Raw) Record {
	s := newStats()
	rec := n.normalize(raw, s)
	n.report(s)
	return rec
}

// NormalizeAll normalizes a batch, preserving order.
func (n Normalizer) NormalizeAll(raws []Raw) []Record {
	s := newStats()
	out := make([]Record, len(raws))
	for i, raw := range raws {
		out[i] = n.normalize(raw, s)
	}
	n.report(s)
	return out
}

func (n Normalizer) report(s *stats) {
	for _, field := range Header {
		count := s.defaulted[field]
		if count == 0 {
			continue
		}
		n.tel.ReportWarning(report_normalize_default, field, count)
	}
	if s.difficulty > 0 {
		n.tel.ReportWarning(report_normalize_difficulty, s.difficulty)
	}
	if s.date > 0 {
		n.tel.ReportWarning(report_normalize_date, s.date)
	}
}
