package question

import (
	"interview-harvest/lib/chrono"
	"interview-harvest/lib/telemetry"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 30, 5, 0, time.Local)

func newTestNormalizer() (Normalizer, *telemetry.Recorder) {
	rec := &telemetry.Recorder{}
	return NewNormalizer(chrono.FixedImpl{Time: fixedNow}, rec), rec
}

func TestNormalizeDifficulty(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "EASY", expected: DifficultyEasy},
		{input: "easy", expected: DifficultyEasy},
		{input: "Easy ", expected: DifficultyEasy},
		{input: "\tmedium\n", expected: DifficultyMedium},
		{input: "HaRd", expected: DifficultyHard},
		{input: "n/a", expected: DifficultyNotSpecified},
		{input: "Not Specified", expected: DifficultyNotSpecified},
		{input: "very hard", expected: DifficultyNotSpecified},
		{input: "", expected: DifficultyNotSpecified},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeDifficulty(test.input), "input %q", test.input)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	n, _ := newTestNormalizer()
	now := FormatDate(fixedNow)

	testCases := []struct {
		name     string
		raw      Raw
		expected Record
	}{
		{
			name: "everything missing",
			raw:  Raw{},
			expected: Record{
				CompanyName:       DefaultCompanyName,
				RoleName:          DefaultRoleName,
				InterviewQuestion: DefaultQuestion,
				Difficulty:        DefaultDifficulty,
				QuestionURL:       DefaultQuestionURL,
				Source:            DefaultSource,
				DateCollected:     now,
			},
		},
		{
			name: "missing difficulty and url",
			raw: Raw{
				FieldCompanyName:       "CompanyA",
				FieldRoleName:          "Backend Engineer",
				FieldInterviewQuestion: "Q1",
				FieldSource:            "GeeksforGeeks",
				FieldDateCollected:     "2024-01-02 03:04:05",
			},
			expected: Record{
				CompanyName:       "CompanyA",
				RoleName:          "Backend Engineer",
				InterviewQuestion: "Q1",
				Difficulty:        "Not Specified",
				QuestionURL:       "",
				Source:            "GeeksforGeeks",
				DateCollected:     "2024-01-02 03:04:05",
			},
		},
		{
			name: "na tokens and blank strings are missing",
			raw: Raw{
				FieldCompanyName:       "nan",
				FieldRoleName:          "   ",
				FieldInterviewQuestion: "NULL",
				FieldDifficulty:        "None",
				FieldQuestionURL:       "N/A",
				FieldSource:            "<NA>",
				FieldDateCollected:     "",
			},
			expected: Record{
				CompanyName:       DefaultCompanyName,
				RoleName:          DefaultRoleName,
				InterviewQuestion: DefaultQuestion,
				Difficulty:        DefaultDifficulty,
				QuestionURL:       DefaultQuestionURL,
				Source:            DefaultSource,
				DateCollected:     now,
			},
		},
		{
			name: "values are kept verbatim",
			raw: Raw{
				FieldCompanyName:       " Google ",
				FieldInterviewQuestion: "Two Sum, but sorted?",
				FieldDifficulty:        "medium",
				FieldQuestionURL:       "not a url",
				FieldDateCollected:     "2023-11-05T08:09:10Z",
			},
			expected: Record{
				CompanyName:       " Google ",
				RoleName:          DefaultRoleName,
				InterviewQuestion: "Two Sum, but sorted?",
				Difficulty:        DifficultyMedium,
				QuestionURL:       "not a url",
				Source:            DefaultSource,
				DateCollected:     "2023-11-05 08:09:10",
			},
		},
		{
			name: "unparseable dates default to now",
			raw: Raw{
				FieldDateCollected: "last tuesday",
			},
			expected: Record{
				CompanyName:       DefaultCompanyName,
				RoleName:          DefaultRoleName,
				InterviewQuestion: DefaultQuestion,
				Difficulty:        DefaultDifficulty,
				QuestionURL:       DefaultQuestionURL,
				Source:            DefaultSource,
				DateCollected:     FormatDate(fixedNow),
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			diff := cmp.Diff(test.expected, n.Normalize(test.raw))
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestNormalizeLineBreaks(t *testing.T) {
	n, _ := newTestNormalizer()

	rec := n.Normalize(Raw{
		FieldCompanyName:       "Acme\r\nLabs",
		FieldInterviewQuestion: "line1\r\nline2\rline3\nline4",
	})
	require.Equal(t, "Acme\nLabs", rec.CompanyName)
	require.Equal(t, "line1\nline2\nline3\nline4", rec.InterviewQuestion)
}

func TestNormalizeBadDateReported(t *testing.T) {
	n, rec := newTestNormalizer()

	out := n.NormalizeAll([]Raw{
		{FieldDateCollected: "last tuesday"},
		{FieldDateCollected: "2024-13-45"},
		{FieldDateCollected: "2024-02-01"},
	})
	require.Equal(t, FormatDate(fixedNow), out[0].DateCollected)
	require.Equal(t, FormatDate(fixedNow), out[1].DateCollected)
	require.Equal(t, "2024-02-01 00:00:00", out[2].DateCollected)

	var sawDate bool
	for _, w := range rec.Filter(telemetry.KindWarning) {
		if w.ID == "question:"+report_normalize_date {
			sawDate = true
			require.Equal(t, []any{int64(2)}, w.Params)
		}
	}
	require.True(t, sawDate)
}

func TestNormalizeTotality(t *testing.T) {
	n, _ := newTestNormalizer()

	// every subset of present fields
	for mask := 0; mask < 1<<len(Header); mask++ {
		raw := Raw{}
		for i, field := range Header {
			if mask&(1<<i) != 0 {
				raw[field] = "value"
			}
		}
		rec := n.Normalize(raw)
		for i, value := range rec.Values() {
			field := Header[i]
			if mask&(1<<i) != 0 {
				continue
			}
			switch field {
			case FieldCompanyName:
				require.Equal(t, DefaultCompanyName, value)
			case FieldRoleName:
				require.Equal(t, DefaultRoleName, value)
			case FieldInterviewQuestion:
				require.Equal(t, DefaultQuestion, value)
			case FieldDifficulty:
				require.Equal(t, DefaultDifficulty, value)
			case FieldQuestionURL:
				require.Equal(t, DefaultQuestionURL, value)
			case FieldSource:
				require.Equal(t, DefaultSource, value)
			case FieldDateCollected:
				require.Equal(t, FormatDate(fixedNow), value)
			}
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n, _ := newTestNormalizer()

	raws := []Raw{
		{},
		{FieldCompanyName: "Amazon", FieldDifficulty: "HARD", FieldDateCollected: "2024-02-01"},
		{FieldInterviewQuestion: "What is a trie?", FieldDifficulty: "n/a"},
	}
	for _, raw := range raws {
		first := n.Normalize(raw)
		again := Raw{}
		for i, field := range Header {
			again[field] = first.Values()[i]
		}
		require.Equal(t, first, n.Normalize(again))
	}
}

func TestNormalizeAllReportsCorrections(t *testing.T) {
	n, rec := newTestNormalizer()

	out := n.NormalizeAll([]Raw{
		{FieldCompanyName: "A", FieldInterviewQuestion: "Q1", FieldDifficulty: "impossible"},
		{FieldCompanyName: "B", FieldInterviewQuestion: "Q2"},
	})
	require.Len(t, out, 2)
	require.Equal(t, "A", out[0].CompanyName)
	require.Equal(t, "B", out[1].CompanyName)

	warnings := rec.Filter(telemetry.KindWarning)
	require.NotEmpty(t, warnings)

	var sawDifficulty bool
	for _, w := range warnings {
		if w.ID == "question:"+report_normalize_difficulty {
			sawDifficulty = true
			require.Equal(t, []any{int64(1)}, w.Params)
		}
	}
	require.True(t, sawDifficulty)
	require.Empty(t, rec.Filter(telemetry.KindBroken))
}
