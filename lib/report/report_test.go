package report

import (
	"bytes"
	"context"
	"interview-harvest/lib/ingest"
	"interview-harvest/lib/question"
	"interview-harvest/lib/testutil"
	"interview-harvest/lib/warehouse"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func rec(company, difficulty string) question.Record {
	return question.Record{
		CompanyName:       company,
		InterviewQuestion: "q",
		Difficulty:        difficulty,
		Source:            "Reddit - r/leetcode",
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]question.Record{
		rec("Google", question.DifficultyHard),
		rec(MultipleCompanies, question.DifficultyEasy),
		rec("Amazon", question.DifficultyHard),
		rec("Google", question.DifficultyMedium),
	})

	require.Equal(t, 4, s.Total)
	require.Equal(t, 3, s.Specific)
	require.InDelta(t, 0.75, s.SpecificShare(), 1e-9)
	require.Equal(t, VerdictGood, s.Verdict())

	expected := []warehouse.GroupCount{
		{Key: "Google", Count: 2},
		{Key: "Amazon", Count: 1},
		{Key: MultipleCompanies, Count: 1},
	}
	if diff := cmp.Diff(expected, s.ByCompany); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, []warehouse.GroupCount{{Key: "Reddit - r/leetcode", Count: 4}}, s.BySource)
}

func TestVerdictThresholds(t *testing.T) {
	testCases := []struct {
		specific int
		total    int
		expected Verdict
	}{
		{specific: 5, total: 10, expected: VerdictGood},
		{specific: 3, total: 10, expected: VerdictModerate},
		{specific: 49, total: 100, expected: VerdictModerate},
		{specific: 29, total: 100, expected: VerdictPoor},
		{specific: 0, total: 0, expected: VerdictPoor},
	}
	for _, test := range testCases {
		s := Summary{Total: test.total, Specific: test.specific}
		require.Equal(t, test.expected, s.Verdict(), "%d/%d", test.specific, test.total)
	}
}

func TestSuggest(t *testing.T) {
	companies := []string{"Google", "Goldman Sachs", "Amazon", "Microsoft"}

	suggestions := Suggest("gogle", companies, 0.8, 3)
	require.NotEmpty(t, suggestions)
	require.Equal(t, "Google", suggestions[0].Company)
	for _, s := range suggestions {
		require.GreaterOrEqual(t, s.Similarity, 0.8)
	}

	require.Empty(t, Suggest("  ", companies, 0, 3))
	require.Len(t, Suggest("a", companies, 0, 2), 2)
}

func TestCollectRendersQuality(t *testing.T) {
	var out bytes.Buffer
	s := Collect(&out, ingest.CollectReport{
		RunID:     "abcd1234",
		Collector: "reddit",
		File:      "reddit_technical_20240309_143005.csv",
		Raw:       3,
		Records: []question.Record{
			rec("Google", question.DifficultyHard),
			rec(MultipleCompanies, question.DifficultyEasy),
		},
	}, 15)

	require.Equal(t, VerdictGood, s.Verdict())
	rendered := out.String()
	require.Contains(t, rendered, "reddit run abcd1234")
	require.Contains(t, rendered, "1 (50.0%)")
	require.Contains(t, rendered, "reddit_technical_20240309_143005.csv")
	require.NotContains(t, rendered, "Uploaded to")
}

func TestLoadRendersTrace(t *testing.T) {
	var out bytes.Buffer
	Load(&out, ingest.LoadReport{
		Source:   "a.csv",
		Read:     3,
		Unique:   2,
		After:    2,
		Inserted: 2,
		Trace:    []ingest.State{ingest.StateDisconnected, ingest.StateFailed, ingest.StateClosed},
	})
	require.Contains(t, out.String(), "disconnected > failed > closed")
}

func TestRowsTruncatesQuestions(t *testing.T) {
	var out bytes.Buffer
	long := strings.Repeat("x", 200)
	Rows(&out, "Sample", []warehouse.Row{{Record: question.Record{InterviewQuestion: long}}})
	require.NotContains(t, out.String(), long)
	require.Contains(t, out.String(), strings.Repeat("x", questionPreview-3)+"...")
}

func TestSuggestFromWarehouse(t *testing.T) {
	google := testutil.RandomRecord(t)
	google.CompanyName = "Google"
	goldman := testutil.RandomRecord(t)
	goldman.CompanyName = "Goldman Sachs"
	store := testutil.SetupWarehouse(t, testutil.WarehouseParams{
		Seed: []question.Record{google, goldman, testutil.RandomRecord(t)},
	})
	ctx := context.Background()

	rows, err := store.SearchCompany(ctx, "gogle", 20)
	require.NoError(t, err)
	require.Empty(t, rows)

	counts, err := store.CountByCompany(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 3)
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Key
	}

	suggestions := Suggest("gogle", names, 0.7, 5)
	require.NotEmpty(t, suggestions)
	require.Equal(t, "Google", suggestions[0].Company)

	var out bytes.Buffer
	Suggestions(&out, "gogle", suggestions)
	require.Contains(t, out.String(), "did you mean")
	require.Contains(t, out.String(), "Google")
}
