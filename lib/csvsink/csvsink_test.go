package csvsink

import (
	"bytes"
	"context"
	"errors"
	"interview-harvest/lib/chrono"
	"interview-harvest/lib/question"
	"interview-harvest/lib/telemetry"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	now := time.Date(2024, time.July, 4, 9, 5, 3, 0, time.Local)
	require.Equal(t, "gfg_companywise_20240704_090503.csv", FileName("gfg_companywise", now))
}

func TestWriteHeader(t *testing.T) {
	buff := bytes.NewBuffer(nil)
	err := Write(buff, []question.Record{{
		CompanyName:       "Acme, Inc.",
		RoleName:          "Software Engineer",
		InterviewQuestion: "Explain \"quotes\"\nacross lines",
		Difficulty:        "Easy",
		QuestionURL:       "",
		Source:            "Unknown",
		DateCollected:     "2024-01-01 00:00:00",
	}})
	require.NoError(t, err)

	lines := strings.SplitN(buff.String(), "\n", 2)
	require.Equal(t, "company_name,role_name,interview_question,difficulty,question_url,source,date_collected", lines[0])
	require.Equal(
		t,
		"\"Acme, Inc.\",Software Engineer,\"Explain \"\"quotes\"\"\nacross lines\",Easy,,Unknown,2024-01-01 00:00:00\n",
		lines[1],
	)
}

func TestRoundTrip(t *testing.T) {
	n := question.NewNormalizer(
		chrono.FixedImpl{Time: time.Date(2024, time.May, 1, 12, 0, 0, 0, time.Local)},
		&telemetry.Recorder{},
	)

	records := question.Dedupe(n.NormalizeAll([]question.Raw{
		{question.FieldCompanyName: "CompanyA", question.FieldInterviewQuestion: "Q1", question.FieldDifficulty: "easy"},
		{question.FieldCompanyName: "CompanyA", question.FieldInterviewQuestion: "Q1"},
		{question.FieldCompanyName: "CompanyB", question.FieldInterviewQuestion: "Q2, with comma"},
		{question.FieldInterviewQuestion: "  padded  ", question.FieldQuestionURL: "https://example.com/q?a=1&b=2"},
		{question.FieldCompanyName: "0042", question.FieldInterviewQuestion: "1e5", question.FieldDifficulty: "NaN"},
		{question.FieldCompanyName: "CompanyC", question.FieldInterviewQuestion: "line1\r\nline2\rline3"},
		{question.FieldCompanyName: "CompanyD", question.FieldDateCollected: "last tuesday"},
		{},
	}))

	dir := t.TempDir()
	path, err := WriteFile(dir, "github_leetcode", time.Now(), records)
	require.NoError(t, err)

	raws, err := ReadFile(path)
	require.NoError(t, err)

	again := question.Dedupe(n.NormalizeAll(raws))
	diff := cmp.Diff(records, again)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestWriteFileKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, time.July, 4, 9, 5, 3, 0, time.Local)

	first, err := WriteFile(dir, "reddit_technical", now, []question.Record{{CompanyName: "First"}})
	require.NoError(t, err)
	second, err := WriteFile(dir, "reddit_technical", now, []question.Record{{CompanyName: "Second"}})
	require.NoError(t, err)
	third, err := WriteFile(dir, "reddit_technical", now, nil)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "reddit_technical_20240704_090503.csv"), first)
	require.Equal(t, filepath.Join(dir, "reddit_technical_20240704_090503_2.csv"), second)
	require.Equal(t, filepath.Join(dir, "reddit_technical_20240704_090503_3.csv"), third)

	raws, err := ReadFile(first)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.Equal(t, "First", raws[0][question.FieldCompanyName])

	raws, err = ReadFile(second)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.Equal(t, "Second", raws[0][question.FieldCompanyName])

	candidates, err := FindCandidates(dir, DefaultPatterns)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
}

func TestReadMissingColumns(t *testing.T) {
	raws, err := Read(strings.NewReader("\ufeffcompany_name,interview_question,extra\nGoogle,Two Sum,ignored\n,,\n"))
	require.NoError(t, err)
	require.Len(t, raws, 2)
	require.Equal(t, "Google", raws[0][question.FieldCompanyName])
	_, hasDifficulty := raws[0][question.FieldDifficulty]
	require.False(t, hasDifficulty)
	require.Equal(t, "", raws[1][question.FieldCompanyName])
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	require.ErrorIs(t, err, ErrNoHeader)

	_, err = Read(strings.NewReader("company_name,interview_question\nA,B,C\n"))
	require.True(t, errors.As(err, &readErr))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.True(t, errors.As(err, &readErr))
	require.True(t, os.IsNotExist(readErr.Err))
	require.Contains(t, readErr.Path, "missing.csv")
}

func TestFindCandidates(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	files := []string{
		"reddit_technical_20240101_000000.csv",
		"gfg_companywise_20240102_000000.csv",
		"MASTER_all.csv",
		"notes.csv",
	}
	for i, name := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("company_name\n"), 0600))
		mtime := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	candidates, err := FindCandidates(dir, DefaultPatterns)
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	require.Equal(t, "MASTER_all.csv", filepath.Base(candidates[0].Path))
	require.Equal(t, "gfg_companywise_20240102_000000.csv", filepath.Base(candidates[1].Path))
	require.Equal(t, "reddit_technical_20240101_000000.csv", filepath.Base(candidates[2].Path))

	path, err := Resolve(context.Background(), dir, DefaultPatterns, nil)
	require.NoError(t, err)
	require.Equal(t, candidates[0].Path, path)

	path, err = Resolve(context.Background(), dir, DefaultPatterns, func(_ context.Context, c []Candidate) (Candidate, error) {
		return c[len(c)-1], nil
	})
	require.NoError(t, err)
	require.Equal(t, candidates[2].Path, path)

	_, err = Resolve(context.Background(), t.TempDir(), DefaultPatterns, nil)
	require.ErrorIs(t, err, ErrNoCandidates)
}
