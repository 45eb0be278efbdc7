package gfg

import (
	"context"
	"interview-harvest/lib/htmlutil"
	"interview-harvest/lib/question"
	"interview-harvest/lib/scrapeutil"
	"interview-harvest/lib/telemetry"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<header><a href="https://www.geeksforgeeks.org/problems/header-link">Header problem link</a></header>
<article>
  <p>Intro with <a href="https://www.geeksforgeeks.org/problems/too-early">A problem before any company</a></p>
  <h2>Amazon Interview Coding Questions:</h2>
  <p><strong>Easy:</strong></p>
  <ul>
    <li><a href="https://www.geeksforgeeks.org/problems/two-sum">Two Sum Problem</a></li>
    <li><a href="https://example.com/problems/elsewhere">Off site problem</a></li>
    <li><a href="https://www.geeksforgeeks.org/about/">About GeeksforGeeks</a></li>
    <li><a href="https://www.geeksforgeeks.org/problems/x">Tiny</a></li>
  </ul>
  <p><strong>Hard:</strong></p>
  <p><a href="https://www.geeksforgeeks.org/what-is-a-trie/">What is a trie?</a></p>
  <h3>Microsoft Interview Questions</h3>
  <p><a href="https://practice.geeksforgeeks.org/practice/lru-cache">LRU Cache design</a></p>
</article>
</body></html>`

func amazon(text, difficulty, href string) question.Raw {
	return question.Raw{
		question.FieldCompanyName:       "Amazon",
		question.FieldRoleName:          question.DefaultRoleName,
		question.FieldInterviewQuestion: text,
		question.FieldDifficulty:        difficulty,
		question.FieldQuestionURL:       href,
		question.FieldSource:            Source,
	}
}

func TestParse(t *testing.T) {
	doc, err := htmlutil.Document(page)
	require.NoError(t, err)

	got := Parse(context.Background(), doc, &telemetry.Recorder{})

	twoSum := amazon("Two Sum Problem", question.DifficultyEasy, "https://www.geeksforgeeks.org/problems/two-sum")
	expected := []question.Raw{
		// found once through the ul and once through the li
		twoSum,
		twoSum,
		amazon("What is a trie?", question.DifficultyHard, "https://www.geeksforgeeks.org/what-is-a-trie/"),
		{
			question.FieldCompanyName:       "Microsoft",
			question.FieldRoleName:          question.DefaultRoleName,
			question.FieldInterviewQuestion: "LRU Cache design",
			question.FieldDifficulty:        question.DifficultyNotSpecified,
			question.FieldQuestionURL:       "https://practice.geeksforgeeks.org/practice/lru-cache",
			question.FieldSource:            Source,
		},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestCompanyFromHeading(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
		ok       bool
	}{
		{text: "Amazon Interview Coding Questions:", expected: "Amazon", ok: true},
		{text: "Goldman Sachs Interview Questions", expected: "Goldman Sachs", ok: true},
		{text: "Interview tips", ok: false},
		{text: "Top 10 Interview Questions", ok: false},
	}
	for _, test := range testCases {
		company, ok := companyFromHeading(test.text)
		require.Equal(t, test.ok, ok, test.text)
		require.Equal(t, test.expected, company, test.text)
	}
}

func TestCollect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	c := New(Config{Url: server.URL}, scrapeutil.Config{}, &telemetry.Recorder{})
	raws, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 4)
}
