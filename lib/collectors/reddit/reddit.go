// Package reddit collects technical interview questions from reddit's
// search API.
package reddit

import (
	"context"
	"fmt"
	"interview-harvest/lib/question"
	"interview-harvest/lib/scrapeutil"
	"interview-harvest/lib/telemetry"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	report_search_failed = "search.failed"
	report_search_found  = "search.found"
)

const (
	Name       = "reddit"
	FilePrefix = "reddit_technical"
)

const (
	DefaultBaseUrl   = "https://www.reddit.com"
	DefaultUserAgent = "interview-harvest/1.0"
	DefaultLimit     = 50
)

var DefaultSubreddits = []string{"csinterviewproblems", "leetcode", "ExperiencedDevs"}

var DefaultQueries = []string{
	"asked to implement",
	"asked to design",
	"asked to code",
	"technical question",
	"algorithm question",
	"coding question asked",
}

type Config struct {
	BaseUrl    string   `json:"base_url"`
	Subreddits []string `json:"subreddits"`
	Queries    []string `json:"queries"`
	Limit      int      `json:"limit"`
}

type post struct {
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Permalink string `json:"permalink"`
}

type searchResponse struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type Collector struct {
	http   *resty.Client
	config Config
	delay  time.Duration
	tel    telemetry.API
}

func New(config Config, httpConfig scrapeutil.Config, tel telemetry.API) *Collector {
	if config.BaseUrl == "" {
		config.BaseUrl = DefaultBaseUrl
	}
	if len(config.Subreddits) == 0 {
		config.Subreddits = DefaultSubreddits
	}
	if len(config.Queries) == 0 {
		config.Queries = DefaultQueries
	}
	if config.Limit <= 0 {
		config.Limit = DefaultLimit
	}
	// reddit rejects browser-like agents from scripts
	if httpConfig.UserAgent == "" {
		httpConfig.UserAgent = DefaultUserAgent
	}

	tel = telemetry.NewScopedAPI(Name, tel)
	client := scrapeutil.NewClient(Name, httpConfig, tel)
	client.SetBaseURL(config.BaseUrl)

	return &Collector{
		http:   client,
		config: config,
		delay:  httpConfig.Delay(),
		tel:    tel,
	}
}

func (c *Collector) Name() string {
	return Name
}

func (c *Collector) FilePrefix() string {
	return FilePrefix
}

func (c *Collector) search(ctx context.Context, subreddit, query string) ([]post, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           query,
			"restrict_sr": "true",
			"sort":        "relevance",
			"limit":       strconv.Itoa(c.config.Limit),
			"t":           "all",
		}).
		SetResult(&searchResponse{}).
		Get(fmt.Sprintf("/r/%s/search.json", subreddit))
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode())
	}

	result := res.Result().(*searchResponse)
	posts := make([]post, len(result.Data.Children))
	for i, child := range result.Data.Children {
		posts[i] = child.Data
	}
	return posts, nil
}

// records turns the posts of one subreddit into raw records.
func records(subreddit string, posts []post) []question.Raw {
	var out []question.Raw
	for _, p := range posts {
		company, ok := ExtractCompany(p.Title, p.Selftext)
		if !ok {
			continue
		}
		for _, q := range ExtractQuestions(p.Title, p.Selftext) {
			out = append(out, question.Raw{
				question.FieldCompanyName:       company,
				question.FieldRoleName:          question.DefaultRoleName,
				question.FieldInterviewQuestion: q,
				question.FieldDifficulty:        question.DifficultyNotSpecified,
				question.FieldQuestionURL:       "https://reddit.com" + p.Permalink,
				question.FieldSource:            "Reddit - r/" + subreddit,
			})
		}
	}
	return out
}

// Collect searches every configured subreddit for every query. A failed
// search is reported and skipped.
func (c *Collector) Collect(ctx context.Context) ([]question.Raw, error) {
	var out []question.Raw
	for _, subreddit := range c.config.Subreddits {
		for _, query := range c.config.Queries {
			posts, err := c.search(ctx, subreddit, query)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if err != nil {
				c.tel.ReportBroken(report_search_failed, subreddit, query, err)
			} else {
				found := records(subreddit, posts)
				c.tel.ReportDebug(report_search_found, subreddit, query, len(found))
				out = append(out, found...)
			}

			err = scrapeutil.Pause(ctx, c.delay)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
