// Package leetcode collects the company-wise LeetCode question lists
// published as a GitHub dataset. Each company is a top level folder
// holding an all.csv file.
package leetcode

import (
	"context"
	"fmt"
	"interview-harvest/lib/csvsink"
	"interview-harvest/lib/question"
	"interview-harvest/lib/scrapeutil"
	"interview-harvest/lib/telemetry"
	"interview-harvest/lib/textutil"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	report_folders_fallback = "folders.fallback"
	report_folder_failed    = "folder.failed"
	report_folders_result   = "folders.result"
)

const (
	Name       = "leetcode"
	FilePrefix = "github_leetcode"
	Source     = "GitHub - LeetCode Company-wise"
)

const (
	DefaultContentsUrl = "https://api.github.com/repos/snehasishroy/leetcode-companywise-interview-questions/contents"
	DefaultPageUrl     = "https://github.com/snehasishroy/leetcode-companywise-interview-questions"
	DefaultRawUrl      = "https://raw.githubusercontent.com/snehasishroy/leetcode-companywise-interview-questions/master"
)

// FallbackFolders is used when neither the contents API nor the repository
// page can be read.
var FallbackFolders = []string{"Google", "Amazon", "Microsoft", "Facebook", "Apple"}

type Config struct {
	ContentsUrl string `json:"contents_url"`
	PageUrl     string `json:"page_url"`
	RawUrl      string `json:"raw_url"`
	// limits how many company folders are downloaded, 0 means all
	MaxCompanies int `json:"max_companies"`
}

type Collector struct {
	http   *resty.Client
	config Config
	delay  time.Duration
	tel    telemetry.API
}

func New(config Config, httpConfig scrapeutil.Config, tel telemetry.API) *Collector {
	if config.ContentsUrl == "" {
		config.ContentsUrl = DefaultContentsUrl
	}
	if config.PageUrl == "" {
		config.PageUrl = DefaultPageUrl
	}
	if config.RawUrl == "" {
		config.RawUrl = DefaultRawUrl
	}

	tel = telemetry.NewScopedAPI(Name, tel)
	return &Collector{
		http:   scrapeutil.NewClient(Name, httpConfig, tel),
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

type contentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

var folderLinkRegex = regexp.MustCompile(`title="([^"]+)" class="Link--primary"`)

var ignoredEntries = []string{".github", "README.md"}

// parseFolderPage extracts folder names from the rendered repository page.
func parseFolderPage(body string) []string {
	var out []string
	for _, match := range folderLinkRegex.FindAllStringSubmatch(body, -1) {
		if slices.Contains(ignoredEntries, match[1]) {
			continue
		}
		out = append(out, match[1])
	}
	return out
}

// folders lists the company folders of the dataset. A rate limited API
// falls back to the repository page, then to a fixed list.
func (c *Collector) folders(ctx context.Context) ([]string, error) {
	var entries []contentEntry
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("accept", "application/vnd.github.v3+json").
		SetResult(&entries).
		Get(c.config.ContentsUrl)
	if err != nil {
		return nil, err
	}

	switch res.StatusCode() {
	case http.StatusOK:
		var out []string
		for _, e := range entries {
			if e.Type == "dir" {
				out = append(out, e.Name)
			}
		}
		return out, nil
	case http.StatusForbidden:
	default:
		return nil, fmt.Errorf("list folders: unexpected status %d", res.StatusCode())
	}

	c.tel.ReportWarning(report_folders_fallback, "page")
	page, err := c.http.R().SetContext(ctx).Get(c.config.PageUrl)
	if err == nil && page.StatusCode() == http.StatusOK {
		return parseFolderPage(page.String()), nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.tel.ReportWarning(report_folders_fallback, "fixed")
	return FallbackFolders, nil
}

// parseCompanyCsv converts one company's all.csv into raw records.
func parseCompanyCsv(company, body string) ([]question.Raw, error) {
	rows, err := csvsink.Read(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	var out []question.Raw
	for _, row := range rows {
		title := strings.TrimSpace(row["Title"])
		if title == "" || title == "nan" || len([]rune(title)) < 3 {
			continue
		}
		link := strings.TrimSpace(row["URL"])
		if link == "nan" {
			link = ""
		}
		out = append(out, question.Raw{
			question.FieldCompanyName:       company,
			question.FieldRoleName:          question.DefaultRoleName,
			question.FieldInterviewQuestion: title,
			question.FieldDifficulty:        question.NormalizeDifficulty(row["Difficulty"]),
			question.FieldQuestionURL:       link,
			question.FieldSource:            Source,
		})
	}
	return out, nil
}

func (c *Collector) company(ctx context.Context, folder string) ([]question.Raw, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%s/all.csv", c.config.RawUrl, folder))
	if err != nil {
		return nil, err
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("no all.csv")
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode())
	}
	return parseCompanyCsv(textutil.FolderToName(folder), res.String())
}

// Collect downloads every company folder. A folder that cannot be read is
// counted as failed and skipped.
func (c *Collector) Collect(ctx context.Context) ([]question.Raw, error) {
	folders, err := c.folders(ctx)
	if err != nil {
		return nil, err
	}
	if c.config.MaxCompanies > 0 && len(folders) > c.config.MaxCompanies {
		folders = folders[:c.config.MaxCompanies]
	}

	var out []question.Raw
	failed := 0
	for i, folder := range folders {
		if i > 0 {
			err := scrapeutil.Pause(ctx, c.delay)
			if err != nil {
				return nil, err
			}
		}

		raws, err := c.company(ctx, folder)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			failed++
			c.tel.ReportWarning(report_folder_failed, folder, err)
			continue
		}
		out = append(out, raws...)
	}

	c.tel.ReportDebug(report_folders_result, len(folders)-failed, failed)
	return out, nil
}
