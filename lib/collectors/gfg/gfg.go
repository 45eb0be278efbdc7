// Package gfg collects the company-wise coding question list published on
// GeeksforGeeks.
package gfg

import (
	"context"
	"fmt"
	"interview-harvest/lib/htmlutil"
	"interview-harvest/lib/question"
	"interview-harvest/lib/scrapeutil"
	"interview-harvest/lib/telemetry"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("interview-harvest/lib/collectors/gfg")

const report_parse_company = "parse.company"

const (
	Name       = "gfg"
	FilePrefix = "gfg_companywise"
	Source     = "GeeksforGeeks"
	DefaultUrl = "https://www.geeksforgeeks.org/blogs/must-coding-questions-company-wise/"
)

type Config struct {
	Url string `json:"url"`
}

type Collector struct {
	http   *resty.Client
	config Config
	tel    telemetry.API
}

func New(config Config, httpConfig scrapeutil.Config, tel telemetry.API) *Collector {
	if config.Url == "" {
		config.Url = DefaultUrl
	}
	tel = telemetry.NewScopedAPI(Name, tel)
	return &Collector{
		http:   scrapeutil.NewClient(Name, httpConfig, tel),
		config: config,
		tel:    tel,
	}
}

func (c *Collector) Name() string {
	return Name
}

func (c *Collector) FilePrefix() string {
	return FilePrefix
}

func (c *Collector) Collect(ctx context.Context) ([]question.Raw, error) {
	res, err := c.http.R().SetContext(ctx).Get(c.config.Url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode())
	}
	doc, err := htmlutil.Document(res.String())
	if err != nil {
		return nil, err
	}
	return Parse(ctx, doc, c.tel), nil
}

var companyHeading = regexp.MustCompile(`^([A-Za-z\s]+)\s+Interview`)

var difficultyLabels = map[string]string{
	"Easy:":   question.DifficultyEasy,
	"Medium:": question.DifficultyMedium,
	"Hard:":   question.DifficultyHard,
}

// footer and navigation links share the content area on some layouts
var excludeKeywords = []string{
	"about", "contact", "privacy", "terms", "cookie",
	"newsletter", "subscribe", "login", "sign up", "careers",
	"advertise", "write for us", "explore more", "corporate",
	"legal", "sitemap", "help", "support", "faq",
}

func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, selector := range []string{"article", "div.entry-content", "main"} {
		found := doc.Find(selector).First()
		if found.Length() > 0 {
			return found
		}
	}
	doc.Find("footer, header, nav, aside").Remove()
	return doc.Selection
}

// companyFromHeading returns the company a heading such as
// `Amazon Interview Coding Questions:` introduces.
func companyFromHeading(text string) (string, bool) {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "interview") {
		return "", false
	}
	if !strings.Contains(lower, "coding") && !strings.Contains(lower, "questions") {
		return "", false
	}
	if len([]rune(text)) >= 100 {
		return "", false
	}
	match := companyHeading.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return strings.TrimSpace(match[1]), true
}

func isQuestionLink(a htmlutil.Anchor) bool {
	length := len([]rune(a.Name))
	if length <= 5 || length >= 300 {
		return false
	}
	href := strings.ToLower(a.Href)
	if !strings.Contains(href, "geeksforgeeks.org") {
		return false
	}
	if !strings.Contains(href, "/problems/") &&
		!strings.Contains(href, "/practice/") &&
		!strings.HasSuffix(a.Name, "?") {
		return false
	}
	name := strings.ToLower(a.Name)
	for _, keyword := range excludeKeywords {
		if strings.Contains(name, keyword) || strings.Contains(href, keyword) {
			return false
		}
	}
	return true
}

// Parse walks the headings, paragraphs and lists of the page in document
// order. A company heading opens a section, a difficulty label sets the
// difficulty of the links that follow it.
func Parse(ctx context.Context, doc *goquery.Document, tel telemetry.API) []question.Raw {
	ctx, span := tracer.Start(ctx, "Parse")
	defer span.End()

	var out []question.Raw
	company := ""
	difficulty := question.DifficultyNotSpecified

	contentRoot(doc).Find("h2, h3, h4, h5, p, ul, li, strong").Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())

		if name, ok := companyFromHeading(text); ok {
			company = name
			difficulty = question.DifficultyNotSpecified
			tel.ReportDebug(report_parse_company, company)
		}
		if label, ok := difficultyLabels[text]; ok {
			difficulty = label
		}
		if company == "" {
			return
		}

		for _, a := range htmlutil.GetAnchors(ctx, el.Find("a[href]")) {
			if !isQuestionLink(a) {
				continue
			}
			out = append(out, question.Raw{
				question.FieldCompanyName:       company,
				question.FieldRoleName:          question.DefaultRoleName,
				question.FieldInterviewQuestion: a.Name,
				question.FieldDifficulty:        difficulty,
				question.FieldQuestionURL:       a.Href,
				question.FieldSource:            Source,
			})
		}
	})
	return out
}
