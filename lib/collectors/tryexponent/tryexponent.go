// Package tryexponent collects the question bank of TryExponent, one
// browser-rendered listing page at a time.
package tryexponent

import (
	"context"
	"fmt"
	"interview-harvest/lib/browser"
	"interview-harvest/lib/htmlutil"
	"interview-harvest/lib/question"
	"interview-harvest/lib/scrapeutil"
	"interview-harvest/lib/telemetry"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_page_failed = "page.failed"
	report_page_parsed = "page.parsed"
)

const (
	Name              = "tryexponent"
	FilePrefix        = "tryexponent"
	Source            = "TryExponent"
	DefaultUrl        = "https://www.tryexponent.com/questions"
	MultipleCompanies = "Multiple Companies"
)

type Config struct {
	Url      string `json:"url"`
	MaxPages int    `json:"max_pages"`
	// pause between pages, defaults to 2000, negative disables it
	PageDelayMillis int `json:"page_delay_ms"`
}

type Collector struct {
	opener browser.Opener
	config Config
	delay  time.Duration
	tel    telemetry.API
}

func New(config Config, opener browser.Opener, tel telemetry.API) *Collector {
	if config.Url == "" {
		config.Url = DefaultUrl
	}
	if config.MaxPages <= 0 {
		config.MaxPages = 221
	}
	delay := 2 * time.Second
	switch {
	case config.PageDelayMillis > 0:
		delay = time.Duration(config.PageDelayMillis) * time.Millisecond
	case config.PageDelayMillis < 0:
		delay = 0
	}
	return &Collector{
		opener: opener,
		config: config,
		delay:  delay,
		tel:    telemetry.NewScopedAPI(Name, tel),
	}
}

func (c *Collector) Name() string {
	return Name
}

func (c *Collector) FilePrefix() string {
	return FilePrefix
}

func (c *Collector) pageUrl(n int) (*url.URL, error) {
	u, err := url.Parse(c.config.Url)
	if err != nil {
		return nil, err
	}
	query := u.Query()
	query.Set("page", fmt.Sprint(n))
	u.RawQuery = query.Encode()
	return u, nil
}

func (c *Collector) page(ctx context.Context, n int) ([]question.Raw, error) {
	u, err := c.pageUrl(n)
	if err != nil {
		return nil, err
	}
	page, err := c.opener.Open(ctx, u.String())
	if err != nil {
		return nil, err
	}
	defer page.Close()

	body, err := page.HTML()
	if err != nil {
		return nil, err
	}
	doc, err := htmlutil.Document(body)
	if err != nil {
		return nil, err
	}
	return Parse(doc, u), nil
}

// Collect walks the listing pages in order. A page that fails to load is
// reported and skipped.
func (c *Collector) Collect(ctx context.Context) ([]question.Raw, error) {
	var out []question.Raw
	for n := 1; n <= c.config.MaxPages; n++ {
		if n > 1 {
			err := scrapeutil.Pause(ctx, c.delay)
			if err != nil {
				return nil, err
			}
		}

		raws, err := c.page(ctx, n)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			c.tel.ReportBroken(report_page_failed, n, err)
			continue
		}
		c.tel.ReportDebug(report_page_parsed, n, len(raws))
		out = append(out, raws...)
	}
	return out, nil
}

func isQuestionHref(href string) bool {
	return strings.Contains(href, "/questions/") &&
		!strings.Contains(href, "?company=") &&
		!strings.Contains(href, "/questions?")
}

func isCompanyHref(href string) bool {
	return strings.Contains(href, "?company=") || strings.Contains(href, "&company=")
}

// roleOf detects the role a listing item is tagged with.
func roleOf(text string) string {
	switch {
	case strings.Contains(text, "Product Manager"):
		return "Product Manager"
	case strings.Contains(text, "Machine Learning Engineer"), strings.Contains(text, "ML Engineer"):
		return "ML Engineer"
	case strings.Contains(text, "Technical Program Manager"), strings.Contains(text, "TPM"):
		return "Technical Program Manager"
	}
	return question.DefaultRoleName
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// Parse turns every list item that links to a question into one record
// per company it is tagged with.
func Parse(doc *goquery.Document, base *url.URL) []question.Raw {
	var out []question.Raw
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		anchors := li.Find("a")

		var link *goquery.Selection
		anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if isQuestionHref(resolve(base, a.AttrOr("href", ""))) {
				link = a
				return false
			}
			return true
		})
		if link == nil {
			return
		}

		title := htmlutil.CleanText(link.Nodes[0])
		if len([]rune(title)) < 10 {
			return
		}
		href := resolve(base, link.AttrOr("href", ""))

		var companies []string
		anchors.Each(func(_ int, a *goquery.Selection) {
			if !isCompanyHref(resolve(base, a.AttrOr("href", ""))) {
				return
			}
			name := htmlutil.CleanText(a.Nodes[0])
			if name != "" {
				companies = append(companies, name)
			}
		})
		if len(companies) == 0 {
			companies = []string{MultipleCompanies}
		}

		role := roleOf(li.Text())
		for _, company := range companies {
			out = append(out, question.Raw{
				question.FieldCompanyName:       company,
				question.FieldRoleName:          role,
				question.FieldInterviewQuestion: title,
				question.FieldDifficulty:        question.DifficultyNotSpecified,
				question.FieldQuestionURL:       href,
				question.FieldSource:            Source,
			})
		}
	})
	return out
}
