// Package interviewbit collects the coding question list of InterviewBit.
// The list is lazily loaded while scrolling so it is rendered in a browser.
package interviewbit

import (
	"context"
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
	report_scroll_round = "scroll.round"
	report_scroll_limit = "scroll.limit"
)

const (
	Name              = "interviewbit"
	FilePrefix        = "interviewbit_full"
	Source            = "InterviewBit"
	DefaultUrl        = "https://www.interviewbit.com/coding-interview-questions/"
	MultipleCompanies = "Multiple Companies"
)

const tileSelector = ".pl-problem-tile"

// company logos are sprites with an `ib-<slug>` class
var companySlugs = map[string]string{
	"bloomberg": "Bloomberg", "google": "Google", "amazon": "Amazon",
	"microsoft": "Microsoft", "facebook": "Facebook", "meta": "Meta",
	"apple": "Apple", "netflix": "Netflix", "adobe": "Adobe",
	"uber": "Uber", "linkedin": "LinkedIn", "twitter": "Twitter",
	"goldman-sachs": "Goldman Sachs", "goldman": "Goldman Sachs",
	"goldmann-sachs": "Goldman Sachs", "morgan-stanley": "Morgan Stanley",
	"morgan": "Morgan Stanley", "salesforce": "Salesforce", "oracle": "Oracle",
	"vmware": "VMware", "cisco": "Cisco", "paypal": "PayPal",
	"ebay": "eBay", "airbnb": "Airbnb", "flipkart": "Flipkart",
	"walmart": "Walmart", "yahoo": "Yahoo", "samsung": "Samsung",
	"intel": "Intel", "tesla": "Tesla", "de-shaw": "DE Shaw",
	"directi": "Directi", "tower-research-capital": "Tower Research",
	"epic-systems": "Epic Systems", "nobrokercom": "NoBroker",
	"lyft": "Lyft", "intuit": "Intuit", "nvidia": "NVIDIA",
	"qualcomm": "Qualcomm", "visa": "Visa", "jpmorgan": "JPMorgan",
	"spotify": "Spotify", "stripe": "Stripe", "snowflake": "Snowflake",
}

type Config struct {
	Url string `json:"url"`
	// upper bound on scroll rounds
	MaxScrolls int `json:"max_scrolls"`
	// rounds without new tiles before the list is considered complete
	StableRounds int `json:"stable_rounds"`
	// wait after each scroll for new tiles to load, defaults to 3000,
	// negative disables the wait
	ScrollWaitMillis int `json:"scroll_wait_ms"`
}

type Collector struct {
	opener browser.Opener
	config Config
	tel    telemetry.API
}

func New(config Config, opener browser.Opener, tel telemetry.API) *Collector {
	if config.Url == "" {
		config.Url = DefaultUrl
	}
	if config.MaxScrolls <= 0 {
		config.MaxScrolls = 50
	}
	if config.StableRounds <= 0 {
		config.StableRounds = 5
	}
	switch {
	case config.ScrollWaitMillis == 0:
		config.ScrollWaitMillis = 3000
	case config.ScrollWaitMillis < 0:
		config.ScrollWaitMillis = 0
	}
	return &Collector{
		opener: opener,
		config: config,
		tel:    telemetry.NewScopedAPI(Name, tel),
	}
}

func (c *Collector) Name() string {
	return Name
}

func (c *Collector) FilePrefix() string {
	return FilePrefix
}

// scrollUntilStable scrolls until the tile count stops changing for the
// configured number of rounds.
func (c *Collector) scrollUntilStable(ctx context.Context, page browser.Page) error {
	wait := time.Duration(c.config.ScrollWaitMillis) * time.Millisecond
	previous := 0
	unchanged := 0
	for round := 0; round < c.config.MaxScrolls; round++ {
		err := page.ScrollToBottom()
		if err != nil {
			return err
		}
		err = scrapeutil.Pause(ctx, wait)
		if err != nil {
			return err
		}

		count, err := page.Count(tileSelector)
		if err != nil {
			return err
		}
		c.tel.ReportDebug(report_scroll_round, round, count)

		if count == previous {
			unchanged++
			if unchanged >= c.config.StableRounds {
				return nil
			}
			continue
		}
		unchanged = 0
		previous = count
	}
	c.tel.ReportWarning(report_scroll_limit, c.config.MaxScrolls, previous)
	return nil
}

func (c *Collector) Collect(ctx context.Context) ([]question.Raw, error) {
	page, err := c.opener.Open(ctx, c.config.Url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	err = c.scrollUntilStable(ctx, page)
	if err != nil {
		return nil, err
	}
	body, err := page.HTML()
	if err != nil {
		return nil, err
	}
	doc, err := htmlutil.Document(body)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(c.config.Url)
	if err != nil {
		return nil, err
	}
	return Parse(doc, base), nil
}

func difficultyOf(tile *goquery.Selection) string {
	text := strings.ToLower(tile.Find("[class*='difficulty-level']").First().Text())
	switch {
	case strings.Contains(text, "easy"):
		return question.DifficultyEasy
	case strings.Contains(text, "medium"):
		return question.DifficultyMedium
	case strings.Contains(text, "hard"):
		return question.DifficultyHard
	}
	return question.DifficultyNotSpecified
}

// companiesOf maps the sprite classes of a tile to company names in the
// order they appear.
func companiesOf(tile *goquery.Selection) []string {
	var out []string
	seen := map[string]struct{}{}
	tile.Find("[class*='ib-company-sprites']").Each(func(_ int, sprite *goquery.Selection) {
		for _, class := range strings.Fields(sprite.AttrOr("class", "")) {
			if class == "ib-company-sprites" || !strings.HasPrefix(class, "ib-") {
				continue
			}
			name, ok := companySlugs[strings.TrimPrefix(class, "ib-")]
			if !ok {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	})
	if len(out) == 0 {
		return []string{MultipleCompanies}
	}
	return out
}

// Parse emits one record per (question, company) pair of every problem
// tile. Titles seen in an earlier tile are skipped.
func Parse(doc *goquery.Document, base *url.URL) []question.Raw {
	var out []question.Raw
	processed := map[string]struct{}{}

	doc.Find(tileSelector).Each(func(_ int, tile *goquery.Selection) {
		link := tile.Find(".pl-problem-tile__statement").First()
		if link.Length() == 0 {
			return
		}
		title := htmlutil.CleanText(link.Nodes[0])
		if title == "" {
			return
		}
		if _, ok := processed[title]; ok {
			return
		}
		processed[title] = struct{}{}

		href := link.AttrOr("href", "")
		if ref, err := url.Parse(href); err == nil && href != "" {
			href = base.ResolveReference(ref).String()
		}

		difficulty := difficultyOf(tile)
		for _, company := range companiesOf(tile) {
			out = append(out, question.Raw{
				question.FieldCompanyName:       company,
				question.FieldRoleName:          question.DefaultRoleName,
				question.FieldInterviewQuestion: title,
				question.FieldDifficulty:        difficulty,
				question.FieldQuestionURL:       href,
				question.FieldSource:            Source,
			})
		}
	})
	return out
}
