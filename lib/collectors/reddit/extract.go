package reddit

import (
	"regexp"
	"strings"
)

type knownCompany struct {
	key  string
	name string
}

// checked in order, the first company mentioned wins
var knownCompanies = []knownCompany{
	{"google", "Google"}, {"amazon", "Amazon"}, {"microsoft", "Microsoft"},
	{"facebook", "Facebook"}, {"meta", "Meta"}, {"apple", "Apple"},
	{"netflix", "Netflix"}, {"adobe", "Adobe"}, {"uber", "Uber"},
	{"lyft", "Lyft"}, {"airbnb", "Airbnb"}, {"linkedin", "LinkedIn"},
	{"twitter", "Twitter"}, {"tesla", "Tesla"}, {"spacex", "SpaceX"},
	{"stripe", "Stripe"}, {"square", "Square"}, {"bloomberg", "Bloomberg"},
	{"goldman sachs", "Goldman Sachs"}, {"morgan stanley", "Morgan Stanley"},
	{"jpmorgan", "JPMorgan"}, {"oracle", "Oracle"}, {"salesforce", "Salesforce"},
	{"ibm", "IBM"}, {"cisco", "Cisco"}, {"intel", "Intel"}, {"nvidia", "NVIDIA"},
	{"amd", "AMD"}, {"qualcomm", "Qualcomm"}, {"paypal", "PayPal"},
	{"visa", "Visa"}, {"mastercard", "Mastercard"}, {"doordash", "DoorDash"},
	{"instacart", "Instacart"}, {"robinhood", "Robinhood"}, {"coinbase", "Coinbase"},
	{"databricks", "Databricks"}, {"snowflake", "Snowflake"}, {"mongodb", "MongoDB"},
	{"shopify", "Shopify"}, {"spotify", "Spotify"}, {"pinterest", "Pinterest"},
	{"snap", "Snapchat"}, {"roblox", "Roblox"}, {"epic games", "Epic Games"},
	{"riot games", "Riot Games"}, {"twitch", "Twitch"}, {"discord", "Discord"},
	{"plaid", "Plaid"}, {"ramp", "Ramp"}, {"brex", "Brex"}, {"chime", "Chime"},
	{"affirm", "Affirm"}, {"klarna", "Klarna"}, {"figma", "Figma"},
	{"notion", "Notion"}, {"airtable", "Airtable"}, {"asana", "Asana"},
}

var interviewContext = []string{"interview", "asked", "offered", "onsite", "phone screen"}

// ExtractCompany returns the known company a post is about. Posts that do
// not mention a known company in an interview context are skipped.
func ExtractCompany(title, body string) (string, bool) {
	combined := strings.ToLower(title + " " + body)

	inContext := false
	for _, word := range interviewContext {
		if strings.Contains(combined, word) {
			inContext = true
			break
		}
	}
	if !inContext {
		return "", false
	}

	for _, c := range knownCompanies {
		if strings.Contains(combined, c.key) {
			return c.name, true
		}
	}
	return "", false
}

var (
	sentenceSplit  = regexp.MustCompile(`[.!?\n]+`)
	questionPrefix = regexp.MustCompile(`(?i)^(Q:|Question:)\s*`)
)

var questionMarkers = []string{"how to", "how would", "what is"}

var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(should i|would you|is it worth|anyone else|does anyone|has anyone)\b`),
	regexp.MustCompile(`\b(advice|tips|suggestions|recommend|opinion|thoughts)\b`),
	regexp.MustCompile(`\b(job market|career|salary|offer|negotiate|quit|switch)\b`),
	regexp.MustCompile(`\b(resume|cv|linkedin|apply|application)\b`),
	regexp.MustCompile(`\b(imposter|burnout|toxic|manager|team|culture)\b`),
}

var technicalKeywords = []string{
	"array", "list", "tree", "graph", "hash", "stack", "queue",
	"heap", "trie", "matrix", "linked list",
	"sort", "search", "binary search", "dfs", "bfs", "dynamic programming",
	"greedy", "backtrack", "recursion", "iterate",
	"implement", "design", "optimize", "reverse", "merge", "find",
	"calculate", "compute", "solve", "write a function", "write code",
	"time complexity", "space complexity", "algorithm", "data structure",
	"leetcode", "coding problem", "technical question",
	"system design", "architecture", "scalability", "database design",
	"api design", "cache", "load balancer", "microservice",
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// ExtractQuestions pulls technical interview questions out of a post. The
// sentence splitter drops the trailing `?`, so only sentences phrased as
// questions survive.
func ExtractQuestions(title, body string) []string {
	var out []string
	for _, sentence := range sentenceSplit.Split(title+"\n"+body, -1) {
		sentence = strings.TrimSpace(sentence)
		lower := strings.ToLower(sentence)

		if !strings.Contains(sentence, "?") && !containsAny(lower, questionMarkers) {
			continue
		}
		length := len([]rune(sentence))
		if length < 20 || length > 300 {
			continue
		}

		skip := false
		for _, p := range skipPatterns {
			if p.MatchString(lower) {
				skip = true
				break
			}
		}
		if skip || !containsAny(lower, technicalKeywords) {
			continue
		}

		out = append(out, questionPrefix.ReplaceAllString(sentence, ""))
	}
	return out
}
