package enrich

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abelbrown/topicradar/internal/model"
)

var whyItMatters = map[model.Category]string{
	model.CategoryAI:              "Signals the next wave of AI tools impacting how people plan, earn, and invest.",
	model.CategoryMoneyPsychology: "Touches core behavioral levers that determine whether systems stick long-term.",
	model.CategoryWealthStrategy:  "Actionable strategy viewers can operationalize with systems, not hacks.",
	model.CategoryBreakingNews:    "Immediate implications for markets, consumer behavior, and system design.",
}

// WhyItMatters returns the rationale sentence for a category.
func WhyItMatters(c model.Category) string {
	if s, ok := whyItMatters[c]; ok {
		return s
	}
	return whyItMatters[model.CategoryBreakingNews]
}

type angle struct {
	pattern *regexp.Regexp
	text    string
}

// angles are checked in order against the title.
var angles = []angle{
	{regexp.MustCompile(`(?i)tax|irs|401k|roth|retire|account`),
		"Systematize tax-advantaged flows with AI-powered checklists."},
	{regexp.MustCompile(`(?i)budget|habit|dopamine|discipline`),
		"Turn psychology into daily automations that remove willpower."},
	{regexp.MustCompile(`(?i)etf|index|portfolio|rebalance|dividend`),
		"Evidence-based portfolio rules with AI for monitoring and alerts."},
	{regexp.MustCompile(`(?i)chatgpt|gpt|agent|automation|zapier|notion|excel|sheet`),
		"Practical build: agents that read, decide, and act on money tasks."},
}

// ContentAngle picks an angle by keyword group, then by category.
func ContentAngle(title string, c model.Category) string {
	for _, a := range angles {
		if a.pattern.MatchString(title) {
			return a.text
		}
	}
	if c == model.CategoryAI {
		return "Translate AI capability into compounding money systems."
	}
	return "Convert news into durable wealth processes."
}

var newsPrefix = regexp.MustCompile(`(?i)^(breaking:|news:)`)

// SuggestedTitle wraps the title, minus any "breaking:"/"news:" prefix,
// in the category's headline template.
func SuggestedTitle(title string, c model.Category) string {
	clean := strings.TrimSpace(newsPrefix.ReplaceAllString(title, ""))
	switch c {
	case model.CategoryAI:
		return fmt.Sprintf("I Built an AI System That %s", clean)
	case model.CategoryMoneyPsychology:
		return fmt.Sprintf("The Psychology System Behind: %s", clean)
	case model.CategoryWealthStrategy:
		return fmt.Sprintf("The Wealth System: %s", clean)
	default:
		return fmt.Sprintf("Urgent: %s (What Your System Must Change)", clean)
	}
}

// ThumbnailHooks returns the hook phrases for a category.
func ThumbnailHooks(c model.Category) []string {
	last := "KPI Dashboard"
	if c == model.CategoryBreakingNews {
		last = "Timer + Urgency"
	}
	return unique([]string{
		"Before vs After System",
		"3-Step Flow Diagram",
		"Red Flags vs Green Flags",
		"AI Agent in Action",
		last,
	})
}

var (
	tokenSep      = regexp.MustCompile(`[^a-z0-9]+`)
	fixedKeywords = []string{"ai personal finance", "money psychology", "wealth building", "financial freedom"}
)

const (
	titleKeywords = 6
	maxKeywords   = 12
)

// SEOKeywords returns up to six title tokens followed by the fixed domain
// keywords, de-duplicated and capped at twelve.
func SEOKeywords(title string) []string {
	var tokens []string
	for _, tok := range tokenSep.Split(strings.ToLower(title), -1) {
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
		if len(tokens) == titleKeywords {
			break
		}
	}

	kw := unique(append(tokens, fixedKeywords...))
	if len(kw) > maxKeywords {
		kw = kw[:maxKeywords]
	}
	return kw
}

func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
