// Package enrich derives presentation metadata for a topic from its
// representative title. Every function is pure and deterministic.
package enrich

import (
	"regexp"
	"strings"

	"github.com/abelbrown/topicradar/internal/model"
)

// rule maps a category to the lower-case substrings that select it.
type rule struct {
	category model.Category
	keywords []string
}

// rules are checked in order; the first rule with a matching keyword wins.
// Matching is plain substring containment, so short keywords such as "ai"
// also match inside longer words.
var rules = []rule{
	{model.CategoryAI, []string{
		"ai", "artificial intelligence", "gpt", "chatgpt", "llm", "openai", "anthropic",
		"google gemini", "deepseek", "midjourney", "autogen", "rag", "agent",
	}},
	{model.CategoryMoneyPsychology, []string{
		"psychology", "behavior", "dopamine", "habits", "mindset", "fear", "greed",
		"bias", "motivation", "discipline", "framing", "decision", "heuristic",
	}},
	{model.CategoryWealthStrategy, []string{
		"invest", "investment", "portfolio", "etf", "stock", "dividend", "real estate",
		"side hustle", "income", "tax", "retirement", "401k", "roth", "budget",
		"saving", "high yield", "index fund", "asset allocation",
	}},
	{model.CategoryBreakingNews, []string{
		"breaking", "announces", "launches", "acquires", "bankruptcy", "regulation",
		"lawsuit", "interest rate", "cpi", "fed", "jobs report", "inflation",
		"market crash", "surge", "plunge",
	}},
}

var (
	moneyFallback = regexp.MustCompile(`money|finance|wealth|invest|stock|portfolio|retire|budget`)
	aiFallback    = regexp.MustCompile(`ai|gpt|chatgpt|llm|openai`)
)

// InferCategory files a title under the first matching category rule,
// falling back to money and AI token checks, then Breaking News.
func InferCategory(title string) model.Category {
	t := strings.ToLower(title)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(t, kw) {
				return r.category
			}
		}
	}

	switch {
	case moneyFallback.MatchString(t):
		return model.CategoryWealthStrategy
	case aiFallback.MatchString(t):
		return model.CategoryAI
	default:
		return model.CategoryBreakingNews
	}
}
