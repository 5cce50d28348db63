package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abelbrown/topicradar/internal/model"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		title string
		want  model.Category
	}{
		{"AI Agents Transform Retirement Planning - TechCrunch", model.CategoryAI},
		{"OpenAI ships a new model", model.CategoryAI},
		{"The dopamine trap of day trading", model.CategoryMoneyPsychology},
		{"How fear drives selling", model.CategoryMoneyPsychology},
		{"Best ETF for 2024", model.CategoryWealthStrategy},
		{"Roth conversion guide", model.CategoryWealthStrategy},
		{"Fed holds steady", model.CategoryBreakingNews},
		{"Bitcoin plunge wipes out longs", model.CategoryBreakingNews},
		{"Wealth of nations", model.CategoryWealthStrategy},
		{"Quiet morning on the river", model.CategoryBreakingNews},
		{"", model.CategoryBreakingNews},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferCategory(tt.title), tt.title)
	}
}

func TestInferCategorySubstringMatch(t *testing.T) {
	// "ai" inside "paint" is enough to select AI.
	assert.Equal(t, model.CategoryAI, InferCategory("Fresh paint on the wall"))
	// AI rule is checked before Wealth Strategy.
	assert.Equal(t, model.CategoryAI, InferCategory("LLM picks stock winners"))
}

func TestWhyItMatters(t *testing.T) {
	assert.Equal(t, "Signals the next wave of AI tools impacting how people plan, earn, and invest.", WhyItMatters(model.CategoryAI))
	assert.Equal(t, "Immediate implications for markets, consumer behavior, and system design.", WhyItMatters(model.CategoryBreakingNews))
	assert.Equal(t, WhyItMatters(model.CategoryBreakingNews), WhyItMatters("Unknown"))
}

func TestContentAngle(t *testing.T) {
	tests := []struct {
		title string
		cat   model.Category
		want  string
	}{
		{"Max out your 401k", model.CategoryWealthStrategy, "Systematize tax-advantaged flows with AI-powered checklists."},
		{"A habit tracker that works", model.CategoryMoneyPsychology, "Turn psychology into daily automations that remove willpower."},
		{"Rebalance quarterly", model.CategoryWealthStrategy, "Evidence-based portfolio rules with AI for monitoring and alerts."},
		{"Zapier for your bills", model.CategoryBreakingNews, "Practical build: agents that read, decide, and act on money tasks."},
		{"Roth IRA agent", model.CategoryAI, "Systematize tax-advantaged flows with AI-powered checklists."},
		{"New model released", model.CategoryAI, "Translate AI capability into compounding money systems."},
		{"Markets open flat", model.CategoryBreakingNews, "Convert news into durable wealth processes."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentAngle(tt.title, tt.cat), tt.title)
	}
}

func TestSuggestedTitle(t *testing.T) {
	assert.Equal(t, "I Built an AI System That Reads My Bills", SuggestedTitle("Reads My Bills", model.CategoryAI))
	assert.Equal(t, "The Psychology System Behind: Fear", SuggestedTitle("Fear", model.CategoryMoneyPsychology))
	assert.Equal(t, "The Wealth System: ETFs", SuggestedTitle("News: ETFs", model.CategoryWealthStrategy))
	assert.Equal(t, "Urgent: Fed cuts rates (What Your System Must Change)", SuggestedTitle("BREAKING: Fed cuts rates", model.CategoryBreakingNews))
	assert.Equal(t, "Urgent: Markets (What Your System Must Change)", SuggestedTitle("  Markets  ", model.CategoryBreakingNews))
}

func TestThumbnailHooks(t *testing.T) {
	assert.Equal(t, []string{
		"Before vs After System",
		"3-Step Flow Diagram",
		"Red Flags vs Green Flags",
		"AI Agent in Action",
		"Timer + Urgency",
	}, ThumbnailHooks(model.CategoryBreakingNews))

	hooks := ThumbnailHooks(model.CategoryAI)
	assert.Len(t, hooks, 5)
	assert.Equal(t, "KPI Dashboard", hooks[4])
}

func TestSEOKeywords(t *testing.T) {
	got := SEOKeywords("AI Agents Transform Retirement Planning - TechCrunch Today")
	assert.Equal(t, []string{
		"ai", "agents", "transform", "retirement", "planning", "techcrunch",
		"ai personal finance", "money psychology", "wealth building", "financial freedom",
	}, got)
}

func TestSEOKeywordsDedup(t *testing.T) {
	got := SEOKeywords("money money money")
	assert.Equal(t, []string{"money", "ai personal finance", "money psychology", "wealth building", "financial freedom"}, got)

	assert.Equal(t, fixedKeywords, SEOKeywords("!!!"))
	assert.LessOrEqual(t, len(SEOKeywords("a b c d e f g h i j k l m n")), 12)
}

func TestDescribeDeterministic(t *testing.T) {
	title := "ChatGPT budget hacks for 2024"
	a, b := Describe(title), Describe(title)
	assert.Equal(t, a, b)
	assert.Equal(t, model.CategoryAI, a.Category)
	assert.Equal(t, "Turn psychology into daily automations that remove willpower.", a.ContentAngle)

	var topic model.Topic
	a.Apply(&topic)
	assert.Equal(t, a.SuggestedTitle, topic.SuggestedTitle)
	assert.Equal(t, a.SEOKeywords, topic.SEOKeywords)
}
