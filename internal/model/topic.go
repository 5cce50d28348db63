package model

import "time"

// Category is the editorial bucket a topic is filed under.
type Category string

const (
	CategoryAI              Category = "AI"
	CategoryMoneyPsychology Category = "Money Psychology"
	CategoryWealthStrategy  Category = "Wealth Strategy"
	CategoryBreakingNews    Category = "Breaking News"
)

// Growth is the quantized growth-potential bucket of a topic.
type Growth string

const (
	GrowthLow       Growth = "Low"
	GrowthMedium    Growth = "Medium"
	GrowthHigh      Growth = "High"
	GrowthExplosive Growth = "Explosive"
)

// Topic is a cluster of raw items sharing a title fingerprint, enriched
// with presentation metadata. Sources keeps the order in which items were
// encountered during clustering and is never empty.
type Topic struct {
	Topic           string    `json:"topic"`
	Category        Category  `json:"category"`
	WhyItMatters    string    `json:"whyItMatters"`
	ContentAngle    string    `json:"contentAngle"`
	PotentialGrowth Growth    `json:"potentialGrowth"`
	SuggestedTitle  string    `json:"suggestedTitle"`
	ThumbnailHooks  []string  `json:"thumbnailHooks"`
	SEOKeywords     []string  `json:"seoKeywords"`
	Score           float64   `json:"score"`
	Sources         []RawItem `json:"sources"`
}

// SourceReport summarises how a single adapter fared during a run.
type SourceReport struct {
	Name       string     `json:"name"`
	Type       SourceType `json:"type"`
	Items      int        `json:"items"`
	Error      string     `json:"error,omitempty"`
	DurationMs int64      `json:"durationMs"`
}

// Meta carries run statistics alongside the ranked topics.
type Meta struct {
	TotalRawItems int            `json:"totalRawItems"`
	UniqueTopics  int            `json:"uniqueTopics"`
	GenerationMs  int64          `json:"generationMs"`
	RunID         string         `json:"runId,omitempty"`
	Sources       []SourceReport `json:"sources,omitempty"`
}

// ResearchResponse is the final output of one pipeline run.
type ResearchResponse struct {
	GeneratedAt string   `json:"generatedAt"`
	Regions     []Region `json:"regions"`
	Topics      []Topic  `json:"topics"`
	Meta        Meta     `json:"meta"`
}

// isoLayout matches the millisecond-precision UTC timestamps the dashboard
// already parses (e.g. 2024-05-01T12:00:00.000Z).
const isoLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the response timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
