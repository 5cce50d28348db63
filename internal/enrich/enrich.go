package enrich

import "github.com/abelbrown/topicradar/internal/model"

// Metadata is everything derived from a representative title.
type Metadata struct {
	Category       model.Category
	WhyItMatters   string
	ContentAngle   string
	SuggestedTitle string
	ThumbnailHooks []string
	SEOKeywords    []string
}

// Describe infers the category of title and builds its metadata.
func Describe(title string) Metadata {
	c := InferCategory(title)
	return Metadata{
		Category:       c,
		WhyItMatters:   WhyItMatters(c),
		ContentAngle:   ContentAngle(title, c),
		SuggestedTitle: SuggestedTitle(title, c),
		ThumbnailHooks: ThumbnailHooks(c),
		SEOKeywords:    SEOKeywords(title),
	}
}

// Apply copies m onto topic.
func (m Metadata) Apply(topic *model.Topic) {
	topic.Category = m.Category
	topic.WhyItMatters = m.WhyItMatters
	topic.ContentAngle = m.ContentAngle
	topic.SuggestedTitle = m.SuggestedTitle
	topic.ThumbnailHooks = m.ThumbnailHooks
	topic.SEOKeywords = m.SEOKeywords
}
