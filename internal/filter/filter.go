// Package filter provides the pure normalisation stage of the pipeline.
// All functions are simple: []RawItem in, []RawItem out. No side effects.
package filter

import (
	"unicode/utf8"

	"github.com/abelbrown/topicradar/internal/model"
)

// Title length bounds, inclusive, in characters.
const (
	MinTitleLen = 6
	MaxTitleLen = 200
)

// ByTitleLength keeps items whose title length is within
// [MinTitleLen, MaxTitleLen].
func ByTitleLength(items []model.RawItem) []model.RawItem {
	result := make([]model.RawItem, 0, len(items))
	for _, item := range items {
		n := utf8.RuneCountInString(item.Title)
		if n < MinTitleLen || n > MaxTitleLen {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Dedup removes items whose source:id key was already seen. The first
// occurrence wins and order is preserved.
func Dedup(items []model.RawItem) []model.RawItem {
	seen := make(map[string]struct{}, len(items))
	result := make([]model.RawItem, 0, len(items))
	for _, item := range items {
		key := item.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	return result
}

// Normalize applies the title-length filter, then deduplication.
func Normalize(items []model.RawItem) []model.RawItem {
	return Dedup(ByTitleLength(items))
}
