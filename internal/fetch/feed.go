package fetch

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/abelbrown/topicradar/internal/model"
)

// FeedOptions controls how feed entries are converted to raw items.
type FeedOptions struct {
	// Label prefixes every item ID ("<label>:<guid>") and names the feed.
	Label  string
	Source model.SourceType
	Region model.Region
}

// FeedItems fetches url and converts its entries with ConvertFeed.
func (c *Client) FeedItems(ctx context.Context, url string, opts FeedOptions) ([]model.RawItem, error) {
	feed, err := c.Feed(ctx, url)
	if err != nil {
		return nil, err
	}
	return ConvertFeed(feed, opts), nil
}

// ConvertFeed maps parsed feed entries to raw items. Entries without a
// title or link are dropped.
func ConvertFeed(feed *gofeed.Feed, opts FeedOptions) []model.RawItem {
	if feed == nil {
		return nil
	}

	items := make([]model.RawItem, 0, len(feed.Items))
	for idx, entry := range feed.Items {
		if entry == nil {
			continue
		}
		item := model.RawItem{
			ID:          opts.Label + ":" + entryID(entry, idx),
			Title:       CleanTitle(entry.Title),
			URL:         NormalizeURL(strings.TrimSpace(entry.Link)),
			Source:      opts.Source,
			PublishedAt: model.Time(entryTime(entry)),
			Author:      entryAuthor(entry),
			Region:      opts.Region,
		}
		if item.Title == "" || item.URL == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// entryID prefers the GUID, then the link, then the entry's position.
func entryID(entry *gofeed.Item, idx int) string {
	if entry.GUID != "" {
		return entry.GUID
	}
	if entry.Link != "" {
		return entry.Link
	}
	return strconv.Itoa(idx)
}

func entryTime(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return time.Time{}
}

func entryAuthor(entry *gofeed.Item) string {
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		return entry.DublinCoreExt.Creator[0]
	}
	if entry.Author != nil {
		return entry.Author.Name
	}
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	return ""
}
