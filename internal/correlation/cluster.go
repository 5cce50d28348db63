package correlation

import (
	"unicode/utf8"

	"github.com/abelbrown/topicradar/internal/model"
)

// Cluster is a group of items sharing a fingerprint.
type Cluster struct {
	Key   string
	Title string // longest title seen; first wins on ties
	Items []model.RawItem
	// ItemScore is the running sum of member item scores.
	ItemScore float64
}

// Add appends item to the cluster with its precomputed score.
func (c *Cluster) Add(item model.RawItem, score float64) {
	if len(c.Items) == 0 {
		c.Title = item.Title
	} else if utf8.RuneCountInString(item.Title) > utf8.RuneCountInString(c.Title) {
		c.Title = item.Title
	}
	c.Items = append(c.Items, item)
	c.ItemScore += score
}

// Size returns the number of member items.
func (c *Cluster) Size() int {
	return len(c.Items)
}

// ScoreFunc scores a single item.
type ScoreFunc func(model.RawItem) float64

// Build groups items by Fingerprint in a single pass. Clusters are returned
// in order of first appearance; members keep encounter order.
func Build(items []model.RawItem, score ScoreFunc) []*Cluster {
	index := make(map[string]*Cluster)
	var clusters []*Cluster

	for _, item := range items {
		key := Fingerprint(item.Title)
		c, ok := index[key]
		if !ok {
			c = &Cluster{Key: key}
			index[key] = c
			clusters = append(clusters, c)
		}

		var s float64
		if score != nil {
			s = score(item)
		}
		c.Add(item, s)
	}

	return clusters
}
