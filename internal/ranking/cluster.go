package ranking

import (
	"math"
	"sort"

	"github.com/abelbrown/topicradar/internal/model"
)

const (
	mentionBonusPerItem = 0.35
	mentionBonusCap     = 1.2
	growthPerItem       = 0.4
)

// MentionBonus rewards corroboration, saturating at 1.2.
func MentionBonus(n int) float64 {
	return math.Min(float64(n)*mentionBonusPerItem, mentionBonusCap)
}

// ClusterScore is the sum of item scores plus the mention bonus.
func ClusterScore(itemScoreSum float64, n int) float64 {
	return itemScoreSum + MentionBonus(n)
}

// GrowthFor buckets clusterScore + n×0.4. This metric is separate from
// the stored topic score.
func GrowthFor(clusterScore float64, n int) model.Growth {
	s := clusterScore + float64(n)*growthPerItem
	switch {
	case s > 3.2:
		return model.GrowthExplosive
	case s > 2.4:
		return model.GrowthHigh
	case s > 1.6:
		return model.GrowthMedium
	default:
		return model.GrowthLow
	}
}

// Rank sorts topics by score, descending. Ties keep their input order.
func Rank(topics []model.Topic) {
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Score > topics[j].Score
	})
}
