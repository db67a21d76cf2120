package learning

import (
	"sort"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// BuildQueue derives the session queue from the full vocabulary collection:
// archived items are dropped and the remainder is ordered ascending by
// status, weakest words first. The sort is stable, so ties keep the
// collection's original order.
func BuildQueue(items []domain.VocabularyItem) []domain.VocabularyItem {
	queue := make([]domain.VocabularyItem, 0, len(items))
	for _, item := range items {
		if item.IsLearnable() {
			queue = append(queue, item)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].Status < queue[j].Status
	})

	return queue
}
