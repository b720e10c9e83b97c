package usecase

import (
	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	"github.com/NoamFav/EnronBox/pkg/enron"
)

// MergeClassification builds the label table from a batch
// classification response and attaches at most one label id to each
// message. Unknown categories are dropped from the table, so messages
// carrying one end up unlabeled. Label ids are sequential in first-seen
// response order and only valid within this fetch; the name is the
// stable identity.
func MergeClassification(messages []mailboxdomain.Message, results []enron.ClassifyResult) ([]mailboxdomain.Message, []mailboxdomain.Label) {
	// Last classification per id wins, but category order follows the
	// first appearance of each id in the response.
	byID := make(map[int]string, len(results))
	orderedIDs := make([]int, 0, len(results))
	for _, r := range results {
		if _, seen := byID[r.EmailID]; !seen {
			orderedIDs = append(orderedIDs, r.EmailID)
		}
		byID[r.EmailID] = r.Classification.Category
	}

	var labels []mailboxdomain.Label
	nameToID := make(map[string]int)
	for _, id := range orderedIDs {
		category := byID[id]
		if !mailboxdomain.IsKnownCategory(category) {
			continue
		}
		if _, ok := nameToID[category]; ok {
			continue
		}
		label := mailboxdomain.Label{
			ID:    len(labels) + 1,
			Name:  category,
			Color: mailboxdomain.CategoryColor(category),
		}
		labels = append(labels, label)
		nameToID[category] = label.ID
	}

	merged := make([]mailboxdomain.Message, len(messages))
	for i, m := range messages {
		m.Labels = []int{}
		if labelID, ok := nameToID[byID[m.ID]]; ok {
			m.Labels = []int{labelID}
		}
		merged[i] = m
	}

	return merged, labels
}
