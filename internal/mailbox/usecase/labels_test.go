package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	"github.com/NoamFav/EnronBox/pkg/enron"
)

func classified(id int, category string) enron.ClassifyResult {
	return enron.ClassifyResult{
		EmailID:        id,
		Classification: enron.Classification{Category: category},
	}
}

func TestMergeClassificationBuildsLabelTable(t *testing.T) {
	messages := []mailboxdomain.Message{{ID: 1}, {ID: 2}, {ID: 3}}
	results := []enron.ClassifyResult{
		classified(1, "Work"),
		classified(2, "Urgent"),
		classified(3, "Work"),
	}

	merged, labels := MergeClassification(messages, results)

	require.Len(t, labels, 2)
	assert.Equal(t, mailboxdomain.Label{ID: 1, Name: "Work", Color: "blue"}, labels[0])
	assert.Equal(t, mailboxdomain.Label{ID: 2, Name: "Urgent", Color: "red"}, labels[1])

	assert.Equal(t, []int{1}, merged[0].Labels)
	assert.Equal(t, []int{2}, merged[1].Labels)
	assert.Equal(t, []int{1}, merged[2].Labels)
}

func TestMergeClassificationUnknownCategoryDropped(t *testing.T) {
	messages := []mailboxdomain.Message{{ID: 1}, {ID: 2}}
	results := []enron.ClassifyResult{
		classified(1, "Spam"), // not in the known set
		classified(2, "Personal"),
	}

	merged, labels := MergeClassification(messages, results)

	require.Len(t, labels, 1)
	assert.Equal(t, "Personal", labels[0].Name)
	assert.Equal(t, "green", labels[0].Color)

	// The message with the unknown category ends up unlabeled, not
	// mislabeled.
	assert.Empty(t, merged[0].Labels)
	assert.Equal(t, []int{1}, merged[1].Labels)
}

func TestMergeClassificationDuplicateIDLastWins(t *testing.T) {
	messages := []mailboxdomain.Message{{ID: 5}, {ID: 6}}
	results := []enron.ClassifyResult{
		classified(5, "Work"),
		classified(6, "Meeting"),
		classified(5, "Urgent"), // later entry for the same id wins
	}

	merged, labels := MergeClassification(messages, results)

	// Category order still follows the first appearance of each id,
	// so id 5's final category (Urgent) comes before Meeting.
	require.Len(t, labels, 2)
	assert.Equal(t, "Urgent", labels[0].Name)
	assert.Equal(t, "Meeting", labels[1].Name)

	assert.Equal(t, []int{1}, merged[0].Labels)
	assert.Equal(t, []int{2}, merged[1].Labels)
}

func TestMergeClassificationColorMap(t *testing.T) {
	want := map[string]string{
		"Work":       "blue",
		"Urgent":     "red",
		"Business":   "orange",
		"Personal":   "green",
		"Meeting":    "teal",
		"External":   "gray",
		"Newsletter": "purple",
	}
	for category, color := range want {
		assert.True(t, mailboxdomain.IsKnownCategory(category), category)
		assert.Equal(t, color, mailboxdomain.CategoryColor(category), category)
	}
	assert.False(t, mailboxdomain.IsKnownCategory("Spam"))
}

func TestMergeClassificationIdempotent(t *testing.T) {
	messages := []mailboxdomain.Message{{ID: 1}, {ID: 2}}
	results := []enron.ClassifyResult{
		classified(1, "Work"),
		classified(2, "External"),
	}

	once, labelsOnce := MergeClassification(messages, results)
	twice, labelsTwice := MergeClassification(once, results)

	assert.Equal(t, once, twice)
	assert.Equal(t, labelsOnce, labelsTwice)
}

func TestMergeClassificationAtMostOneLabel(t *testing.T) {
	messages := []mailboxdomain.Message{{ID: 1, Labels: []int{9, 8, 7}}}
	results := []enron.ClassifyResult{classified(1, "Work")}

	merged, _ := MergeClassification(messages, results)
	require.Len(t, merged[0].Labels, 1)
}

func TestMergeClassificationEmptyResults(t *testing.T) {
	messages := []mailboxdomain.Message{{ID: 1}}

	merged, labels := MergeClassification(messages, nil)
	assert.Empty(t, labels)
	assert.Empty(t, merged[0].Labels)
	assert.NotNil(t, merged[0].Labels)
}
