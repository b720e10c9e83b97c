package usecase

import (
	"sort"
	"strings"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
)

// ApplyFilters narrows the message list predicate by predicate, then
// sorts. Filtering by label goes through the current label table by
// NAME: a name missing from the table matches nothing. The default
// date sort keeps the upstream order untouched; explicit sorts are
// stable so ties retain their relative input order.
func ApplyFilters(messages []mailboxdomain.Message, opts mailboxdomain.FilterOptions, labels []mailboxdomain.Label) []mailboxdomain.Message {
	filtered := messages

	if opts.UnreadOnly {
		filtered = keep(filtered, func(m mailboxdomain.Message) bool { return !m.Read })
	}

	if opts.HasAttachments {
		filtered = keep(filtered, func(m mailboxdomain.Message) bool { return m.HasAttachments })
	}

	if opts.ByLabel != "" {
		wantID, found := 0, false
		for _, l := range labels {
			if l.Name == opts.ByLabel {
				wantID, found = l.ID, true
				break
			}
		}
		filtered = keep(filtered, func(m mailboxdomain.Message) bool {
			if !found {
				return false
			}
			for _, id := range m.Labels {
				if id == wantID {
					return true
				}
			}
			return false
		})
	}

	result := make([]mailboxdomain.Message, len(filtered))
	copy(result, filtered)

	switch opts.SortBy {
	case mailboxdomain.SortBySender:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Sender) < strings.ToLower(result[j].Sender)
		})
	case mailboxdomain.SortBySubject:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Subject) < strings.ToLower(result[j].Subject)
		})
	default:
		// Date order is whatever the backend returned.
	}

	return result
}

func keep(messages []mailboxdomain.Message, pred func(mailboxdomain.Message) bool) []mailboxdomain.Message {
	kept := make([]mailboxdomain.Message, 0, len(messages))
	for _, m := range messages {
		if pred(m) {
			kept = append(kept, m)
		}
	}
	return kept
}
