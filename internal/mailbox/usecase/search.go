package usecase

import (
	"strings"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
)

// RankBySubjectMatch orders search results so that messages whose
// subject contains the query come before body-only matches. This is a
// stable partition, not a relevance sort: within each group the
// original response order is preserved.
func RankBySubjectMatch(messages []mailboxdomain.Message, query string) []mailboxdomain.Message {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return messages
	}

	subjectMatches := make([]mailboxdomain.Message, 0, len(messages))
	rest := make([]mailboxdomain.Message, 0, len(messages))
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m.Subject), query) {
			subjectMatches = append(subjectMatches, m)
		} else {
			rest = append(rest, m)
		}
	}

	return append(subjectMatches, rest...)
}

// FilterByQuery is the client-side substring search used when the IR
// endpoint is unavailable: keep messages whose subject or body contains
// the query, then apply the same subject-before-body partition.
func FilterByQuery(messages []mailboxdomain.Message, query string) []mailboxdomain.Message {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return messages
	}

	matched := make([]mailboxdomain.Message, 0, len(messages))
	for _, m := range messages {
		if strings.Contains(strings.ToLower(m.Subject), query) ||
			strings.Contains(strings.ToLower(m.Content), query) {
			matched = append(matched, m)
		}
	}

	return RankBySubjectMatch(matched, query)
}
