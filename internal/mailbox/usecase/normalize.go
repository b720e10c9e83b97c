package usecase

import (
	"time"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	"github.com/NoamFav/EnronBox/pkg/enron"
)

// NormalizeEmails turns raw upstream records into view records. Status
// fields (read/starred/flagged/priority) come from the persisted status
// store; messages without a stored record get safe defaults. The
// transform is pure: view records are rebuilt in full on every fetch.
func NormalizeEmails(raw []enron.RawEmail, statuses map[int]mailboxdomain.EmailStatus, now time.Time) []mailboxdomain.Message {
	messages := make([]mailboxdomain.Message, 0, len(raw))
	for _, e := range raw {
		sender := e.FromAddress
		if sender == "" {
			sender = "Unknown"
		}
		subject := e.Subject
		if subject == "" {
			subject = "(No Subject)"
		}

		msg := mailboxdomain.Message{
			ID:          e.ID,
			Sender:      sender,
			Subject:     subject,
			Content:     e.Body,
			Time:        FormatDate(e.Date, now),
			RawTime:     e.Date,
			Priority:    mailboxdomain.PriorityNormal,
			Attachments: []mailboxdomain.Attachment{},
			Labels:      []int{},
		}

		if status, ok := statuses[e.ID]; ok {
			msg.Read = status.Read
			msg.Starred = status.Starred
			msg.Flagged = status.Flagged
			if status.Priority != "" {
				msg.Priority = status.Priority
			}
		}

		messages = append(messages, msg)
	}
	return messages
}

// ExcludeHidden drops messages whose persisted status marks them
// deleted or archived; they stay in the upstream folder listing but
// must not show up in a view.
func ExcludeHidden(messages []mailboxdomain.Message, statuses map[int]mailboxdomain.EmailStatus) []mailboxdomain.Message {
	visible := make([]mailboxdomain.Message, 0, len(messages))
	for _, m := range messages {
		if status, ok := statuses[m.ID]; ok && (status.Deleted || status.Archived) {
			continue
		}
		visible = append(visible, m)
	}
	return visible
}
