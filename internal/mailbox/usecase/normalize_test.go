package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
	"github.com/NoamFav/EnronBox/pkg/enron"
)

func TestNormalizeEmailsDefaults(t *testing.T) {
	now := time.Date(2001, time.May, 15, 12, 0, 0, 0, time.Local)
	raw := []enron.RawEmail{
		{ID: 1, FromAddress: "", Subject: "", Body: "hello", Date: ""},
	}

	messages := NormalizeEmails(raw, map[int]mailboxdomain.EmailStatus{}, now)
	require.Len(t, messages, 1)

	m := messages[0]
	assert.Equal(t, "Unknown", m.Sender)
	assert.Equal(t, "(No Subject)", m.Subject)
	assert.Equal(t, "Unknown", m.Time)
	assert.False(t, m.Read)
	assert.False(t, m.Starred)
	assert.False(t, m.Flagged)
	assert.Equal(t, mailboxdomain.PriorityNormal, m.Priority)
	assert.NotNil(t, m.Attachments)
	assert.Empty(t, m.Attachments)
	assert.NotNil(t, m.Labels)
	assert.Empty(t, m.Labels)
}

func TestNormalizeEmailsAppliesStoredStatus(t *testing.T) {
	now := time.Date(2001, time.May, 15, 12, 0, 0, 0, time.Local)
	raw := []enron.RawEmail{
		{ID: 7, FromAddress: "kay.mann@enron.com", Subject: "Deal update", Body: "b", Date: "2001-05-15 08:00:00"},
		{ID: 8, FromAddress: "jeff@enron.com", Subject: "Other", Body: "b", Date: "2001-05-15 09:00:00"},
	}
	statuses := map[int]mailboxdomain.EmailStatus{
		7: {Username: "kay", EmailID: 7, Read: true, Starred: true, Priority: mailboxdomain.PriorityHigh},
	}

	messages := NormalizeEmails(raw, statuses, now)
	require.Len(t, messages, 2)

	assert.True(t, messages[0].Read)
	assert.True(t, messages[0].Starred)
	assert.Equal(t, mailboxdomain.PriorityHigh, messages[0].Priority)
	assert.Equal(t, "kay.mann@enron.com", messages[0].Sender)
	assert.Equal(t, "2001-05-15 08:00:00", messages[0].RawTime)

	// No stored record: defaults.
	assert.False(t, messages[1].Read)
	assert.Equal(t, mailboxdomain.PriorityNormal, messages[1].Priority)
}

func TestNormalizeEmailsPreservesOrder(t *testing.T) {
	now := time.Now()
	raw := []enron.RawEmail{{ID: 3}, {ID: 1}, {ID: 2}}

	messages := NormalizeEmails(raw, nil, now)
	require.Len(t, messages, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{messages[0].ID, messages[1].ID, messages[2].ID})
}

func TestExcludeHidden(t *testing.T) {
	messages := []mailboxdomain.Message{{ID: 1}, {ID: 2}, {ID: 3}}
	statuses := map[int]mailboxdomain.EmailStatus{
		1: {EmailID: 1, Deleted: true},
		3: {EmailID: 3, Archived: true},
	}

	visible := ExcludeHidden(messages, statuses)
	require.Len(t, visible, 1)
	assert.Equal(t, 2, visible[0].ID)
}
