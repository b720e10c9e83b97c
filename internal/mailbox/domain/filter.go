package domain

// Sort criteria for the message list. Exactly one is active at a time;
// SortByDate keeps the upstream order untouched.
const (
	SortByDate    = "date"
	SortBySender  = "sender"
	SortBySubject = "subject"
)

// FilterOptions narrows and orders a message list. ByLabel filters by
// label NAME resolved through the current label table.
type FilterOptions struct {
	UnreadOnly     bool   `json:"unread_only"`
	HasAttachments bool   `json:"has_attachments"`
	SortBy         string `json:"sort_by"`
	ByLabel        string `json:"by_label"`
}
