package domain

// Attachment describes a file attached to a message.
type Attachment struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Type string `json:"type"`
}

// Message is the display-ready view of a raw backend email record.
// It is rebuilt in full on every folder or search fetch; per-message
// status fields come from the persisted status store, never from the
// upstream record.
type Message struct {
	ID             int          `json:"id"`
	Sender         string       `json:"sender"`
	Subject        string       `json:"subject"`
	Content        string       `json:"content"`
	Time           string       `json:"time"`
	RawTime        string       `json:"raw_time"`
	Read           bool         `json:"read"`
	Starred        bool         `json:"starred"`
	Flagged        bool         `json:"flagged"`
	HasAttachments bool         `json:"has_attachments"`
	Attachments    []Attachment `json:"attachments"`
	Priority       string       `json:"priority"`
	Labels         []int        `json:"labels"`
}

// Priority values for a message.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityNormal = "normal"
)
