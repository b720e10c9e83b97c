package enron

// User is a mailbox owner known to the analysis backend.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// RawEmail is the wire shape of a message as returned by the folder
// listing and search endpoints.
type RawEmail struct {
	ID          int    `json:"id"`
	FromAddress string `json:"from_address"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	Date        string `json:"date"`
}

// ClassifyItem is one entry of a batch classification request.
type ClassifyItem struct {
	ID            int    `json:"id"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	Sender        string `json:"sender"`
	HasAttachment bool   `json:"has_attachment"`
	NumRecipients int    `json:"num_recipients"`
	TimeSent      string `json:"time_sent"`
}

// Classification carries the category assigned by the classifier.
type Classification struct {
	Category string `json:"category"`
}

// ClassifyResult pairs a message id with its classification.
type ClassifyResult struct {
	EmailID        int            `json:"email_id"`
	Classification Classification `json:"classification"`
}

// SearchRequest is the body of the IR search endpoint.
type SearchRequest struct {
	Query        string   `json:"query"`
	Username     string   `json:"username"`
	Folder       string   `json:"folder"`
	SearchFields []string `json:"search_fields"`
	MaxResults   int      `json:"max_results"`
}

// SearchResponse wraps ranked search results.
type SearchResponse struct {
	Results []RawEmail `json:"results"`
}

// SummarizeRequest asks for an extractive summary of an email body.
type SummarizeRequest struct {
	EmailText    string `json:"email_text"`
	NumSentences int    `json:"num_sentences"`
}

// SummarizeResponse carries the generated summary.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// EntitiesRequest asks for named entities in an email body. EmailID is
// optional and only used by the backend for persistence.
type EntitiesRequest struct {
	EmailText string `json:"email_text"`
	EmailID   int    `json:"email_id"`
}

// EntitiesResponse maps entity labels (PERSON, ORG, ...) to values.
type EntitiesResponse struct {
	Entities map[string][]string `json:"entities"`
}

// RespondRequest asks the backend to draft a reply to an email.
type RespondRequest struct {
	Content     string  `json:"content"`
	Subject     string  `json:"subject"`
	Sender      string  `json:"sender"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

// RespondResponse carries the drafted reply or a backend-side error.
type RespondResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
	Error   string `json:"error"`
}

// StatusPatch is the fire-and-forget status sync payload.
type StatusPatch struct {
	Read     *bool `json:"read,omitempty"`
	Starred  *bool `json:"starred,omitempty"`
	Flagged  *bool `json:"flagged,omitempty"`
	Deleted  *bool `json:"deleted,omitempty"`
	Archived *bool `json:"archived,omitempty"`
}
