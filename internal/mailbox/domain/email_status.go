package domain

import "time"

// EmailStatus is the persisted per-message status, keyed by
// (username, email id). New or unknown messages default to unread,
// unstarred, unflagged with normal priority.
type EmailStatus struct {
	Username  string    `json:"username" gorm:"primaryKey;size:255"`
	EmailID   int       `json:"email_id" gorm:"primaryKey"`
	Read      bool      `json:"read"`
	Starred   bool      `json:"starred"`
	Flagged   bool      `json:"flagged"`
	Deleted   bool      `json:"deleted"`
	Archived  bool      `json:"archived"`
	Priority  string    `json:"priority" gorm:"size:16;default:normal"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (EmailStatus) TableName() string {
	return "email_statuses"
}

// StatusPatch is a partial status update. Nil fields are left
// untouched; it mirrors the upstream /emails/{id}/status contract.
type StatusPatch struct {
	Read     *bool `json:"read,omitempty"`
	Starred  *bool `json:"starred,omitempty"`
	Flagged  *bool `json:"flagged,omitempty"`
	Deleted  *bool `json:"deleted,omitempty"`
	Archived *bool `json:"archived,omitempty"`
}

// Apply overlays the patch onto a status record.
func (p StatusPatch) Apply(s *EmailStatus) {
	if p.Read != nil {
		s.Read = *p.Read
	}
	if p.Starred != nil {
		s.Starred = *p.Starred
	}
	if p.Flagged != nil {
		s.Flagged = *p.Flagged
	}
	if p.Deleted != nil {
		s.Deleted = *p.Deleted
	}
	if p.Archived != nil {
		s.Archived = *p.Archived
	}
}
