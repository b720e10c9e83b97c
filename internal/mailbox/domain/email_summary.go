package domain

import "time"

// EmailSummary stores cached summaries so a message is only sent to the
// summarizer once per user.
type EmailSummary struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"index:idx_user_email;not null"`
	EmailID   int       `json:"email_id" gorm:"index:idx_user_email;uniqueIndex:idx_user_email_unique;not null"`
	Summary   string    `json:"summary" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (EmailSummary) TableName() string {
	return "email_summaries"
}
