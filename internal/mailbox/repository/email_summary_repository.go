package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
)

// EmailSummaryRepository defines the interface for email summary operations
type EmailSummaryRepository interface {
	// GetSummary retrieves a cached summary for an email
	GetSummary(username string, emailID int) (*mailboxdomain.EmailSummary, error)
	// GetSummaries retrieves cached summaries for multiple emails
	GetSummaries(username string, emailIDs []int) (map[int]string, error)
	// SaveSummary saves or updates a summary for an email
	SaveSummary(username string, emailID int, summary string) error
	// DeleteSummary deletes a summary for an email
	DeleteSummary(username string, emailID int) error
}

// emailSummaryRepository implements EmailSummaryRepository interface
type emailSummaryRepository struct {
	db *gorm.DB
}

// NewEmailSummaryRepository creates a new instance of emailSummaryRepository
func NewEmailSummaryRepository(db *gorm.DB) EmailSummaryRepository {
	return &emailSummaryRepository{
		db: db,
	}
}

// GetSummary retrieves a cached summary for an email
func (r *emailSummaryRepository) GetSummary(username string, emailID int) (*mailboxdomain.EmailSummary, error) {
	var summary mailboxdomain.EmailSummary
	err := r.db.Where("username = ? AND email_id = ?", username, emailID).First(&summary).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// GetSummaries retrieves cached summaries for multiple emails.
// Returns a map of emailID -> summary.
func (r *emailSummaryRepository) GetSummaries(username string, emailIDs []int) (map[int]string, error) {
	if len(emailIDs) == 0 {
		return map[int]string{}, nil
	}

	var summaries []mailboxdomain.EmailSummary
	err := r.db.Where("username = ? AND email_id IN ?", username, emailIDs).Find(&summaries).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int]string, len(summaries))
	for _, s := range summaries {
		result[s.EmailID] = s.Summary
	}
	return result, nil
}

// SaveSummary saves or updates a summary for an email
func (r *emailSummaryRepository) SaveSummary(username string, emailID int, summaryText string) error {
	var existing mailboxdomain.EmailSummary
	err := r.db.Where("username = ? AND email_id = ?", username, emailID).First(&existing).Error

	now := time.Now()
	if err == gorm.ErrRecordNotFound {
		summary := mailboxdomain.EmailSummary{
			ID:        uuid.New().String(),
			Username:  username,
			EmailID:   emailID,
			Summary:   summaryText,
			CreatedAt: now,
		}
		return r.db.Create(&summary).Error
	} else if err != nil {
		return err
	}

	existing.Summary = summaryText
	existing.CreatedAt = now
	return r.db.Save(&existing).Error
}

// DeleteSummary deletes a summary for an email
func (r *emailSummaryRepository) DeleteSummary(username string, emailID int) error {
	return r.db.Where("username = ? AND email_id = ?", username, emailID).Delete(&mailboxdomain.EmailSummary{}).Error
}
