package repository

import (
	"time"

	"gorm.io/gorm"

	mailboxdomain "github.com/NoamFav/EnronBox/internal/mailbox/domain"
)

// EmailStatusRepository defines the interface for per-message status operations
type EmailStatusRepository interface {
	// GetStatus retrieves the status for one message, nil if unknown
	GetStatus(username string, emailID int) (*mailboxdomain.EmailStatus, error)
	// GetStatuses retrieves statuses for multiple messages
	GetStatuses(username string, emailIDs []int) (map[int]mailboxdomain.EmailStatus, error)
	// SaveStatus persists a status record (insert or update)
	SaveStatus(status *mailboxdomain.EmailStatus) error
}

// emailStatusRepository implements EmailStatusRepository interface
type emailStatusRepository struct {
	db *gorm.DB
}

// NewEmailStatusRepository creates a new instance of emailStatusRepository
func NewEmailStatusRepository(db *gorm.DB) EmailStatusRepository {
	return &emailStatusRepository{
		db: db,
	}
}

// GetStatus retrieves the status for one message
func (r *emailStatusRepository) GetStatus(username string, emailID int) (*mailboxdomain.EmailStatus, error) {
	var status mailboxdomain.EmailStatus
	err := r.db.Where("username = ? AND email_id = ?", username, emailID).First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// GetStatuses retrieves statuses for multiple messages.
// Returns a map of emailID -> status; messages without a stored record
// are simply absent from the map.
func (r *emailStatusRepository) GetStatuses(username string, emailIDs []int) (map[int]mailboxdomain.EmailStatus, error) {
	if len(emailIDs) == 0 {
		return map[int]mailboxdomain.EmailStatus{}, nil
	}

	var statuses []mailboxdomain.EmailStatus
	err := r.db.Where("username = ? AND email_id IN ?", username, emailIDs).Find(&statuses).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int]mailboxdomain.EmailStatus, len(statuses))
	for _, s := range statuses {
		result[s.EmailID] = s
	}
	return result, nil
}

// SaveStatus persists a status record
func (r *emailStatusRepository) SaveStatus(status *mailboxdomain.EmailStatus) error {
	status.UpdatedAt = time.Now()
	return r.db.Save(status).Error
}
