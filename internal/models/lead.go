package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	leadStatuses = []string{
		LeadStatusNew,
		LeadStatusContacted,
		LeadStatusQualified,
		LeadStatusConverted,
		LeadStatusLost,
	}
)

type Lead struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TrainerName string    `gorm:"type:varchar(255);not null" json:"trainerName"`
	MemberName  string    `gorm:"type:varchar(255);not null" json:"memberName"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Source      string    `gorm:"type:varchar(255)" json:"source,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;index" json:"updatedAt"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}

	if l.Status == "" {
		l.Status = LeadStatusNew
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}

	return l.Validate()
}

func (l *Lead) BeforeUpdate(tx *gorm.DB) error {
	// Skip validation for map-based updates; only specific fields change and
	// the Lead struct here is empty
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return l.Validate()
}

func (l *Lead) Validate() error {
	if l.TrainerName == "" {
		return errors.New("trainer name is required")
	}

	if l.MemberName == "" {
		return errors.New("member name is required")
	}

	if l.Email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(l.Email) {
		return errors.New("invalid email format")
	}

	if !IsValidLeadStatus(l.Status) {
		return fmt.Errorf("invalid status: %s", l.Status)
	}

	return nil
}

// IsValidLeadStatus reports whether s is one of the allowed lead statuses.
func IsValidLeadStatus(s string) bool {
	for _, status := range leadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// LeadStatuses returns the allowed status values in declaration order.
func LeadStatuses() []string {
	out := make([]string, len(leadStatuses))
	copy(out, leadStatuses)
	return out
}
