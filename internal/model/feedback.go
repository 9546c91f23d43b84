package model

import (
	"time"

	"github.com/google/uuid"
)

// ClientFeedback is a client-submitted review, optionally tied to an
// invoice. At most one feedback record may reference a given invoice;
// the feedback service enforces this at submission time.
type ClientFeedback struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientName  string     `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientEmail string     `gorm:"type:varchar(255)" json:"client_email"`
	Rating      int        `gorm:"not null" json:"rating"` // 1-5
	Comment     string     `gorm:"type:text;not null" json:"comment"`
	Date        time.Time  `gorm:"not null" json:"date"`
	ProjectType string     `gorm:"type:varchar(100)" json:"project_type"`
	IsPublic    bool       `gorm:"default:false" json:"is_public"`
	IsVerified  bool       `gorm:"default:false" json:"is_verified"`
	InvoiceID   *uuid.UUID `gorm:"type:uuid;index" json:"invoice_id"`
	CreatedAt   time.Time  `json:"created_at"`
}
