package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents the business owner profile. Credentials live with the
// external identity provider; this record only mirrors profile fields.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	BusinessName string    `gorm:"type:varchar(255)" json:"business_name"`
	AvatarURL    string    `gorm:"type:text" json:"avatar_url"`
	LogoURL      string    `gorm:"type:text" json:"logo_url"`
	Address      string    `gorm:"type:text" json:"address"`
	TaxID        string    `gorm:"type:varchar(50)" json:"tax_id"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone"`
	Website      string    `gorm:"type:varchar(255)" json:"website"`
	JoinDate     time.Time `gorm:"not null" json:"join_date"` // business tenure is measured from this date
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
