package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalCategory enum constants
const (
	GoalCategorySavings   = "SAVINGS"
	GoalCategoryRevenue   = "REVENUE"
	GoalCategoryEquipment = "EQUIPMENT"
	GoalCategoryEmergency = "EMERGENCY"
	GoalCategoryOther     = "OTHER"
)

// FinancialGoal is a savings/target tracker. It is bookkeeping only —
// the CrediScore never reads goals.
type FinancialGoal struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"current_amount"`
	Deadline      time.Time       `json:"deadline"`
	Category      string          `gorm:"type:varchar(30);not null;default:'OTHER'" json:"category"`
	IsCompleted   bool            `gorm:"default:false" json:"is_completed"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
