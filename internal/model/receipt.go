package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurringFrequency enum constants
const (
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
)

// Receipt records a single cash movement. The sign of Amount is the
// income/expense classification: positive is income, negative is an
// expense. There is no separate type field anywhere in the system.
type Receipt struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ReceiptNo    string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"receipt_no"` // R-NNN, sequential across all receipts
	Counterparty string          `gorm:"type:varchar(255);not null" json:"counterparty"`          // who the money came from or went to
	Date         time.Time       `gorm:"not null;index" json:"date"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Category     string          `gorm:"type:varchar(100);index" json:"category"`
	TxCategory   string          `gorm:"type:varchar(100)" json:"tx_category"` // finer-grained transaction category
	PaymentMethod string         `gorm:"type:varchar(50)" json:"payment_method"`
	Notes        string          `gorm:"type:text" json:"notes"`
	PhotoURL     string          `gorm:"type:text" json:"photo_url"`
	Tags         []string        `gorm:"serializer:json" json:"tags"`
	IsRecurring  bool            `gorm:"default:false" json:"is_recurring"`
	Frequency    string          `gorm:"type:varchar(20)" json:"frequency"` // WEEKLY, MONTHLY, YEARLY when recurring
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsIncome reports whether this receipt counts toward income.
// A zero amount is neither income nor expense.
func (r Receipt) IsIncome() bool {
	return r.Amount.IsPositive()
}

// IsExpense reports whether this receipt counts toward expenses.
func (r Receipt) IsExpense() bool {
	return r.Amount.IsNegative()
}
