package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice represents a billing document issued to a client.
// Subtotal, tax amount and total are derived from the items — never stored.
// Only PAID invoices count toward realized revenue.
type Invoice struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	InvoiceNo     string        `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_no"` // CB-YYYY-NNNN, sequential per year
	ClientName    string        `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientEmail   string        `gorm:"type:varchar(255)" json:"client_email"`
	IssueDate     time.Time     `gorm:"not null" json:"issue_date"`
	DueDate       time.Time     `gorm:"not null" json:"due_date"`
	Items         []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"tax_rate"` // percentage, 0-100
	Status        string        `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	Notes         string        `gorm:"type:text" json:"notes"`
	PaymentTerms  string        `gorm:"type:varchar(255)" json:"payment_terms"`
	PaidDate      *time.Time    `json:"paid_date"`
	PaymentMethod string        `gorm:"type:varchar(50)" json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceItem is a line item owned exclusively by its parent invoice.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
}

// Subtotal is the tax-exclusive sum of quantity x unit price over all items.
func (i Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range i.Items {
		sum = sum.Add(item.Quantity.Mul(item.UnitPrice))
	}
	return sum
}

// TaxAmount = subtotal * taxRate / 100.
func (i Invoice) TaxAmount() decimal.Decimal {
	return i.Subtotal().Mul(i.TaxRate).Div(decimal.NewFromInt(100))
}

// Total is the tax-inclusive amount billed to the client.
func (i Invoice) Total() decimal.Decimal {
	return i.Subtotal().Add(i.TaxAmount())
}

// RevenueDate is the month-bucketing key for consistency scoring:
// the paid date when recorded, the issue date otherwise.
func (i Invoice) RevenueDate() time.Time {
	if i.PaidDate != nil {
		return *i.PaidDate
	}
	return i.IssueDate
}
