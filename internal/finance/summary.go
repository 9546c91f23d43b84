// Package finance holds the pure calculators: financial summary,
// CrediScore and document numbering. Nothing here performs I/O or reads
// the clock — callers supply every input, so every function is
// deterministic and safe to call from any context.
package finance

import (
	"backend/internal/model"

	"github.com/shopspring/decimal"
)

// Summary aggregates invoices and receipts into the dashboard figures.
// All fields are rounded to 2 decimal places, half away from zero:
// half-up for the non-negative fields, and a negative NetIncome at a
// half cent rounds to the larger loss (-100.005 -> -100.01).
//
// InvoiceRevenue is deliberately tax-exclusive while the per-invoice
// total (and the growth factor of the CrediScore) is tax-inclusive.
// That asymmetry is intentional; do not unify the two without flagging
// the behavior change.
type Summary struct {
	TotalIncome    decimal.Decimal `json:"total_income"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetIncome      decimal.Decimal `json:"net_income"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
	InvoiceRevenue decimal.Decimal `json:"invoice_revenue"`
	ReceiptIncome  decimal.Decimal `json:"receipt_income"`
}

// CalculateSummary derives the standard financial summary from the full
// invoice and receipt collections. Empty collections yield zero in every
// field. Pure: no side effects, no ordering dependency.
func CalculateSummary(invoices []model.Invoice, receipts []model.Receipt) Summary {
	invoiceRevenue := decimal.Zero
	pending := decimal.Zero
	for _, inv := range invoices {
		switch inv.Status {
		case model.InvoiceStatusPaid:
			invoiceRevenue = invoiceRevenue.Add(inv.Subtotal())
		case model.InvoiceStatusSent, model.InvoiceStatusOverdue:
			pending = pending.Add(inv.Subtotal())
		}
	}

	receiptIncome := decimal.Zero
	expenses := decimal.Zero
	for _, r := range receipts {
		if r.IsIncome() {
			receiptIncome = receiptIncome.Add(r.Amount)
		} else if r.IsExpense() {
			expenses = expenses.Add(r.Amount.Abs())
		}
	}

	totalIncome := invoiceRevenue.Add(receiptIncome)

	return Summary{
		TotalIncome:    totalIncome.Round(2),
		TotalExpenses:  expenses.Round(2),
		NetIncome:      totalIncome.Sub(expenses).Round(2),
		PendingAmount:  pending.Round(2),
		InvoiceRevenue: invoiceRevenue.Round(2),
		ReceiptIncome:  receiptIncome.Round(2),
	}
}
