package finance

import (
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func invoiceNumbered(no string) model.Invoice {
	return model.Invoice{InvoiceNo: no}
}

func TestNextInvoiceNumber(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		year     int
		want     string
	}{
		{"empty collection starts at 1", nil, 2025, "CB-2025-0001"},
		{"continues from the max, gaps allowed", []string{"CB-2024-0001", "CB-2024-0003"}, 2024, "CB-2024-0004"},
		{"other years are ignored", []string{"CB-2023-0042"}, 2024, "CB-2024-0001"},
		{"malformed suffix counts as zero", []string{"CB-2024-draft", "CB-2024-0002"}, 2024, "CB-2024-0003"},
		{"only malformed numbers still generate", []string{"CB-2024-xxxx"}, 2024, "CB-2024-0001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var invoices []model.Invoice
			for _, no := range tc.existing {
				invoices = append(invoices, invoiceNumbered(no))
			}
			assert.Equal(t, tc.want, NextInvoiceNumber(invoices, tc.year))
		})
	}
}

func TestNextReceiptNumber(t *testing.T) {
	assert.Equal(t, "R-001", NextReceiptNumber(nil))

	receipts := []model.Receipt{
		{ReceiptNo: "R-001", Amount: d("100")},
		{ReceiptNo: "R-007", Amount: d("-50")}, // sign never matters for numbering
		{ReceiptNo: "R-bad"},
	}
	assert.Equal(t, "R-008", NextReceiptNumber(receipts))
}
