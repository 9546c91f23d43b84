// Package export renders receipt collections for download.
package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"backend/internal/model"
)

var receiptHeader = []string{"Receipt #", "Date", "From/To", "Category", "Payment Method", "Amount", "Notes"}

// ReceiptsCSV renders the given receipts as CSV text, one row per
// receipt in the order supplied. Free-text fields with embedded commas
// or quotes come out double-quote escaped per RFC 4180.
func ReceiptsCSV(receipts []model.Receipt) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(receiptHeader); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range receipts {
		row := []string{
			r.ReceiptNo,
			r.Date.Format("2006-01-02"),
			r.Counterparty,
			r.Category,
			r.PaymentMethod,
			r.Amount.StringFixed(2),
			r.Notes,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	return sb.String(), nil
}
