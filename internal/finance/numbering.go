package finance

import (
	"fmt"
	"strconv"
	"strings"

	"backend/internal/model"
)

// InvoiceNumberPrefix is the document prefix ahead of the year segment.
const InvoiceNumberPrefix = "CB"

// NextInvoiceNumber generates the next sequential invoice number for the
// given year: CB-YYYY-NNNN, 4-digit zero-padded, scoped per calendar
// year. Numbers from other years are ignored, and a suffix that does not
// parse as a number counts as 0 — malformed numbers never break
// generation.
func NextInvoiceNumber(invoices []model.Invoice, year int) string {
	prefix := fmt.Sprintf("%s-%d-", InvoiceNumberPrefix, year)

	max := 0
	for _, inv := range invoices {
		if !strings.HasPrefix(inv.InvoiceNo, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(inv.InvoiceNo, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%04d", prefix, max+1)
}

// NextReceiptNumber generates the next sequential receipt number:
// R-NNN, 3-digit zero-padded, scoped globally across all receipts
// regardless of sign.
func NextReceiptNumber(receipts []model.Receipt) string {
	max := 0
	for _, r := range receipts {
		n, err := strconv.Atoi(strings.TrimPrefix(r.ReceiptNo, "R-"))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("R-%03d", max+1)
}
