package finance

import (
	"fmt"
	"testing"
	"time"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testUser(joined time.Time) model.User {
	return model.User{Name: "Maria Santos", Email: "maria@example.com", JoinDate: joined}
}

func paidInvoice(client string, paidAt time.Time, taxRate string, items ...model.InvoiceItem) model.Invoice {
	inv := invoiceWith(model.InvoiceStatusPaid, taxRate, items...)
	inv.ClientName = client
	inv.PaidDate = &paidAt
	return inv
}

func TestCrediScoreZeroState(t *testing.T) {
	m := CalculateCrediScore(nil, nil, nil, testUser(testNow), testNow)

	assert.Equal(t, 0, m.Score)
	assert.Equal(t, model.ScoreLevelPoor, m.Level)
	assert.Zero(t, m.Factors.PaymentHistory)
	assert.Zero(t, m.Factors.FinancialConsistency)
	assert.Zero(t, m.Factors.ClientDiversity)
	assert.Zero(t, m.Factors.BusinessGrowth)
	assert.Zero(t, m.Factors.Reputation)
	assert.Equal(t, testNow, m.LastUpdated)
}

func TestPaymentHistoryFactor(t *testing.T) {
	invoices := []model.Invoice{
		paidInvoice("A", testNow, "0", item("1", "100")),
		paidInvoice("B", testNow, "0", item("1", "100")),
		invoiceWith(model.InvoiceStatusSent, "0", item("1", "100")),
	}

	m := CalculateCrediScore(invoices, nil, nil, testUser(testNow), testNow)

	assert.InDelta(t, 2.0/3.0*25, m.Factors.PaymentHistory, 1e-9)
}

func TestConsistencyFactorUniformRevenue(t *testing.T) {
	// Identical revenue every month: zero deviation, full 20 points.
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	invoices := []model.Invoice{
		paidInvoice("A", jan, "0", item("1", "1000")),
		paidInvoice("A", feb, "0", item("1", "1000")),
	}

	m := CalculateCrediScore(invoices, nil, nil, testUser(testNow), testNow)

	assert.InDelta(t, 20, m.Factors.FinancialConsistency, 1e-9)
}

func TestConsistencyFactorVolatileRevenue(t *testing.T) {
	// Months of 1000 and 3000: mean 2000, population stddev 1000,
	// CV 0.5 -> 20 - 5 = 15.
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	invoices := []model.Invoice{
		paidInvoice("A", jan, "0", item("1", "1000")),
		paidInvoice("A", feb, "0", item("1", "3000")),
	}

	m := CalculateCrediScore(invoices, nil, nil, testUser(testNow), testNow)

	assert.InDelta(t, 15, m.Factors.FinancialConsistency, 1e-9)
}

func TestConsistencyBucketsByIssueDateWhenUnpaidDateMissing(t *testing.T) {
	// No paid date recorded: the issue month is the bucket.
	inv := invoiceWith(model.InvoiceStatusPaid, "0", item("1", "500"))
	inv.PaidDate = nil
	inv.IssueDate = time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	m := CalculateCrediScore([]model.Invoice{inv}, nil, nil, testUser(testNow), testNow)

	// A single bucket has zero deviation.
	assert.InDelta(t, 20, m.Factors.FinancialConsistency, 1e-9)
}

func TestClientDiversityCap(t *testing.T) {
	var invoices []model.Invoice
	for i := 0; i < 20; i++ {
		inv := invoiceWith(model.InvoiceStatusDraft, "0", item("1", "100"))
		inv.ClientName = fmt.Sprintf("Client %02d", i)
		invoices = append(invoices, inv)
	}

	m := CalculateCrediScore(invoices, nil, nil, testUser(testNow), testNow)

	// 20 distinct clients x 2.5 would be 50 — capped at 15. Status is
	// irrelevant for diversity.
	assert.InDelta(t, 15, m.Factors.ClientDiversity, 1e-9)

	m = CalculateCrediScore(invoices[:3], nil, nil, testUser(testNow), testNow)
	assert.InDelta(t, 7.5, m.Factors.ClientDiversity, 1e-9)
}

func TestBusinessGrowthFactor(t *testing.T) {
	t.Run("age alone reaches the cap", func(t *testing.T) {
		joined := testNow.AddDate(-12, 0, 0)
		m := CalculateCrediScore(nil, nil, nil, testUser(joined), testNow)
		assert.InDelta(t, 20, m.Factors.BusinessGrowth, 1e-9)
	})

	t.Run("revenue is tax-inclusive", func(t *testing.T) {
		// Subtotal 15000 at 12% -> gross 16800; log10(16801)*3.
		inv := paidInvoice("A", testNow, "12", item("10", "1500"))
		m := CalculateCrediScore([]model.Invoice{inv}, nil, nil, testUser(testNow), testNow)
		assert.InDelta(t, 12.676, m.Factors.BusinessGrowth, 0.01)
	})

	t.Run("new business with no revenue scores zero", func(t *testing.T) {
		m := CalculateCrediScore(nil, nil, nil, testUser(testNow), testNow)
		assert.Zero(t, m.Factors.BusinessGrowth)
	})
}

func TestReputationFactor(t *testing.T) {
	feedback := []model.ClientFeedback{
		{ClientName: "A", Rating: 5, IsVerified: true},
		{ClientName: "B", Rating: 5, IsVerified: true},
	}

	m := CalculateCrediScore(nil, nil, feedback, testUser(testNow), testNow)

	// avg 5 -> 15, plus 2 verified -> 17.
	assert.InDelta(t, 17, m.Factors.Reputation, 1e-9)
}

func TestReputationVerifiedBonusCap(t *testing.T) {
	var feedback []model.ClientFeedback
	for i := 0; i < 8; i++ {
		feedback = append(feedback, model.ClientFeedback{Rating: 4, IsVerified: true})
	}

	m := CalculateCrediScore(nil, nil, feedback, testUser(testNow), testNow)

	// avg 4 -> 12, verified bonus capped at 5 -> 17.
	assert.InDelta(t, 17, m.Factors.Reputation, 1e-9)
}

func TestFactorBounds(t *testing.T) {
	// A maximal-looking input keeps every factor inside its documented range.
	var invoices []model.Invoice
	for i := 0; i < 30; i++ {
		inv := paidInvoice(fmt.Sprintf("Client %02d", i), testNow, "12", item("100", "9999"))
		invoices = append(invoices, inv)
	}
	var feedback []model.ClientFeedback
	for i := 0; i < 10; i++ {
		feedback = append(feedback, model.ClientFeedback{Rating: 5, IsVerified: true})
	}
	joined := testNow.AddDate(-30, 0, 0)

	m := CalculateCrediScore(invoices, nil, feedback, testUser(joined), testNow)

	assert.LessOrEqual(t, m.Factors.PaymentHistory, 25.0)
	assert.LessOrEqual(t, m.Factors.FinancialConsistency, 20.0)
	assert.LessOrEqual(t, m.Factors.ClientDiversity, 15.0)
	assert.LessOrEqual(t, m.Factors.BusinessGrowth, 20.0)
	assert.LessOrEqual(t, m.Factors.Reputation, 20.0)
	assert.LessOrEqual(t, m.Score, 100)
	assert.Equal(t, model.ScoreLevelExcellent, m.Level)
}

func TestScoreLevels(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{0, model.ScoreLevelPoor},
		{39, model.ScoreLevelPoor},
		{40, model.ScoreLevelFair},
		{54, model.ScoreLevelFair},
		{55, model.ScoreLevelGood},
		{69, model.ScoreLevelGood},
		{70, model.ScoreLevelVeryGood},
		{84, model.ScoreLevelVeryGood},
		{85, model.ScoreLevelExcellent},
		{100, model.ScoreLevelExcellent},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, scoreLevel(tc.score), "score %d", tc.score)
	}
}

func TestRecommendations(t *testing.T) {
	t.Run("no feedback always recommends reputation work", func(t *testing.T) {
		invoices := []model.Invoice{paidInvoice("A", testNow, "0", item("1", "100"))}
		m := CalculateCrediScore(invoices, nil, nil, testUser(testNow), testNow)
		assert.Contains(t, m.Recommendations, recReputation)
	})

	t.Run("strong reputation never recommends it", func(t *testing.T) {
		feedback := []model.ClientFeedback{{Rating: 5, IsVerified: true}}
		m := CalculateCrediScore(nil, nil, feedback, testUser(testNow), testNow)
		// avg 5 -> 15 + 1 verified = 16 >= 15.
		assert.NotContains(t, m.Recommendations, recReputation)
	})

	t.Run("weak everything produces the full fixed-order list", func(t *testing.T) {
		m := CalculateCrediScore(nil, nil, nil, testUser(testNow), testNow)
		assert.Equal(t, []string{
			recPaymentHistory,
			recConsistency,
			recDiversity,
			recGrowth,
			recReputation,
		}, m.Recommendations)
	})
}

func TestCrediScoreEndToEnd(t *testing.T) {
	// Single paid invoice, subtotal 15000 at 12%, brand-new business:
	// payment 25 + consistency 20 + diversity 2.5 + growth ~12.676 + 0
	// = ~60.18 -> 60 "Good".
	inv := paidInvoice("Acme Studio", testNow, "12", item("10", "1500"))

	m := CalculateCrediScore([]model.Invoice{inv}, nil, nil, testUser(testNow), testNow)

	assert.Equal(t, 60, m.Score)
	assert.Equal(t, model.ScoreLevelGood, m.Level)
}
