package finance

import (
	"math"
	"time"

	"backend/internal/model"

	"github.com/shopspring/decimal"
)

// Factor maxima and recommendation thresholds.
const (
	maxPaymentHistory = 25.0
	maxConsistency    = 20.0
	maxDiversity      = 15.0
	maxGrowth         = 20.0
	maxReputation     = 20.0

	recPaymentThreshold     = 20.0
	recConsistencyThreshold = 15.0
	recDiversityThreshold   = 10.0
	recGrowthThreshold      = 15.0
	recReputationThreshold  = 15.0
)

// Advisory strings appended in fixed order when a factor falls below its
// threshold. Checks are independent, never mutually exclusive.
const (
	recPaymentHistory = "Follow up on unpaid invoices to strengthen your payment history."
	recConsistency    = "Aim for steadier month-to-month revenue to improve financial consistency."
	recDiversity      = "Take on work from more clients to diversify your income base."
	recGrowth         = "Grow your total billed revenue to lift your business growth score."
	recReputation     = "Ask satisfied clients to leave feedback to build your professional reputation."
)

// CalculateCrediScore derives the 0-100 composite creditworthiness score
// from invoices, receipts, feedback and the user's business tenure.
// The caller passes now so the function stays pure.
//
// Each factor carries exactly the clamp its formula specifies and no
// global clamp is applied to the sum: the maxima add up to 100, so a
// well-formed input cannot exceed it.
func CalculateCrediScore(invoices []model.Invoice, receipts []model.Receipt, feedback []model.ClientFeedback, user model.User, now time.Time) model.CrediScoreMetrics {
	factors := model.CrediScoreFactors{
		PaymentHistory:       paymentHistoryScore(invoices),
		FinancialConsistency: consistencyScore(invoices),
		ClientDiversity:      diversityScore(invoices),
		BusinessGrowth:       growthScore(invoices, user, now),
		Reputation:           reputationScore(feedback),
	}

	total := factors.PaymentHistory +
		factors.FinancialConsistency +
		factors.ClientDiversity +
		factors.BusinessGrowth +
		factors.Reputation
	score := int(math.Round(total))

	return model.CrediScoreMetrics{
		Score:           score,
		Level:           scoreLevel(score),
		Factors:         factors,
		Recommendations: recommendations(factors),
		LastUpdated:     now,
	}
}

// paymentHistoryScore: share of invoices that are paid, scaled to 25.
func paymentHistoryScore(invoices []model.Invoice) float64 {
	if len(invoices) == 0 {
		return 0
	}
	paid := 0
	for _, inv := range invoices {
		if inv.Status == model.InvoiceStatusPaid {
			paid++
		}
	}
	return float64(paid) / float64(len(invoices)) * maxPaymentHistory
}

// consistencyScore penalizes volatile monthly revenue via the
// coefficient of variation: max(0, 20 - (stddev/mean)*10). Revenue here
// is tax-inclusive, bucketed by paid month (issue month when unpaid).
func consistencyScore(invoices []model.Invoice) float64 {
	monthly := map[string]float64{}
	for _, inv := range invoices {
		if inv.Status != model.InvoiceStatusPaid {
			continue
		}
		key := inv.RevenueDate().Format("2006-01")
		monthly[key] += grossTotal(inv)
	}
	if len(monthly) == 0 {
		return 0
	}

	var sum float64
	for _, v := range monthly {
		sum += v
	}
	mean := sum / float64(len(monthly))
	if mean <= 0 {
		return 0
	}

	var variance float64
	for _, v := range monthly {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(monthly)) // population variance
	stdDev := math.Sqrt(variance)

	return math.Max(0, maxConsistency-(stdDev/mean)*10)
}

// diversityScore: 2.5 points per distinct client name across ALL
// invoices regardless of status, capped at 15.
func diversityScore(invoices []model.Invoice) float64 {
	clients := map[string]struct{}{}
	for _, inv := range invoices {
		clients[inv.ClientName] = struct{}{}
	}
	return math.Min(maxDiversity, float64(len(clients))*2.5)
}

// growthScore combines total realized (tax-inclusive) revenue with
// business age: min(20, log10(revenue+1)*3 + ageYears*2).
func growthScore(invoices []model.Invoice, user model.User, now time.Time) float64 {
	var totalRevenue float64
	for _, inv := range invoices {
		if inv.Status == model.InvoiceStatusPaid {
			totalRevenue += grossTotal(inv)
		}
	}
	ageYears := now.Sub(user.JoinDate).Hours() / (24 * 365)
	return math.Min(maxGrowth, math.Log10(totalRevenue+1)*3+ageYears*2)
}

// reputationScore: average rating scaled to 15, plus one point per
// verified feedback up to 5. No feedback means an average of 0.
func reputationScore(feedback []model.ClientFeedback) float64 {
	var avg float64
	if len(feedback) > 0 {
		sum := 0
		for _, f := range feedback {
			sum += f.Rating
		}
		avg = float64(sum) / float64(len(feedback))
	}

	verified := 0
	for _, f := range feedback {
		if f.IsVerified {
			verified++
		}
	}

	return (avg/5)*15 + math.Min(5, float64(verified))
}

func scoreLevel(score int) string {
	switch {
	case score >= 85:
		return model.ScoreLevelExcellent
	case score >= 70:
		return model.ScoreLevelVeryGood
	case score >= 55:
		return model.ScoreLevelGood
	case score >= 40:
		return model.ScoreLevelFair
	default:
		return model.ScoreLevelPoor
	}
}

func recommendations(f model.CrediScoreFactors) []string {
	recs := []string{}
	if f.PaymentHistory < recPaymentThreshold {
		recs = append(recs, recPaymentHistory)
	}
	if f.FinancialConsistency < recConsistencyThreshold {
		recs = append(recs, recConsistency)
	}
	if f.ClientDiversity < recDiversityThreshold {
		recs = append(recs, recDiversity)
	}
	if f.BusinessGrowth < recGrowthThreshold {
		recs = append(recs, recGrowth)
	}
	if f.Reputation < recReputationThreshold {
		recs = append(recs, recReputation)
	}
	return recs
}

// grossTotal is the tax-inclusive invoice amount as a float, the figure
// the scoring formulas work in. The dashboard summary intentionally uses
// the tax-exclusive subtotal instead.
func grossTotal(inv model.Invoice) float64 {
	rate := inv.TaxRate.Div(decimal.NewFromInt(100))
	return inv.Subtotal().Mul(decimal.NewFromInt(1).Add(rate)).InexactFloat64()
}
