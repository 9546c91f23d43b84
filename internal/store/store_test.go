package store

import (
	"testing"
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(model.User{
		ID:       uuid.New(),
		Name:     "Maria Santos",
		Email:    "maria@example.com",
		JoinDate: fixedNow.AddDate(-1, 0, 0),
	})
	s.SetClock(func() time.Time { return fixedNow })
	return s
}

func paidInvoice() model.Invoice {
	paid := fixedNow
	return model.Invoice{
		ID:         uuid.New(),
		InvoiceNo:  "CB-2024-0001",
		ClientName: "Acme Studio",
		Status:     model.InvoiceStatusPaid,
		IssueDate:  fixedNow,
		PaidDate:   &paid,
		TaxRate:    decimal.NewFromInt(12),
		Items: []model.InvoiceItem{
			{Description: "Design work", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(1500)},
		},
	}
}

func TestDispatchAddInvoiceRecomputesScore(t *testing.T) {
	s := newTestStore(t)
	before := s.State().CrediScore.Score

	after := s.Dispatch(Action{Type: ActionAddInvoice, Invoice: ptr(paidInvoice())})

	require.Len(t, after.Invoices, 1)
	assert.Greater(t, after.CrediScore.Score, before)
	assert.Equal(t, fixedNow, after.CrediScore.LastUpdated)
}

func TestDispatchUpdateInvoice(t *testing.T) {
	s := newTestStore(t)
	inv := paidInvoice()
	s.Dispatch(Action{Type: ActionAddInvoice, Invoice: &inv})

	inv.ClientName = "Beta Corp"
	after := s.Dispatch(Action{Type: ActionUpdateInvoice, Invoice: &inv})

	require.Len(t, after.Invoices, 1)
	assert.Equal(t, "Beta Corp", after.Invoices[0].ClientName)
}

func TestDispatchUpdateMissingIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(Action{Type: ActionAddInvoice, Invoice: ptr(paidInvoice())})
	before := s.State()

	ghost := paidInvoice() // fresh id, not in the store
	after := s.Dispatch(Action{Type: ActionUpdateInvoice, Invoice: &ghost})

	assert.Equal(t, before.Invoices, after.Invoices)
}

func TestDispatchDeleteInvoice(t *testing.T) {
	s := newTestStore(t)
	inv := paidInvoice()
	s.Dispatch(Action{Type: ActionAddInvoice, Invoice: &inv})

	after := s.Dispatch(Action{Type: ActionDeleteInvoice, ID: inv.ID})
	assert.Empty(t, after.Invoices)
	assert.Zero(t, after.CrediScore.Factors.PaymentHistory)
}

func TestDispatchDeleteMissingIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	inv := paidInvoice()
	s.Dispatch(Action{Type: ActionAddInvoice, Invoice: &inv})

	after := s.Dispatch(Action{Type: ActionDeleteInvoice, ID: uuid.New()})
	assert.Len(t, after.Invoices, 1)
}

func TestDispatchFeedbackPrepends(t *testing.T) {
	s := newTestStore(t)
	first := model.ClientFeedback{ID: uuid.New(), ClientName: "A", Rating: 5}
	second := model.ClientFeedback{ID: uuid.New(), ClientName: "B", Rating: 4}

	s.Dispatch(Action{Type: ActionAddFeedback, Feedback: &first})
	after := s.Dispatch(Action{Type: ActionAddFeedback, Feedback: &second})

	require.Len(t, after.Feedback, 2)
	assert.Equal(t, "B", after.Feedback[0].ClientName, "feedback is newest-first")
	assert.Equal(t, "A", after.Feedback[1].ClientName)
}

func TestDispatchGoalDoesNotRescore(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(Action{Type: ActionAddInvoice, Invoice: ptr(paidInvoice())})
	before := s.State().CrediScore

	goal := model.FinancialGoal{ID: uuid.New(), Title: "New laptop", TargetAmount: decimal.NewFromInt(80000)}
	after := s.Dispatch(Action{Type: ActionAddGoal, Goal: &goal})

	require.Len(t, after.Goals, 1)
	assert.Equal(t, before, after.CrediScore)
}

func TestDispatchUpdateUserShallowMerge(t *testing.T) {
	s := newTestStore(t)

	name := "Maria S. Santos"
	after := s.Dispatch(Action{Type: ActionUpdateUser, UserPatch: &UserPatch{Name: &name}})

	assert.Equal(t, "Maria S. Santos", after.User.Name)
	assert.Equal(t, "maria@example.com", after.User.Email, "untouched fields survive the merge")
}

func TestDispatchToggleLanguage(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, LanguageFilipino, s.Dispatch(Action{Type: ActionToggleLanguage}).Language)
	assert.Equal(t, LanguageEnglish, s.Dispatch(Action{Type: ActionToggleLanguage}).Language)
}

func TestDispatchUnknownActionIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(Action{Type: ActionAddInvoice, Invoice: ptr(paidInvoice())})
	before := s.State()

	after := s.Dispatch(Action{Type: ActionType("MAKE_COFFEE")})

	assert.Equal(t, before, after)
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore(t)
	inv := paidInvoice()
	s.Dispatch(Action{Type: ActionAddInvoice, Invoice: &inv})

	snap := s.State()
	snap.Invoices[0].ClientName = "Mutated"

	assert.Equal(t, "Acme Studio", s.State().Invoices[0].ClientName)
}

func ptr[T any](v T) *T { return &v }
