// Package store is the in-memory state container for a single user
// session: one mutable point in the system, mutated only through
// Dispatch. Every dispatch is an atomic transform from one complete
// state snapshot to the next, and the CrediScore is recomputed
// synchronously after any invoice, receipt or feedback mutation.
package store

import (
	"sync"
	"time"

	"backend/internal/finance"
	"backend/internal/model"

	"github.com/google/uuid"
)

// ActionType tags a dispatched mutation.
type ActionType string

const (
	ActionAddInvoice     ActionType = "ADD_INVOICE"
	ActionUpdateInvoice  ActionType = "UPDATE_INVOICE"
	ActionDeleteInvoice  ActionType = "DELETE_INVOICE"
	ActionAddReceipt     ActionType = "ADD_RECEIPT"
	ActionUpdateReceipt  ActionType = "UPDATE_RECEIPT"
	ActionDeleteReceipt  ActionType = "DELETE_RECEIPT"
	ActionAddFeedback    ActionType = "ADD_FEEDBACK"
	ActionUpdateFeedback ActionType = "UPDATE_FEEDBACK"
	ActionDeleteFeedback ActionType = "DELETE_FEEDBACK"
	ActionAddGoal        ActionType = "ADD_GOAL"
	ActionUpdateGoal     ActionType = "UPDATE_GOAL"
	ActionDeleteGoal     ActionType = "DELETE_GOAL"
	ActionUpdateUser     ActionType = "UPDATE_USER"
	ActionSetCrediScore  ActionType = "SET_CREDISCORE"
	ActionToggleLanguage ActionType = "TOGGLE_LANGUAGE"
)

// Supported locales for the language toggle.
const (
	LanguageEnglish  = "en"
	LanguageFilipino = "fil"
)

// UserPatch is a partial user update; nil fields are left untouched
// (shallow merge).
type UserPatch struct {
	Name         *string
	Email        *string
	BusinessName *string
	AvatarURL    *string
	LogoURL      *string
	Address      *string
	TaxID        *string
	Phone        *string
	Website      *string
}

// Action carries a mutation into Dispatch. Exactly the payload field
// matching the type is read; ID is used by delete actions.
type Action struct {
	Type       ActionType
	Invoice    *model.Invoice
	Receipt    *model.Receipt
	Feedback   *model.ClientFeedback
	Goal       *model.FinancialGoal
	UserPatch  *UserPatch
	CrediScore *model.CrediScoreMetrics
	ID         uuid.UUID
}

// State is one complete snapshot of the session.
type State struct {
	User       model.User
	Invoices   []model.Invoice
	Receipts   []model.Receipt
	Feedback   []model.ClientFeedback
	Goals      []model.FinancialGoal
	CrediScore model.CrediScoreMetrics
	Language   string
}

// Store serializes dispatches with a mutex: one writer at a time per
// account, so the recompute-after-mutation invariant holds even when a
// session is shared across request contexts.
type Store struct {
	mu    sync.Mutex
	state State
	now   func() time.Time
}

// New creates a store for the given user with an initial score computed
// from the empty collections.
func New(user model.User) *Store {
	s := &Store{
		state: State{User: user, Language: LanguageEnglish},
		now:   time.Now,
	}
	s.state.CrediScore = finance.CalculateCrediScore(nil, nil, nil, user, s.now())
	return s
}

// SetClock overrides the clock used for score recomputation. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// State returns a snapshot with copied collections so readers never
// observe a half-applied dispatch.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	snap := s.state
	snap.Invoices = append([]model.Invoice(nil), s.state.Invoices...)
	snap.Receipts = append([]model.Receipt(nil), s.state.Receipts...)
	snap.Feedback = append([]model.ClientFeedback(nil), s.state.Feedback...)
	snap.Goals = append([]model.FinancialGoal(nil), s.state.Goals...)
	snap.CrediScore.Recommendations = append([]string(nil), s.state.CrediScore.Recommendations...)
	return snap
}

// Dispatch applies the action and returns the resulting snapshot.
// Unknown action types and id misses on update/delete are silent
// no-ops — callers that need to distinguish must check beforehand.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	rescore := false

	switch a.Type {
	case ActionAddInvoice:
		if a.Invoice != nil {
			s.state.Invoices = append(s.state.Invoices, *a.Invoice)
			rescore = true
		}
	case ActionUpdateInvoice:
		if a.Invoice != nil {
			for i := range s.state.Invoices {
				if s.state.Invoices[i].ID == a.Invoice.ID {
					s.state.Invoices[i] = *a.Invoice
					break
				}
			}
			rescore = true
		}
	case ActionDeleteInvoice:
		s.state.Invoices = deleteByID(s.state.Invoices, a.ID, func(v model.Invoice) uuid.UUID { return v.ID })
		rescore = true

	case ActionAddReceipt:
		if a.Receipt != nil {
			s.state.Receipts = append(s.state.Receipts, *a.Receipt)
			rescore = true
		}
	case ActionUpdateReceipt:
		if a.Receipt != nil {
			for i := range s.state.Receipts {
				if s.state.Receipts[i].ID == a.Receipt.ID {
					s.state.Receipts[i] = *a.Receipt
					break
				}
			}
			rescore = true
		}
	case ActionDeleteReceipt:
		s.state.Receipts = deleteByID(s.state.Receipts, a.ID, func(v model.Receipt) uuid.UUID { return v.ID })
		rescore = true

	case ActionAddFeedback:
		if a.Feedback != nil {
			// Feedback is the one newest-first collection: prepend.
			s.state.Feedback = append([]model.ClientFeedback{*a.Feedback}, s.state.Feedback...)
			rescore = true
		}
	case ActionUpdateFeedback:
		if a.Feedback != nil {
			for i := range s.state.Feedback {
				if s.state.Feedback[i].ID == a.Feedback.ID {
					s.state.Feedback[i] = *a.Feedback
					break
				}
			}
			rescore = true
		}
	case ActionDeleteFeedback:
		s.state.Feedback = deleteByID(s.state.Feedback, a.ID, func(v model.ClientFeedback) uuid.UUID { return v.ID })
		rescore = true

	case ActionAddGoal:
		if a.Goal != nil {
			s.state.Goals = append(s.state.Goals, *a.Goal)
		}
	case ActionUpdateGoal:
		if a.Goal != nil {
			for i := range s.state.Goals {
				if s.state.Goals[i].ID == a.Goal.ID {
					s.state.Goals[i] = *a.Goal
					break
				}
			}
		}
	case ActionDeleteGoal:
		s.state.Goals = deleteByID(s.state.Goals, a.ID, func(v model.FinancialGoal) uuid.UUID { return v.ID })

	case ActionUpdateUser:
		if a.UserPatch != nil {
			mergeUser(&s.state.User, *a.UserPatch)
		}
	case ActionSetCrediScore:
		if a.CrediScore != nil {
			s.state.CrediScore = *a.CrediScore
		}
	case ActionToggleLanguage:
		if s.state.Language == LanguageEnglish {
			s.state.Language = LanguageFilipino
		} else {
			s.state.Language = LanguageEnglish
		}
	default:
		// Unknown tags fall through unchanged.
	}

	if rescore {
		s.state.CrediScore = finance.CalculateCrediScore(
			s.state.Invoices, s.state.Receipts, s.state.Feedback, s.state.User, s.now())
	}

	return s.snapshot()
}

func deleteByID[T any](items []T, id uuid.UUID, idOf func(T) uuid.UUID) []T {
	for i, v := range items {
		if idOf(v) == id {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}

func mergeUser(u *model.User, p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.BusinessName != nil {
		u.BusinessName = *p.BusinessName
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.LogoURL != nil {
		u.LogoURL = *p.LogoURL
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.TaxID != nil {
		u.TaxID = *p.TaxID
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Website != nil {
		u.Website = *p.Website
	}
}
