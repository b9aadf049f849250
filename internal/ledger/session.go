package ledger

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GustavoCaso/financeledger/internal/category"
	"github.com/GustavoCaso/financeledger/internal/clock"
)

var ErrGoalNotFound = errors.New("savings goal not found")

// Session owns the in-memory ledger: transactions, savings goals, the active
// budget, the category registry and the ID sequences. Sessions share nothing,
// so several can live in one process.
type Session struct {
	Transactions []*Transaction
	Goals        []*SavingsGoal
	Budget       *Budget
	Categories   *category.Registry

	clock          clock.Clock
	transactionIDs Sequence
	goalIDs        Sequence
}

func NewSession(c clock.Clock) *Session {
	if c == nil {
		c = clock.System{}
	}

	return &Session{
		Budget:     NewBudget(YearMonthOf(c.Now())),
		Categories: category.NewRegistry(),
		clock:      c,
	}
}

func (s *Session) Now() time.Time {
	return s.clock.Now()
}

func (s *Session) Today() time.Time {
	return Day(s.clock.Now())
}

func (s *Session) CurrentMonth() YearMonth {
	return YearMonthOf(s.clock.Now())
}

// AddTransaction records a new transaction with the next transaction ID. A
// zero date means today. Amount and category are expected to be validated by
// the caller.
func (s *Session) AddTransaction(kind Kind, amount decimal.Decimal, categoryName, description string, date time.Time) *Transaction {
	if date.IsZero() {
		date = s.Today()
	}

	tx := NewTransaction(s.transactionIDs.Next(), kind, amount, categoryName, description, date)
	s.Transactions = append(s.Transactions, tx)
	return tx
}

// RestoreTransaction appends a previously stored transaction and moves the
// transaction sequence past its ID.
func (s *Session) RestoreTransaction(tx *Transaction) {
	s.transactionIDs.Observe(tx.ID())
	s.Transactions = append(s.Transactions, tx)
}

// AddGoal creates a savings goal starting today.
func (s *Session) AddGoal(name string, target decimal.Decimal, targetDate time.Time, description string) *SavingsGoal {
	goal := NewSavingsGoal(s.goalIDs.Next(), name, target, s.Today(), targetDate, description)
	s.Goals = append(s.Goals, goal)
	return goal
}

func (s *Session) RestoreGoal(goal *SavingsGoal) {
	s.goalIDs.Observe(goal.ID())
	s.Goals = append(s.Goals, goal)
}

func (s *Session) FindGoal(id int) (*SavingsGoal, error) {
	for _, goal := range s.Goals {
		if goal.ID() == id {
			return goal, nil
		}
	}
	return nil, ErrGoalNotFound
}

// RemoveGoal deletes the goal with id. Removing an unknown ID is a no-op that
// returns false.
func (s *Session) RemoveGoal(id int) bool {
	before := len(s.Goals)
	s.Goals = slices.DeleteFunc(s.Goals, func(g *SavingsGoal) bool {
		return g.ID() == id
	})
	return len(s.Goals) != before
}

// Restore replaces the session collections with stored data. ID sequences only
// move forward, so IDs handed out before the restore stay unique.
func (s *Session) Restore(transactions []*Transaction, budget *Budget, goals []*SavingsGoal) {
	s.Transactions = nil
	for _, tx := range transactions {
		s.RestoreTransaction(tx)
	}

	s.Goals = nil
	for _, goal := range goals {
		s.RestoreGoal(goal)
	}

	if budget != nil {
		s.Budget = budget
	}
}

func (s *Session) NextTransactionID() int {
	return s.transactionIDs.Peek()
}

func (s *Session) NextGoalID() int {
	return s.goalIDs.Peek()
}

func (s *Session) CategoriesFor(kind Kind) []string {
	if kind == Income {
		return s.Categories.Income()
	}
	return s.Categories.Expense()
}

// CategoryAt resolves the 1-based category index shown to users.
func (s *Session) CategoryAt(kind Kind, index int) (string, bool) {
	if kind == Income {
		return s.Categories.IncomeAt(index)
	}
	return s.Categories.ExpenseAt(index)
}

func (s *Session) IsValidCategory(name string, kind Kind) bool {
	if kind == Income {
		return s.Categories.IsIncome(name)
	}
	return s.Categories.IsExpense(name)
}
