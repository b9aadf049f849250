package category

import (
	"slices"
	"strings"
)

var builtinExpense = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Insurance",
	"Miscellaneous",
}

var builtinIncome = []string{
	"Salary",
	"Freelance",
	"Business",
	"Investments",
	"Gifts",
	"Other Income",
}

// Registry holds the built-in category taxonomy plus the custom expense
// categories added during a session.
type Registry struct {
	custom []string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Expense returns the built-in expense categories followed by the custom ones.
func (r *Registry) Expense() []string {
	all := make([]string, 0, len(builtinExpense)+len(r.custom))
	all = append(all, builtinExpense...)
	return append(all, r.custom...)
}

func (r *Registry) Income() []string {
	return slices.Clone(builtinIncome)
}

func (r *Registry) Custom() []string {
	return slices.Clone(r.custom)
}

// AddCustom appends name to the custom categories. Names are trimmed and
// compared case-insensitively against every known category, so "food & dining"
// is rejected as a duplicate of "Food & Dining". It reports whether the name
// was added.
func (r *Registry) AddCustom(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}

	if containsFold(r.custom, name) || containsFold(builtinExpense, name) || containsFold(builtinIncome, name) {
		return false
	}

	r.custom = append(r.custom, name)
	return true
}

func (r *Registry) IsExpense(name string) bool {
	return slices.Contains(r.Expense(), name)
}

func (r *Registry) IsIncome(name string) bool {
	return slices.Contains(builtinIncome, name)
}

// ExpenseAt returns the expense category at the 1-based index shown to users.
func (r *Registry) ExpenseAt(index int) (string, bool) {
	return at(r.Expense(), index)
}

// IncomeAt returns the income category at the 1-based index shown to users.
func (r *Registry) IncomeAt(index int) (string, bool) {
	return at(builtinIncome, index)
}

func at(names []string, index int) (string, bool) {
	if index < 1 || index > len(names) {
		return "", false
	}
	return names[index-1], true
}

func containsFold(names []string, name string) bool {
	return slices.ContainsFunc(names, func(n string) bool {
		return strings.EqualFold(n, name)
	})
}
