package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	daysPerMonth = 30
	daysPerWeek  = 7
	daysPerYear  = 365
)

type SavingsGoal struct {
	id            int
	Name          string
	TargetAmount  decimal.Decimal
	currentAmount decimal.Decimal
	StartDate     time.Time
	TargetDate    time.Time
	Description   string
}

func NewSavingsGoal(id int, name string, target decimal.Decimal, startDate, targetDate time.Time, description string) *SavingsGoal {
	return &SavingsGoal{
		id:            id,
		Name:          name,
		TargetAmount:  target,
		currentAmount: decimal.Zero,
		StartDate:     Day(startDate),
		TargetDate:    Day(targetDate),
		Description:   description,
	}
}

func (g *SavingsGoal) ID() int {
	return g.id
}

func (g *SavingsGoal) CurrentAmount() decimal.Decimal {
	return g.currentAmount
}

// SetCurrentAmount stores amount, clamped to zero.
func (g *SavingsGoal) SetCurrentAmount(amount decimal.Decimal) {
	g.currentAmount = decimal.Max(decimal.Zero, amount)
}

// AddContribution adds a positive amount to the saved total and reports
// whether it was accepted.
func (g *SavingsGoal) AddContribution(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	g.currentAmount = g.currentAmount.Add(amount)
	return true
}

func (g *SavingsGoal) RemainingAmount() decimal.Decimal {
	return decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.currentAmount))
}

func (g *SavingsGoal) ProgressPercentage() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	return decimal.Min(hundred, g.currentAmount.Div(g.TargetAmount).Mul(hundred)).InexactFloat64()
}

func (g *SavingsGoal) IsAchieved() bool {
	return g.currentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// DaysRemaining is negative once the target date has passed.
func (g *SavingsGoal) DaysRemaining(now time.Time) int {
	return DaysBetween(now, g.TargetDate)
}

func (g *SavingsGoal) TotalDays() int {
	return DaysBetween(g.StartDate, g.TargetDate)
}

// RequiredMonthlySavings uses 30-day months. With no days left the whole
// remainder is due.
func (g *SavingsGoal) RequiredMonthlySavings(now time.Time) decimal.Decimal {
	return g.requiredPer(now, daysPerMonth)
}

func (g *SavingsGoal) RequiredWeeklySavings(now time.Time) decimal.Decimal {
	return g.requiredPer(now, daysPerWeek)
}

func (g *SavingsGoal) requiredPer(now time.Time, periodDays int64) decimal.Decimal {
	days := g.DaysRemaining(now)
	if days <= 0 {
		return g.RemainingAmount()
	}
	return g.RemainingAmount().Mul(decimal.NewFromInt(periodDays)).Div(decimal.NewFromInt(int64(days)))
}

func (g *SavingsGoal) TimeRemainingText(now time.Time) string {
	days := g.DaysRemaining(now)

	switch {
	case days < 0:
		return "Goal deadline passed"
	case days == 0:
		return "Goal deadline is today"
	case days == 1:
		return "1 day remaining"
	case days < daysPerMonth:
		return fmt.Sprintf("%d days remaining", days)
	case days < daysPerYear:
		return plural(days/daysPerMonth, "month") + " remaining"
	default:
		text := plural(days/daysPerYear, "year")
		if months := (days % daysPerYear) / daysPerMonth; months > 0 {
			text += ", " + plural(months, "month")
		}
		return text + " remaining"
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
