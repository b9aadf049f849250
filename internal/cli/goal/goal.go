package goal

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/util"
)

type goalCommand struct {
	action      string
	id          int
	name        string
	target      string
	date        string
	description string
	amount      string
}

func NewCommand() cli.Command {
	return &goalCommand{}
}

func (c *goalCommand) Description() string {
	return "Creates savings goals and tracks contributions towards them"
}

func (c *goalCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.action, "a", "list", "What action to perform. Supported values are: create, list, contribute, delete")
	fs.IntVar(&c.id, "id", 0, "Goal ID for contribute and delete")
	fs.StringVar(&c.name, "name", "", "Goal name")
	fs.StringVar(&c.target, "target", "", "Target amount, must be positive")
	fs.StringVar(&c.date, "date", "", "Target date (YYYY-MM-DD)")
	fs.StringVar(&c.description, "description", "", "Optional goal description")
	fs.StringVar(&c.amount, "amount", "", "Contribution amount, must be positive")
}

func (c *goalCommand) Run(env *cli.Env) error {
	switch c.action {
	case "create":
		return c.create(env)
	case "list":
		return c.list(env)
	case "contribute":
		return c.contribute(env)
	case "delete":
		return c.delete(env)
	default:
		return fmt.Errorf("unsupported action: %s", c.action)
	}
}

func (c *goalCommand) create(env *cli.Env) error {
	name := strings.TrimSpace(c.name)
	if name == "" {
		return errors.New("goal name cannot be empty")
	}

	target, err := cli.ParseAmount(c.target)
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

	targetDate, err := ledger.ParseDate(c.date)
	if err != nil {
		return fmt.Errorf("invalid target date %q, expected YYYY-MM-DD: %w", c.date, err)
	}

	goal := env.Session.AddGoal(name, target, targetDate, strings.TrimSpace(c.description))
	env.MarkChanged()
	env.Logger.Info("Savings goal created", "id", goal.ID(), "name", goal.Name)

	if goal.TargetDate.Before(env.Session.Today()) {
		fmt.Fprintln(env.Out, util.ColorOutput("Target date is in the past. Goal created anyway.", "yellow"))
	}

	fmt.Fprintln(env.Out, "Savings goal created!")
	printGoal(env.Out, goal, env.Session.Now())

	return nil
}

func (c *goalCommand) list(env *cli.Env) error {
	if len(env.Session.Goals) == 0 {
		fmt.Fprintln(env.Out, "No savings goals found. Create some goals first!")
		return nil
	}

	now := env.Session.Now()
	separator := strings.Repeat("-", 50)

	fmt.Fprintln(env.Out, "=== YOUR SAVINGS GOALS ===")
	for _, goal := range env.Session.Goals {
		fmt.Fprintln(env.Out, separator)
		printGoal(env.Out, goal, now)

		if goal.IsAchieved() {
			fmt.Fprintln(env.Out, util.ColorOutput("Congratulations! Goal achieved!", "green", "bold"))
		} else if goal.DaysRemaining(now) < 0 {
			fmt.Fprintln(env.Out, util.ColorOutput("Goal deadline has passed.", "red"))
		}
	}

	return nil
}

func (c *goalCommand) contribute(env *cli.Env) error {
	goal, err := env.Session.FindGoal(c.id)
	if err != nil {
		return fmt.Errorf("goal %d: %w", c.id, err)
	}

	amount, err := cli.ParseAmount(c.amount)
	if err != nil {
		return err
	}

	wasAchieved := goal.IsAchieved()
	goal.AddContribution(amount)
	env.MarkChanged()
	env.Logger.Info("Savings goal updated", "id", goal.ID(), "amount", amount.String())

	fmt.Fprintln(env.Out, "Goal updated!")
	printGoal(env.Out, goal, env.Session.Now())

	if goal.IsAchieved() && !wasAchieved {
		fmt.Fprintln(env.Out)
		fmt.Fprintln(env.Out, util.ColorOutput("CONGRATULATIONS!", "green", "bold"))
		fmt.Fprintf(env.Out, "You've achieved your savings goal: %s\n", goal.Name)
	}

	return nil
}

func (c *goalCommand) delete(env *cli.Env) error {
	if !env.Session.RemoveGoal(c.id) {
		return fmt.Errorf("goal %d: %w", c.id, ledger.ErrGoalNotFound)
	}

	env.MarkChanged()
	env.Logger.Info("Savings goal deleted", "id", c.id)
	fmt.Fprintln(env.Out, "Goal deleted successfully.")

	return nil
}

func printGoal(out io.Writer, goal *ledger.SavingsGoal, now time.Time) {
	fmt.Fprintf(out, "Goal #%d: %s\n", goal.ID(), goal.Name)
	fmt.Fprintf(out, "  Target: %s | Current: %s (%s)\n",
		cli.Money(goal.TargetAmount),
		cli.Money(goal.CurrentAmount()),
		util.FormatPercentage(goal.ProgressPercentage()),
	)
	fmt.Fprintf(out, "  Remaining: %s\n", cli.Money(goal.RemainingAmount()))
	fmt.Fprintf(out, "  %s (%s)\n", goal.TimeRemainingText(now), ledger.FormatDate(goal.TargetDate))

	if !goal.IsAchieved() {
		fmt.Fprintf(out, "  Monthly savings needed: %s | Weekly: %s\n",
			cli.Money(goal.RequiredMonthlySavings(now)),
			cli.Money(goal.RequiredWeeklySavings(now)),
		)
	}

	if goal.Description != "" {
		fmt.Fprintf(out, "  %s\n", goal.Description)
	}
}
