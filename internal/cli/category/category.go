package category

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/ledger"
)

type categoryCommand struct {
	action string
	kind   string
	name   string
}

func NewCommand() cli.Command {
	return &categoryCommand{}
}

func (c *categoryCommand) Description() string {
	return "Lists the available categories and adds custom expense categories"
}

func (c *categoryCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.action, "a", "list", "What action to perform. Supported values are: list, add")
	fs.StringVar(&c.kind, "type", "all", "Categories to list: income, expense or all")
	fs.StringVar(&c.name, "name", "", "Name of the custom expense category to add")
}

func (c *categoryCommand) Run(env *cli.Env) error {
	switch c.action {
	case "list":
		return c.list(env)
	case "add":
		return c.add(env)
	default:
		return fmt.Errorf("unsupported action: %s", c.action)
	}
}

func (c *categoryCommand) list(env *cli.Env) error {
	var kinds []ledger.Kind
	if strings.EqualFold(c.kind, "all") {
		kinds = []ledger.Kind{ledger.Expense, ledger.Income}
	} else {
		kind, err := ledger.ParseKind(c.kind)
		if err != nil {
			return err
		}
		kinds = []ledger.Kind{kind}
	}

	for i, kind := range kinds {
		if i > 0 {
			fmt.Fprintln(env.Out)
		}
		printCategories(env.Out, kind, env.Session.CategoriesFor(kind))
	}

	return nil
}

func printCategories(out io.Writer, kind ledger.Kind, names []string) {
	fmt.Fprintf(out, "%s CATEGORIES:\n", kind)
	for i, name := range names {
		fmt.Fprintf(out, "%2d. %s\n", i+1, name)
	}
}

// add registers a custom expense category. It is saved with the rest of the
// data so later runs can use it.
func (c *categoryCommand) add(env *cli.Env) error {
	name := strings.TrimSpace(c.name)
	if name == "" {
		return errors.New("category name cannot be empty")
	}

	if !env.Session.Categories.AddCustom(name) {
		return fmt.Errorf("category %q already exists", name)
	}

	env.MarkChanged()
	env.Logger.Info("Custom category added", "name", name)
	fmt.Fprintf(env.Out, "Custom category added: %s\n", name)

	return nil
}
