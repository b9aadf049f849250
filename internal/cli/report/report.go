package report

import (
	"embed"
	"flag"
	"fmt"
	"io"
	"path"
	"text/template"
	"time"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/ledger"
	internalReport "github.com/GustavoCaso/financeledger/internal/report"
	"github.com/GustavoCaso/financeledger/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

type reportCommand struct {
	month   int
	year    int
	summary bool
}

func NewCommand() cli.Command {
	return &reportCommand{}
}

func (c *reportCommand) Description() string {
	return "Displays monthly and yearly financial reports"
}

func (c *reportCommand) SetFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.month, "month", -1, "what month (1-12) to use for generating the monthly report. 0 generates the yearly report")
	fs.IntVar(&c.year, "year", -1, "what year to use for generating the report. Defaults to the current year")
	fs.BoolVar(&c.summary, "summary", false, "show the current month summary")
}

func (c *reportCommand) Run(env *cli.Env) error {
	session := env.Session

	if len(session.Transactions) == 0 {
		fmt.Fprintln(env.Out, "No transactions found. Add some transactions first!")
		return nil
	}

	if c.summary {
		return renderTemplate(env.Out, "summary.tmpl", internalReport.GenerateQuick(session))
	}

	now := session.CurrentMonth()
	year := c.year
	if year <= 0 {
		year = now.Year
	}

	switch {
	case c.month == -1 && c.year == -1:
		// Using default values we display the monthly report of the current month
		return c.monthly(env, now)
	case c.month > 0 && c.month <= 12:
		return c.monthly(env, ledger.NewYearMonth(year, time.Month(c.month)))
	case c.month == 0 || c.month == -1:
		env.Logger.Debug("Generating yearly report", "year", year)
		return renderTemplate(env.Out, "yearly.tmpl", internalReport.GenerateYearly(session, year))
	default:
		return fmt.Errorf("invalid month %d, expected 1-12", c.month)
	}
}

func (c *reportCommand) monthly(env *cli.Env, month ledger.YearMonth) error {
	env.Logger.Debug("Generating monthly report", "month", month.String())
	return renderTemplate(env.Out, "monthly.tmpl", internalReport.GenerateMonthly(env.Session, month, env.NearLimit))
}

var templateFuncs = template.FuncMap{
	"money":       cli.Money,
	"percentage":  util.FormatPercentage,
	"colorOutput": util.ColorOutput,
	"signColor":   util.SignColor,
	"statusLabel": cli.StatusLabel,
}

func renderTemplate(out io.Writer, templateName string, value interface{}) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}
	t, err := template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl))
	if err != nil {
		return err
	}
	if err = t.Execute(out, value); err != nil {
		return fmt.Errorf("unable to render report: %w", err)
	}

	return nil
}
