package export

import (
	"flag"
	"fmt"
	"os"

	"github.com/GustavoCaso/financeledger/internal/cli"
	exportPkg "github.com/GustavoCaso/financeledger/internal/export"
)

const dirPerm = 0o755

type exportCommand struct {
	output string
}

func NewCommand() cli.Command {
	return &exportCommand{}
}

func (c *exportCommand) Description() string {
	return "Exports all transactions to a CSV file"
}

func (c *exportCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.output, "o", "", "Export file. Relative paths are placed in the data directory. Defaults to transactions_export_<date>.csv")
}

func (c *exportCommand) Run(env *cli.Env) error {
	transactions := env.Session.Transactions
	if len(transactions) == 0 {
		fmt.Fprintln(env.Out, "No transactions to export.")
		return nil
	}

	output := c.output
	if output == "" {
		output = exportPkg.DefaultFilename(env.Session.Now())
	}

	if err := os.MkdirAll(env.Store.Dir(), dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path, err := exportPkg.ToFile(env.Store.Dir(), output, transactions, env.Store.Format())
	if err != nil {
		return err
	}

	env.Logger.Info("Transactions exported", "path", path, "count", len(transactions))
	fmt.Fprintf(env.Out, "Exported %d transactions to %s\n", len(transactions), path)

	return nil
}
