package importcmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/importer"
)

type importCommand struct {
	file string
}

func NewCommand() cli.Command {
	return &importCommand{}
}

func (c *importCommand) Description() string {
	return "Imports transactions from a bank statement (CSV or JSON)"
}

func (c *importCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "file to import")
}

func (c *importCommand) Run(env *cli.Env) error {
	if c.file == "" {
		return errors.New("you must provide a file to import")
	}

	file, err := os.Open(c.file)
	if err != nil {
		return err
	}
	defer file.Close()

	info := importer.Import(c.file, file, env.Session, env.Matcher)
	if info.Error != nil && info.TotalImports == 0 {
		return fmt.Errorf("unable to import transactions due to error: %w", info.Error)
	}

	if info.TotalImports > 0 {
		env.MarkChanged()
		env.Logger.Info("Transactions imported", "file", c.file, "count", info.TotalImports)
		fmt.Fprintf(env.Out, "Total transactions imported: %d\n", info.TotalImports)
	} else {
		fmt.Fprintln(env.Out, "No transactions were imported")
	}
	if len(info.ImportWithoutCategory) > 0 {
		fmt.Fprintf(env.Out, "The following transactions were imported without a category: %s\n", strings.Join(info.ImportWithoutCategory, ", "))
	}
	if info.Error != nil {
		fmt.Fprintf(env.Out, "Errors importing file: %s\n", info.Error)
	}

	return nil
}
