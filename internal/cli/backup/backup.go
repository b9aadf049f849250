package backup

import (
	"flag"
	"fmt"

	"github.com/GustavoCaso/financeledger/internal/cli"
)

type backupCommand struct {
}

func NewCommand() cli.Command {
	return backupCommand{}
}

func (c backupCommand) Description() string {
	return "Copies the data files into a timestamped backup directory"
}

func (c backupCommand) SetFlags(_ *flag.FlagSet) {
}

func (c backupCommand) Run(env *cli.Env) error {
	dir, err := env.Store.Backup(env.Session.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Out, "Backup created: %s\n", dir)
	return nil
}
