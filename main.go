package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/GustavoCaso/financeledger/internal/category"
	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/cli/backup"
	"github.com/GustavoCaso/financeledger/internal/cli/budget"
	categoryCmd "github.com/GustavoCaso/financeledger/internal/cli/category"
	"github.com/GustavoCaso/financeledger/internal/cli/export"
	"github.com/GustavoCaso/financeledger/internal/cli/goal"
	importcmd "github.com/GustavoCaso/financeledger/internal/cli/import"
	"github.com/GustavoCaso/financeledger/internal/cli/report"
	"github.com/GustavoCaso/financeledger/internal/cli/stats"
	"github.com/GustavoCaso/financeledger/internal/cli/transaction"
	"github.com/GustavoCaso/financeledger/internal/clock"
	"github.com/GustavoCaso/financeledger/internal/config"
	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/logger"
	"github.com/GustavoCaso/financeledger/internal/storage"
)

var configPath string

var subcommands = map[string]cli.Command{
	"transaction": transaction.NewCommand(),
	"budget":      budget.NewCommand(),
	"goal":        goal.NewCommand(),
	"report":      report.NewCommand(),
	"category":    categoryCmd.NewCommand(),
	"export":      export.NewCommand(),
	"import":      importcmd.NewCommand(),
	"backup":      backup.NewCommand(),
	"stats":       stats.NewCommand(),
}

var subcommandsFlagSets = map[string]*flag.FlagSet{}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("subcommand is required\n")
		printUsage()

		os.Exit(1)
	}

	for c, cLogic := range subcommands {
		fset := flag.NewFlagSet(c, flag.ExitOnError)
		fset.StringVar(&configPath, "c", config.DefaultFile, "Configuration file")

		cLogic.SetFlags(fset)

		subcommandsFlagSets[c] = fset
	}

	commandName := os.Args[1]
	command, ok := subcommands[commandName]
	if !ok {
		if strings.Contains(commandName, "help") {
			printHelp()

			os.Exit(0)
		}
		log.Fatalf("unsupported comand %s. \nUse 'help' command to print information about supported commands\n", commandName)
	}

	subcommandsFlagSets[commandName].Parse(os.Args[2:])

	conf, err := config.Parse(configPath)
	if err != nil {
		log.Fatalf("Unable to parse the configuration: %s", err.Error())
	}

	appLogger := logger.New(conf.Logger)

	if err = run(command, conf, clock.System{}, appLogger, os.Stdout); err != nil {
		appLogger.Fatal("Command failed", "command", commandName, "error", err.Error())
	}
}

// run loads the stored data, executes command and saves the data again when
// the command changed it.
func run(command cli.Command, conf *config.Config, c clock.Clock, logger *logger.Logger, out io.Writer) error {
	matcher, err := category.NewMatcher(conf.Rules)
	if err != nil {
		return fmt.Errorf("invalid category rules: %w", err)
	}

	session := ledger.NewSession(c)
	for _, name := range conf.CustomCategories {
		if !session.Categories.AddCustom(name) {
			logger.Warn("Ignoring custom category", "name", name)
		}
	}

	store := storage.New(conf.DataDir, conf.Format, logger)
	if err = store.Load(session); err != nil {
		return fmt.Errorf("unable to load data: %w", err)
	}

	env := &cli.Env{
		Session:   session,
		Store:     store,
		Matcher:   matcher,
		NearLimit: conf.NearLimitThreshold,
		Logger:    logger,
		Out:       out,
	}

	if err = command.Run(env); err != nil {
		return err
	}

	if env.Changed() {
		if err = store.Save(session); err != nil {
			return fmt.Errorf("unable to save data: %w", err)
		}
	}

	return nil
}

func printHelp() {
	printUsage()

	names := make([]string, 0, len(subcommands))
	for c := range subcommands {
		names = append(names, c)
	}
	sort.Strings(names)

	for _, c := range names {
		fmt.Printf("subcommmand <%s>: %s\n", c, subcommands[c].Description())
		subcommandsFlagSets[c].PrintDefaults()
		fmt.Println()
		fmt.Println()
	}
}

func printUsage() {
	fmt.Printf("usage: financeledger <subcommand> [flags]\n\n")
}
