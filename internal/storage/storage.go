package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/logger"
)

const (
	TransactionsFile = "transactions.csv"
	BudgetsFile      = "budgets.csv"
	GoalsFile        = "goals.csv"
	CategoriesFile   = "categories.csv"

	backupLayout = "20060102_150405"
	dirPerm      = 0o755
)

var dataFiles = []string{TransactionsFile, BudgetsFile, GoalsFile, CategoriesFile}

// Store persists a ledger session as delimited text files inside a data
// directory: transactions, budget, savings goals and custom categories.
type Store struct {
	dir    string
	format Format
	logger *logger.Logger
}

func New(dir string, format Format, logger *logger.Logger) *Store {
	if !format.Valid() {
		format = FormatQuoted
	}

	return &Store{
		dir:    dir,
		format: format,
		logger: logger,
	}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Format() Format {
	return s.format
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load replaces the session data with the stored files. Missing files count as
// empty and malformed records are skipped. When a file cannot be read the
// session is left untouched.
func (s *Store) Load(session *ledger.Session) error {
	transactions, err := s.loadTransactions()
	if err != nil {
		return err
	}

	budget, err := s.loadBudget(ledger.NewBudget(session.CurrentMonth()))
	if err != nil {
		return err
	}

	goals, err := s.loadGoals()
	if err != nil {
		return err
	}

	categories, err := s.loadCategories()
	if err != nil {
		return err
	}

	session.Restore(transactions, budget, goals)
	for _, name := range categories {
		// Names already registered from the configuration are skipped.
		session.Categories.AddCustom(name)
	}
	return nil
}

func (s *Store) loadCategories() ([]string, error) {
	categories := []string{}

	err := s.eachRecord(CategoriesFile, func(line string) error {
		name, err := DecodeCategory(line, s.format)
		if err != nil {
			return err
		}
		categories = append(categories, name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(categories) > 0 {
		s.logger.Info("Loaded custom categories", "count", len(categories))
	}
	return categories, nil
}

func (s *Store) loadTransactions() ([]*ledger.Transaction, error) {
	transactions := []*ledger.Transaction{}

	err := s.eachRecord(TransactionsFile, func(line string) error {
		tx, err := DecodeTransaction(line, s.format)
		if err != nil {
			return err
		}
		transactions = append(transactions, tx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(transactions) > 0 {
		s.logger.Info("Loaded transactions", "count", len(transactions))
	}
	return transactions, nil
}

func (s *Store) loadBudget(budget *ledger.Budget) (*ledger.Budget, error) {
	err := s.eachRecord(BudgetsFile, func(line string) error {
		entry, err := DecodeBudgetEntry(line, s.format)
		if err != nil {
			return err
		}
		budget.SetMonth(entry.Month)
		if !budget.SetLimit(entry.Category, entry.Amount) {
			return fmt.Errorf("negative budget amount %s for %q", entry.Amount, entry.Category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if budget.Len() > 0 {
		s.logger.Info("Loaded budget", "month", budget.Month().String(), "categories", budget.Len())
	}
	return budget, nil
}

func (s *Store) loadGoals() ([]*ledger.SavingsGoal, error) {
	goals := []*ledger.SavingsGoal{}

	err := s.eachRecord(GoalsFile, func(line string) error {
		goal, err := DecodeGoal(line, s.format)
		if err != nil {
			return err
		}
		goals = append(goals, goal)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(goals) > 0 {
		s.logger.Info("Loaded savings goals", "count", len(goals))
	}
	return goals, nil
}

// eachRecord calls decode for every non blank line after the header. Decode
// errors are logged and the line is skipped; only I/O errors are returned.
func (s *Store) eachRecord(name string, decode func(line string) error) error {
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	lineNumber := 0
	err = ReadLines(f, func(line string) error {
		lineNumber++
		if lineNumber == 1 || strings.TrimSpace(line) == "" {
			return nil
		}

		if decodeErr := decode(line); decodeErr != nil {
			s.logger.Warn("Skipping malformed record", "file", name, "line", lineNumber, "error", decodeErr.Error())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

// Save writes the data files. Each file is written to a temporary file
// first and renamed into place.
func (s *Store) Save(session *ledger.Session) error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	transactions := make([]string, 0, len(session.Transactions))
	for _, tx := range session.Transactions {
		transactions = append(transactions, EncodeTransaction(tx, s.format))
	}
	if err := s.writeFile(TransactionsFile, TransactionsHeader, transactions); err != nil {
		return err
	}

	if err := s.writeFile(BudgetsFile, BudgetsHeader, EncodeBudget(session.Budget, s.format)); err != nil {
		return err
	}

	goals := make([]string, 0, len(session.Goals))
	for _, goal := range session.Goals {
		goals = append(goals, EncodeGoal(goal, s.format))
	}
	if err := s.writeFile(GoalsFile, GoalsHeader, goals); err != nil {
		return err
	}

	custom := session.Categories.Custom()
	categories := make([]string, 0, len(custom))
	for _, name := range custom {
		categories = append(categories, EncodeCategory(name, s.format))
	}
	if err := s.writeFile(CategoriesFile, CategoriesHeader, categories); err != nil {
		return err
	}

	s.logger.Debug("Saved data", "dir", s.dir, "transactions", len(transactions), "goals", len(goals))
	return nil
}

func (s *Store) writeFile(name, header string, lines []string) error {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if err = WriteLines(tmp, header, lines); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	if err = os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

// HasExistingData reports whether any data file exists and is non empty.
func (s *Store) HasExistingData() bool {
	for _, name := range dataFiles {
		info, err := os.Stat(s.path(name))
		if err == nil && info.Size() > 0 {
			return true
		}
	}
	return false
}

// Backup copies the data files line by line into a new backup_<timestamp>
// directory and returns its path. Missing data files are skipped.
func (s *Store) Backup(now time.Time) (string, error) {
	dir := s.path("backup_" + now.Format(backupLayout))
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	for _, name := range dataFiles {
		if err := copyLines(s.path(name), filepath.Join(dir, name)); err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", name, err)
		}
	}

	s.logger.Info("Backup created", "dir", dir)
	return dir, nil
}

func copyLines(source, destination string) error {
	in, err := os.Open(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	defer in.Close()

	out, err := os.Create(destination)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	err = ReadLines(in, func(line string) error {
		_, writeErr := fmt.Fprintln(w, line)
		return writeErr
	})
	if err != nil {
		out.Close()
		return err
	}

	if err = w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
