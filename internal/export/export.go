package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/storage"
)

const filePerm = 0o644

// DefaultFilename is the export file name used when none is given.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("transactions_export_%s.csv", now.Format("20060102"))
}

// CSV writes transactions in the same layout as the transactions data file
// format: ID,Type,Amount,Category,Description,Date
func CSV(writer io.Writer, transactions []*ledger.Transaction, format storage.Format) error {
	lines := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		lines = append(lines, storage.EncodeTransaction(tx, format))
	}

	if err := storage.WriteLines(writer, storage.TransactionsHeader, lines); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

// ToFile exports transactions to path. Relative paths are resolved against
// dir. It returns the path that was written.
func ToFile(dir, path string, transactions []*ledger.Transaction, format storage.Format) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err = CSV(file, transactions, format); err != nil {
		file.Close()
		return "", err
	}

	if err = file.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	return path, nil
}
