package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/testutil"
)

func writeDataFile(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestSaveAndLoad(t *testing.T) {
	for _, format := range []Format{FormatQuoted, FormatLegacy} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			store := New(dir, format, testutil.TestLogger(t))

			session, _ := testutil.TestSession(t)
			session.AddTransaction(ledger.Expense, testutil.Amount(t, "100"), "Food & Dining", "groceries", ledger.Date(2024, time.January, 5))
			session.AddTransaction(ledger.Income, testutil.Amount(t, "500"), "Salary", "", ledger.Date(2024, time.January, 1))
			session.Budget.SetLimit("Food & Dining", testutil.Amount(t, "300"))
			goal := session.AddGoal("Laptop", testutil.Amount(t, "1200"), ledger.Date(2024, time.December, 31), "work, gaming")
			goal.AddContribution(testutil.Amount(t, "300"))
			require.True(t, session.Categories.AddCustom("Pets, vet"))

			require.NoError(t, store.Save(session))
			assert.True(t, store.HasExistingData())

			loaded, _ := testutil.TestSession(t)
			require.NoError(t, store.Load(loaded))

			require.Len(t, loaded.Transactions, 2)
			assert.Equal(t, 1, loaded.Transactions[0].ID())
			assert.Equal(t, "groceries", loaded.Transactions[0].Description)
			assert.Equal(t, ledger.Income, loaded.Transactions[1].Kind)

			assert.Equal(t, ledger.NewYearMonth(2024, time.January), loaded.Budget.Month())
			assert.Equal(t, "300.00", loaded.Budget.Limit("Food & Dining").StringFixed(2))

			require.Len(t, loaded.Goals, 1)
			assert.Equal(t, "work, gaming", loaded.Goals[0].Description)
			assert.Equal(t, "300.00", loaded.Goals[0].CurrentAmount().StringFixed(2))

			assert.Equal(t, []string{"Pets, vet"}, loaded.Categories.Custom())
			assert.True(t, loaded.IsValidCategory("Pets, vet", ledger.Expense))

			assert.Equal(t, 3, loaded.AddTransaction(ledger.Expense, testutil.Amount(t, "1"), "Travel", "", time.Time{}).ID())
		})
	}
}

func TestSaveWritesHeaders(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, FormatQuoted, testutil.TestLogger(t))
	session, _ := testutil.TestSession(t)

	require.NoError(t, store.Save(session))

	for name, header := range map[string]string{
		TransactionsFile: TransactionsHeader,
		BudgetsFile:      BudgetsHeader,
		GoalsFile:        GoalsHeader,
		CategoriesFile:   CategoriesHeader,
	} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, header+"\n", string(content))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "temporary files must not be left behind")
}

func TestLoadGoalsContinuesIDs(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, GoalsFile,
		GoalsHeader,
		"3,Car,1000.00,0.00,2024-01-01,2025-01-01,",
		"9,Trip,500.00,100.00,2024-01-01,2024-08-01,beach; sun",
		"5,House,9000.00,0.00,2024-01-01,2030-01-01",
	)

	store := New(dir, FormatLegacy, testutil.TestLogger(t))
	session, _ := testutil.TestSession(t)
	require.NoError(t, store.Load(session))

	require.Len(t, session.Goals, 3)
	assert.Equal(t, "beach, sun", session.Goals[1].Description)
	assert.Equal(t, 10, session.AddGoal("Bike", testutil.Amount(t, "300"), ledger.Date(2024, time.June, 1), "").ID())
}

func TestLoadSkipsMalformedBudgetLine(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, BudgetsFile,
		BudgetsHeader,
		"2024-01,Food",
		"2024-01,Travel,50.00",
		"2024-01,Shopping,-10.00",
		"",
		"2024-02,Healthcare,80.0",
	)

	log, buf := testutil.BufferLogger(t)
	store := New(dir, FormatLegacy, log)
	session, _ := testutil.TestSession(t)
	require.NoError(t, store.Load(session))

	assert.Equal(t, ledger.NewYearMonth(2024, time.February), session.Budget.Month())
	assert.Equal(t, []string{"Healthcare", "Travel"}, session.Budget.Categories())
	assert.Equal(t, "80.00", session.Budget.Limit("Healthcare").StringFixed(2))
	assert.Equal(t, 2, strings.Count(buf.String(), "Skipping malformed record"))
}

func TestLoadSkipsMalformedTransactions(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, TransactionsFile,
		TransactionsHeader,
		"1,EXPENSE,100.00,Food,lunch,2024-01-05",
		"2,EXPENSE,abc,Food,lunch,2024-01-05",
		"3,EXPENSE,10.00,Food",
		"4,INCOME,500.00,Salary,,2024-01-01",
	)

	store := New(dir, FormatQuoted, testutil.TestLogger(t))
	session, _ := testutil.TestSession(t)
	require.NoError(t, store.Load(session))

	require.Len(t, session.Transactions, 2)
	assert.Equal(t, 4, session.Transactions[1].ID())
	assert.Equal(t, 5, session.NextTransactionID())
}

func TestLoadMissingFiles(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "missing"), FormatQuoted, testutil.TestLogger(t))
	session, _ := testutil.TestSession(t)

	require.NoError(t, store.Load(session))
	assert.Empty(t, session.Transactions)
	assert.Empty(t, session.Goals)
	assert.Equal(t, session.CurrentMonth(), session.Budget.Month())
	assert.False(t, store.HasExistingData())
}

func TestLoadUnreadableFileLeavesSessionUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, TransactionsFile, TransactionsHeader, "1,EXPENSE,100.00,Food,lunch,2024-01-05")
	// A directory where a file is expected cannot be read as a file.
	require.NoError(t, os.Mkdir(filepath.Join(dir, GoalsFile), 0o755))

	store := New(dir, FormatQuoted, testutil.TestLogger(t))
	session, _ := testutil.TestSession(t)
	existing := session.AddTransaction(ledger.Expense, testutil.Amount(t, "5"), "Travel", "", time.Time{})

	err := store.Load(session)
	require.Error(t, err)
	require.Len(t, session.Transactions, 1)
	assert.Same(t, existing, session.Transactions[0])
}

func TestSaveToUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := New(filepath.Join(blocker, "data"), FormatQuoted, testutil.TestLogger(t))
	session, _ := testutil.TestSession(t)

	assert.Error(t, store.Save(session))
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, TransactionsFile, TransactionsHeader, "1,EXPENSE,100.00,Food,lunch,2024-01-05")
	writeDataFile(t, dir, BudgetsFile, BudgetsHeader)

	store := New(dir, FormatQuoted, testutil.TestLogger(t))
	backupDir, err := store.Backup(time.Date(2024, time.March, 2, 14, 5, 9, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "backup_20240302_140509"), backupDir)

	content, err := os.ReadFile(filepath.Join(backupDir, TransactionsFile))
	require.NoError(t, err)
	assert.Equal(t, TransactionsHeader+"\n1,EXPENSE,100.00,Food,lunch,2024-01-05\n", string(content))

	_, err = os.Stat(filepath.Join(backupDir, GoalsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestNewFallsBackToQuotedFormat(t *testing.T) {
	store := New(t.TempDir(), Format("xml"), testutil.TestLogger(t))
	assert.Equal(t, FormatQuoted, store.Format())
}

func TestLongDescriptionRoundTrip(t *testing.T) {
	long := strings.Repeat("a", 70000)

	for _, format := range []Format{FormatQuoted, FormatLegacy} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			store := New(dir, format, testutil.TestLogger(t))

			session, _ := testutil.TestSession(t)
			session.AddTransaction(ledger.Expense, testutil.Amount(t, "10"), "Travel", long, ledger.Date(2024, time.January, 2))
			session.AddTransaction(ledger.Income, testutil.Amount(t, "20"), "Salary", "short", ledger.Date(2024, time.January, 3))
			session.AddGoal("Trip", testutil.Amount(t, "100"), ledger.Date(2024, time.June, 1), long)
			require.NoError(t, store.Save(session))

			loaded, _ := testutil.TestSession(t)
			require.NoError(t, store.Load(loaded))
			require.Len(t, loaded.Transactions, 2)
			assert.Equal(t, long, loaded.Transactions[0].Description)
			assert.Equal(t, "short", loaded.Transactions[1].Description)
			require.Len(t, loaded.Goals, 1)
			assert.Equal(t, long, loaded.Goals[0].Description)

			backupDir, err := store.Backup(time.Date(2024, time.March, 2, 14, 5, 9, 0, time.UTC))
			require.NoError(t, err)

			original, err := os.ReadFile(filepath.Join(dir, TransactionsFile))
			require.NoError(t, err)
			copied, err := os.ReadFile(filepath.Join(backupDir, TransactionsFile))
			require.NoError(t, err)
			assert.Equal(t, original, copied)
		})
	}
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "trailing newline", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", input: "a\nb", want: []string{"a", "b"}},
		{name: "crlf", input: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank line kept", input: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "empty", input: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []string{}
			require.NoError(t, ReadLines(strings.NewReader(tt.input), func(line string) error {
				lines = append(lines, line)
				return nil
			}))
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestLoadCustomCategories(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, CategoriesFile,
		CategoriesHeader,
		"Pets",
		"",
		"travel",
		`"Garden, tools"`,
	)

	store := New(dir, FormatQuoted, testutil.TestLogger(t))
	session, _ := testutil.TestSession(t)
	require.True(t, session.Categories.AddCustom("Pets"))
	require.NoError(t, store.Load(session))

	assert.Equal(t, []string{"Pets", "Garden, tools"}, session.Categories.Custom())
}
