package testutil

import (
	"bytes"
	"testing"

	"github.com/GustavoCaso/financeledger/internal/logger"
)

func TestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	// creates a test logger that doesn't output anything.
	return logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
		Output: "discard",
	})
}

// BufferLogger returns a logger at debug level that writes into the returned
// buffer, for tests asserting on log output.
func BufferLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	return logger.NewWithWriter(logger.Config{
		Level:  logger.LevelDebug,
		Format: logger.FormatText,
	}, buf), buf
}
