package clitest

import (
	"bytes"
	"testing"

	"github.com/fatih/color"

	"github.com/GustavoCaso/financeledger/internal/cli"
	"github.com/GustavoCaso/financeledger/internal/clock"
	"github.com/GustavoCaso/financeledger/internal/storage"
	"github.com/GustavoCaso/financeledger/internal/testutil"
)

// TestEnv returns a command environment backed by a fresh session, a store in
// a temporary directory and a buffer collecting the command output. Colors are
// disabled so output can be compared as plain text.
func TestEnv(t *testing.T) (*cli.Env, *bytes.Buffer, *clock.Mock) {
	t.Helper()

	color.NoColor = true

	session, c := testutil.TestSession(t)
	log := testutil.TestLogger(t)
	out := &bytes.Buffer{}

	return &cli.Env{
		Session:   session,
		Store:     storage.New(t.TempDir(), storage.FormatQuoted, log),
		NearLimit: 0.8,
		Logger:    log,
		Out:       out,
	}, out, c
}
