package cli

import (
	"flag"
	"io"

	"github.com/GustavoCaso/financeledger/internal/category"
	"github.com/GustavoCaso/financeledger/internal/ledger"
	"github.com/GustavoCaso/financeledger/internal/logger"
	"github.com/GustavoCaso/financeledger/internal/storage"
)

// Env is what a command works with during one run. The session is already
// loaded from Store; it is saved afterwards only when a command calls
// MarkChanged.
type Env struct {
	Session   *ledger.Session
	Store     *storage.Store
	Matcher   *category.Matcher
	NearLimit float64
	Logger    *logger.Logger
	Out       io.Writer

	changed bool
}

func (e *Env) MarkChanged() {
	e.changed = true
}

func (e *Env) Changed() bool {
	return e.changed
}

type Command interface {
	SetFlags(fset *flag.FlagSet)
	Description() string
	Run(env *Env) error
}
