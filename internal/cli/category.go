package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GustavoCaso/financeledger/internal/ledger"
)

// ResolveCategory turns a category given on the command line into a known
// category name for kind. The value may be the 1-based number shown by
// "category -a list" or a name in any letter case.
func ResolveCategory(session *ledger.Session, kind ledger.Kind, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("a category is required")
	}

	if index, err := strconv.Atoi(value); err == nil {
		name, ok := session.CategoryAt(kind, index)
		if !ok {
			return "", fmt.Errorf("invalid category selection %d", index)
		}
		return name, nil
	}

	for _, name := range session.CategoriesFor(kind) {
		if strings.EqualFold(name, value) {
			return name, nil
		}
	}

	return "", fmt.Errorf("unknown %s category %q", strings.ToLower(kind.String()), value)
}
