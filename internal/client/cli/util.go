package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/models"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errUsage = errors.New("usage")

func parseID(args []string, cmd string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s <id>", errUsage, cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s <id>, id must be a number", errUsage, cmd)
	}
	return id, nil
}

func parseQuantity(s string) (float64, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("quantity %q is not a number", s)
	}
	return q, nil
}

// ask prompts for a required value.
func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// askOptional prompts for a replacement value; nil means keep the current one.
func (a *App) askOptional(prompt, current string) (*string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (Enter to keep)", prompt, current), a.out)
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func formatExpiry(it models.InventoryItem, now time.Time) string {
	days, ok := it.DaysUntilExpiration(now)
	switch {
	case !ok:
		return "-"
	case days < 0:
		return fmt.Sprintf("expired %d day(s) ago", -days)
	case days == 0:
		return "expires today"
	default:
		return fmt.Sprintf("in %d day(s)", days)
	}
}
