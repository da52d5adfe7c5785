// Package cli implements the ledgerctl subcommands. They operate directly on a
// file store and fail with a lock error while a server holds the same document.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

var (
	storePath = flag.String("store-path", "data/database.json", "Path to the ledger document (file driver)")
	currency  = flag.String("currency", "INR", "ISO 4217 code used to display amounts")
	plain     = flag.Bool("plain", false, "Print raw markdown instead of rendering it")
)

// Commands lists every ledgerctl subcommand.
var Commands = []subcommands.Command{
	&statsCmd{},
	&exportCmd{},
	&goalsCmd{},
	&activitiesCmd{},
	&depositCmd{},
	&queryCmd{},
}

// Register adds the subcommands to c.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	for _, cmd := range Commands {
		c.Register(cmd, "ledger")
	}
}

// OpenStore opens the file store named by -store-path.
func OpenStore(ctx context.Context) (*store.Store, error) {
	backend, err := store.NewFileBackend(*storePath)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(ctx, backend, 10*time.Second)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

func printMarkdown(md string) {
	if *plain {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// escapeCell keeps user text from breaking a markdown table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func fail(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitFailure
}
