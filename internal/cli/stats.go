package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display document statistics" }
func (*statsCmd) Usage() string {
	return `ledgerctl stats

  Counts users, goals and activity entries and reports the document size.
`
}

func (*statsCmd) SetFlags(*flag.FlagSet) {}

func (*statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenStore(ctx)
	if err != nil {
		return fail("Error opening store %q: %v", *storePath, err)
	}
	defer s.Close()

	stats, err := services.Stats(ctx, s)
	if err != nil {
		return fail("Error reading stats: %v", err)
	}
	printMarkdown(renderStats(stats))
	return subcommands.ExitSuccess
}

func renderStats(stats services.DatabaseStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Ledger statistics\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Users | %d |\n", stats.TotalUsers)
	fmt.Fprintf(&b, "| Goals | %d |\n", stats.TotalGoals)
	fmt.Fprintf(&b, "| Activities | %d |\n", stats.TotalActivities)
	fmt.Fprintf(&b, "| Size (bytes) | %d |\n", stats.DatabaseSize)
	fmt.Fprintf(&b, "| Backend | %s |\n", escapeCell(stats.Backend))
	return b.String()
}
