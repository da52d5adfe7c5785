package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

type goalsCmd struct {
	userID int64
}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "list a user's goals with progress" }
func (*goalsCmd) Usage() string {
	return `ledgerctl goals -u <userId>

  Lists the user's goals ordered by id, followed by a savings summary.
`
}

func (c *goalsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "u", 0, "Owner user id")
}

func (c *goalsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.userID <= 0 {
		return fail("-u is required")
	}
	s, err := OpenStore(ctx)
	if err != nil {
		return fail("Error opening store %q: %v", *storePath, err)
	}
	defer s.Close()

	svc := services.NewGoalService(s, ledger.New(*currency))
	goals, err := svc.Goals(ctx, c.userID)
	if err != nil {
		return fail("Error listing goals: %v", err)
	}
	summary, err := svc.Summary(ctx, c.userID)
	if err != nil {
		return fail("Error summarizing goals: %v", err)
	}
	printMarkdown(renderGoals(c.userID, goals, summary, *currency))
	return subcommands.ExitSuccess
}

func renderGoals(userID int64, goals []services.GoalView, summary ledger.Summary, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Goals of user %d\n\n", userID)
	if len(goals) == 0 {
		b.WriteString("No goals yet.\n")
		return b.String()
	}
	b.WriteString("| Id | Name | Saved | Target | Progress |\n|---:|---|---:|---:|---:|\n")
	for _, g := range goals {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %.1f%% |\n",
			g.ID, escapeCell(g.Name),
			ledger.FormatAmount(g.Current, currency),
			ledger.FormatAmount(g.Target, currency),
			g.Progress)
	}
	fmt.Fprintf(&b, "\n**Saved** %s of %s (%.1f%%), %d of %d goals completed.\n",
		summary.SavedDisplay, summary.TargetDisplay, summary.CompletionRate, summary.Completed, summary.TotalGoals)
	return b.String()
}
