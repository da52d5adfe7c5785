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

type activitiesCmd struct {
	userID int64
	limit  int
}

func (*activitiesCmd) Name() string     { return "activities" }
func (*activitiesCmd) Synopsis() string { return "show a user's recent activity" }
func (*activitiesCmd) Usage() string {
	return `ledgerctl activities -u <userId> [-n <limit>]

  Shows the most recent activity entries, newest first.
`
}

func (c *activitiesCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "u", 0, "Owner user id")
	f.IntVar(&c.limit, "n", ledger.DefaultActivityLimit, "Number of entries")
}

func (c *activitiesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.userID <= 0 {
		return fail("-u is required")
	}
	s, err := OpenStore(ctx)
	if err != nil {
		return fail("Error opening store %q: %v", *storePath, err)
	}
	defer s.Close()

	entries, err := services.NewGoalService(s, ledger.New(*currency)).Activities(ctx, c.userID, c.limit)
	if err != nil {
		return fail("Error listing activities: %v", err)
	}
	printMarkdown(renderActivities(c.userID, entries))
	return subcommands.ExitSuccess
}

func renderActivities(userID int64, entries []services.ActivityView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Recent activity of user %d\n\n", userID)
	if len(entries) == 0 {
		b.WriteString("No activity yet.\n")
		return b.String()
	}
	b.WriteString("| When | Type | Description |\n|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", e.Ago, e.Type, escapeCell(e.Description))
	}
	return b.String()
}
