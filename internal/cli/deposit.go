package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
)

type depositCmd struct {
	userID int64
	goalID int64
	amount string
}

func (*depositCmd) Name() string     { return "add-money" }
func (*depositCmd) Synopsis() string { return "deposit into a goal" }
func (*depositCmd) Usage() string {
	return `ledgerctl add-money -u <userId> -g <goalId> -a <amount>

  Deposits amount into the goal. The balance is capped at the target and an
  add_money activity is recorded.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "u", 0, "Owner user id")
	f.Int64Var(&c.goalID, "g", 0, "Goal id")
	f.StringVar(&c.amount, "a", "", "Amount, e.g. 2500 or 99.50")
}

func (c *depositCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid amount %q\n", c.amount)
		return subcommands.ExitUsageError
	}
	s, err := OpenStore(ctx)
	if err != nil {
		return fail("Error opening store %q: %v", *storePath, err)
	}
	defer s.Close()

	goal, err := services.NewGoalService(s, ledger.New(*currency)).AddMoney(ctx, c.userID, c.goalID, amount)
	if err != nil {
		return fail("Error adding money: %v", err)
	}
	fmt.Printf("%s: %s of %s (%.1f%%)\n", goal.Name,
		ledger.FormatAmount(goal.Current, *currency),
		ledger.FormatAmount(goal.Target, *currency),
		goal.Progress)
	return subcommands.ExitSuccess
}
