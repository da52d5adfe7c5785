package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

// seed points -store-path at a fresh file with one user and one goal. The
// returned store holds the document lock until the test ends or it is closed.
func seed(t *testing.T) (*store.Store, services.GoalView) {
	t.Helper()
	*storePath = filepath.Join(t.TempDir(), "database.json")
	*plain = true

	ctx := context.Background()
	s := openStore(t)
	u, err := services.NewAccountService(s).Register(ctx, "Asha", "asha@example.com", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	g, err := services.NewGoalService(s, ledger.New("INR")).Create(ctx, ledger.CreateGoalInput{
		UserID: u.ID, Name: "Emergency | Fund", Target: decimal.NewFromInt(50000), Current: decimal.NewFromInt(10000),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return s, g
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := OpenStore(context.Background())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// tableRows parses md and returns the number of body rows of its first table.
func tableRows(t *testing.T, md string) int {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	rows := -1
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if tbl, ok := n.(*east.Table); ok && rows < 0 {
			rows = 0
			for c := tbl.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*east.TableRow); ok {
					rows++
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if rows < 0 {
		t.Fatalf("no table in:\n%s", md)
	}
	return rows
}

func TestRenderGoalsIsATable(t *testing.T) {
	s, _ := seed(t)
	ctx := context.Background()
	svc := services.NewGoalService(s, ledger.New("INR"))
	goals, err := svc.Goals(ctx, 1)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	summary, err := svc.Summary(ctx, 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if n := tableRows(t, renderGoals(1, goals, summary, "INR")); n != 1 {
		t.Fatalf("expected 1 goal row, got %d", n)
	}

	acts, err := svc.Activities(ctx, 1, 0)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if n := tableRows(t, renderActivities(1, acts)); n != 1 {
		t.Fatalf("expected 1 activity row, got %d", n)
	}
}

func TestDepositCommand(t *testing.T) {
	s, g := seed(t)
	s.Close()

	cmd := &depositCmd{userID: 1, goalID: g.ID, amount: "45000"}
	if status := cmd.Execute(context.Background(), nil); status != subcommands.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}

	bad := &depositCmd{userID: 1, goalID: g.ID, amount: "lots"}
	if status := bad.Execute(context.Background(), nil); status != subcommands.ExitUsageError {
		t.Fatalf("expected usage error, got %v", status)
	}
	other := &depositCmd{userID: 2, goalID: g.ID, amount: "5"}
	if status := other.Execute(context.Background(), nil); status != subcommands.ExitFailure {
		t.Fatalf("expected failure for another user's goal, got %v", status)
	}

	goals, err := services.NewGoalService(openStore(t), ledger.New("INR")).Goals(context.Background(), 1)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if !goals[0].Current.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected capped balance 50000, got %s", goals[0].Current)
	}
}

func TestDepositCommandFailsWhileDocumentIsHeld(t *testing.T) {
	s, g := seed(t)

	cmd := &depositCmd{userID: 1, goalID: g.ID, amount: "100"}
	if status := cmd.Execute(context.Background(), nil); status != subcommands.ExitFailure {
		t.Fatalf("expected failure while the document is locked, got %v", status)
	}
	if _, err := OpenStore(context.Background()); !errors.Is(err, store.ErrLocked) || !errors.Is(err, ledger.ErrPersistence) {
		t.Fatalf("expected locked persistence error, got %v", err)
	}

	goals, err := services.NewGoalService(s, ledger.New("INR")).Goals(context.Background(), 1)
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if !goals[0].Current.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("balance changed to %s", goals[0].Current)
	}
}

func TestQuery(t *testing.T) {
	s, _ := seed(t)
	doc, err := services.Dump(context.Background(), s)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}

	got, err := Query(doc, "$.goals[0].name")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != "Emergency | Fund" {
		t.Fatalf("unexpected result %v", got)
	}

	got, err = Query(doc, "$.users[0].email")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if got != "asha@example.com" {
		t.Fatalf("unexpected result %v", got)
	}

	if _, err := Query(doc, "$.users[0].password"); err == nil {
		t.Fatalf("expected no password field in the queried document")
	}
}
