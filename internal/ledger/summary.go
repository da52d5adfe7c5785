package ledger

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ProgressPercent is min(current/target, 1) * 100.
func ProgressPercent(g models.Goal) float64 {
	if !g.Target.IsPositive() {
		return 0
	}
	ratio := decimal.Min(g.Current.Div(g.Target), decimal.NewFromInt(1))
	if ratio.IsNegative() {
		ratio = decimal.Zero
	}
	f, _ := ratio.Mul(hundred).Float64()
	return f
}

// Summary aggregates an owner's goals for the dashboard.
type Summary struct {
	TotalGoals     int             `json:"totalGoals"`
	TotalTarget    decimal.Decimal `json:"totalTarget"`
	TotalSaved     decimal.Decimal `json:"totalSaved"`
	CompletionRate float64         `json:"completionRate"`
	Completed      int             `json:"completedGoals"`
	TargetDisplay  string          `json:"totalTargetDisplay"`
	SavedDisplay   string          `json:"totalSavedDisplay"`
}

// Summarize totals goals. CompletionRate is saved/target*100, or 0 with no target.
func Summarize(goals []models.Goal, currency string) Summary {
	s := Summary{TotalGoals: len(goals), TotalTarget: decimal.Zero, TotalSaved: decimal.Zero}
	for _, g := range goals {
		s.TotalTarget = s.TotalTarget.Add(g.Target)
		s.TotalSaved = s.TotalSaved.Add(g.Current)
		if g.Current.GreaterThanOrEqual(g.Target) {
			s.Completed++
		}
	}
	if s.TotalTarget.IsPositive() {
		s.CompletionRate, _ = s.TotalSaved.Div(s.TotalTarget).Mul(hundred).Round(1).Float64()
	}
	s.TargetDisplay = FormatAmount(s.TotalTarget, currency)
	s.SavedDisplay = FormatAmount(s.TotalSaved, currency)
	return s
}

// FormatAmount renders amount in the currency's display format, e.g. "₹50,000.00".
func FormatAmount(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	c := money.GetCurrency(code)
	if c == nil {
		return code + " " + amount.StringFixed(2)
	}
	minor := amount.Shift(int32(c.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinorInt) {
		// beyond int64 minor units; go-money cannot hold it
		return code + " " + amount.StringFixed(int32(c.Fraction))
	}
	return money.New(minor.IntPart(), code).Display()
}
