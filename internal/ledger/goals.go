package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
)

// DefaultCurrency is used for activity descriptions when Ledger.Currency is empty.
const DefaultCurrency = money.INR

// Ledger applies goal operations to a borrowed document. It holds no document state
// of its own; callers run each operation inside one store unit of work.
type Ledger struct {
	Now      func() time.Time
	Currency string
}

// New returns a Ledger using the wall clock and the given ISO currency code.
func New(currency string) *Ledger {
	return &Ledger{Now: time.Now, Currency: currency}
}

// CreateGoalInput carries the fields of a new goal.
type CreateGoalInput struct {
	UserID  int64
	Name    string
	Target  decimal.Decimal
	Current decimal.Decimal
}

// GoalPatch is a partial update; nil fields are left untouched.
type GoalPatch struct {
	Name    *string
	Target  *decimal.Decimal
	Current *decimal.Decimal
}

func (l *Ledger) now() time.Time {
	if l.Now == nil {
		return time.Now().UTC()
	}
	return l.Now().UTC()
}

func (l *Ledger) symbol() string {
	code := strings.ToUpper(strings.TrimSpace(l.Currency))
	if code == "" {
		code = DefaultCurrency
	}
	if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
		return c.Grapheme
	}
	return code + " "
}

// Create validates input, appends a new goal and records a create_goal activity.
// A starting balance above the target is clamped to the target.
func (l *Ledger) Create(doc *models.Document, in CreateGoalInput) (models.Goal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Goal{}, validationf("goal name is required")
	}
	if !in.Target.IsPositive() {
		return models.Goal{}, validationf("target must be greater than 0")
	}
	if in.Current.IsNegative() {
		return models.Goal{}, validationf("current amount cannot be negative")
	}
	target, err := checkAmount("target", in.Target)
	if err != nil {
		return models.Goal{}, err
	}
	current, err := checkAmount("current amount", in.Current)
	if err != nil {
		return models.Goal{}, err
	}

	now := l.now()
	goal := models.Goal{
		ID:        NextGoalID(doc),
		UserID:    in.UserID,
		Name:      name,
		Target:    target,
		Current:   decimal.Min(current, target),
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc.Goals = append(doc.Goals, goal)
	Record(doc, goal.UserID, models.ActivityCreateGoal, "Created goal: "+goal.Name, now)
	return goal, nil
}

// Update applies patch to the goal owned by actorID. Whatever fields are patched,
// Current ends up clamped to [0, Target].
func (l *Ledger) Update(doc *models.Document, actorID, goalID int64, patch GoalPatch) (models.Goal, error) {
	idx, err := ownedGoal(doc, actorID, goalID)
	if err != nil {
		return models.Goal{}, err
	}

	var name string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Goal{}, validationf("goal name cannot be empty")
		}
	}
	if patch.Target != nil && !patch.Target.IsPositive() {
		return models.Goal{}, validationf("target must be greater than 0")
	}
	if patch.Current != nil && patch.Current.IsNegative() {
		return models.Goal{}, validationf("current amount cannot be negative")
	}

	goal := doc.Goals[idx]
	if patch.Name != nil {
		goal.Name = name
	}
	if patch.Target != nil {
		if goal.Target, err = checkAmount("target", *patch.Target); err != nil {
			return models.Goal{}, err
		}
	}
	if patch.Current != nil {
		if goal.Current, err = checkAmount("current amount", *patch.Current); err != nil {
			return models.Goal{}, err
		}
	}
	goal.Current = clamp(goal.Current, goal.Target)
	goal.UpdatedAt = l.now()
	doc.Goals[idx] = goal

	Record(doc, goal.UserID, models.ActivityUpdateGoal, "Updated goal: "+goal.Name, goal.UpdatedAt)
	return goal, nil
}

// AddMoney deposits amount into a goal, capping the balance at the target.
// The activity description carries the requested amount, not the credited one.
func (l *Ledger) AddMoney(doc *models.Document, actorID, goalID int64, amount decimal.Decimal) (models.Goal, error) {
	if !amount.IsPositive() {
		return models.Goal{}, validationf("amount must be greater than 0")
	}
	amount, err := checkAmount("amount", amount)
	if err != nil {
		return models.Goal{}, err
	}
	idx, err := ownedGoal(doc, actorID, goalID)
	if err != nil {
		return models.Goal{}, err
	}

	goal := doc.Goals[idx]
	goal.Current = decimal.Min(goal.Current.Add(amount), goal.Target)
	goal.UpdatedAt = l.now()
	doc.Goals[idx] = goal

	desc := fmt.Sprintf("Added %s%s to %s", l.symbol(), descriptionAmount(amount), goal.Name)
	Record(doc, goal.UserID, models.ActivityAddMoney, desc, goal.UpdatedAt)
	return goal, nil
}

// Delete removes the goal permanently and records a delete_goal activity.
func (l *Ledger) Delete(doc *models.Document, actorID, goalID int64) (models.Goal, error) {
	idx, err := ownedGoal(doc, actorID, goalID)
	if err != nil {
		return models.Goal{}, err
	}

	goal := doc.Goals[idx]
	doc.Goals = append(doc.Goals[:idx:idx], doc.Goals[idx+1:]...)
	Record(doc, goal.UserID, models.ActivityDeleteGoal, "Deleted goal: "+goal.Name, l.now())
	return goal, nil
}

// GoalsForOwner returns a copy of every goal owned by ownerID, in insertion order.
func GoalsForOwner(doc *models.Document, ownerID int64) []models.Goal {
	out := make([]models.Goal, 0)
	for _, g := range doc.Goals {
		if g.UserID == ownerID {
			out = append(out, g)
		}
	}
	return out
}

// FindGoal returns the index of goalID in doc.Goals.
func FindGoal(doc *models.Document, goalID int64) (int, bool) {
	for i, g := range doc.Goals {
		if g.ID == goalID {
			return i, true
		}
	}
	return -1, false
}

func ownedGoal(doc *models.Document, actorID, goalID int64) (int, error) {
	idx, ok := FindGoal(doc, goalID)
	if !ok {
		return -1, goalNotFound(goalID)
	}
	if doc.Goals[idx].UserID != actorID {
		return -1, fmt.Errorf("%w: goal %d belongs to another user", ErrUnauthorized, goalID)
	}
	return idx, nil
}

func clamp(v, target decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return decimal.Min(v, target)
}
