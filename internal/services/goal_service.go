package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/models"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

// GoalService runs ledger operations as store units of work and hands the
// resulting activity entries to publishers after they are saved.
type GoalService struct {
	store      *store.Store
	ledger     *ledger.Ledger
	publishers []ActivityPublisher
}

func NewGoalService(s *store.Store, l *ledger.Ledger, publishers ...ActivityPublisher) *GoalService {
	return &GoalService{store: s, ledger: l, publishers: publishers}
}

// GoalView is a goal with its progress toward the target.
type GoalView struct {
	models.Goal
	Progress float64 `json:"progress"`
}

func viewOf(g models.Goal) GoalView {
	return GoalView{Goal: g, Progress: ledger.ProgressPercent(g)}
}

type goalChange struct {
	goal  models.Goal
	entry models.ActivityEntry
}

func (s *GoalService) apply(ctx context.Context, fn func(doc *models.Document) (models.Goal, error)) (models.Goal, error) {
	change, err := store.Mutate(ctx, s.store, func(doc *models.Document) (goalChange, error) {
		before := len(doc.Activities)
		goal, err := fn(doc)
		if err != nil {
			return goalChange{}, err
		}
		c := goalChange{goal: goal}
		if len(doc.Activities) > before {
			c.entry = doc.Activities[len(doc.Activities)-1]
		}
		return c, nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	if change.entry.ID != 0 {
		publishAll(ctx, s.publishers, change.entry)
	}
	return change.goal, nil
}

// Create adds a goal for an existing user.
func (s *GoalService) Create(ctx context.Context, in ledger.CreateGoalInput) (GoalView, error) {
	goal, err := s.apply(ctx, func(doc *models.Document) (models.Goal, error) {
		if _, ok := ledger.FindUser(doc, in.UserID); !ok {
			return models.Goal{}, fmt.Errorf("%w: user %d", ledger.ErrNotFound, in.UserID)
		}
		return s.ledger.Create(doc, in)
	})
	if err != nil {
		return GoalView{}, err
	}
	return viewOf(goal), nil
}

func (s *GoalService) Update(ctx context.Context, actorID, goalID int64, patch ledger.GoalPatch) (GoalView, error) {
	goal, err := s.apply(ctx, func(doc *models.Document) (models.Goal, error) {
		return s.ledger.Update(doc, actorID, goalID, patch)
	})
	if err != nil {
		return GoalView{}, err
	}
	return viewOf(goal), nil
}

func (s *GoalService) AddMoney(ctx context.Context, actorID, goalID int64, amount decimal.Decimal) (GoalView, error) {
	goal, err := s.apply(ctx, func(doc *models.Document) (models.Goal, error) {
		return s.ledger.AddMoney(doc, actorID, goalID, amount)
	})
	if err != nil {
		return GoalView{}, err
	}
	return viewOf(goal), nil
}

// Delete removes the goal and returns it as it was before deletion.
func (s *GoalService) Delete(ctx context.Context, actorID, goalID int64) (models.Goal, error) {
	return s.apply(ctx, func(doc *models.Document) (models.Goal, error) {
		return s.ledger.Delete(doc, actorID, goalID)
	})
}

// Goals lists the owner's goals ordered by id.
func (s *GoalService) Goals(ctx context.Context, ownerID int64) ([]GoalView, error) {
	goals, err := store.Read(ctx, s.store, func(doc *models.Document) ([]models.Goal, error) {
		return ledger.GoalsForOwner(doc, ownerID), nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	out := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, viewOf(g))
	}
	return out, nil
}

// Activities returns the owner's recent activity, newest first.
func (s *GoalService) Activities(ctx context.Context, ownerID int64, limit int) ([]ActivityView, error) {
	entries, err := store.Read(ctx, s.store, func(doc *models.Document) ([]models.ActivityEntry, error) {
		return ledger.ActivitiesForOwner(doc, ownerID, limit), nil
	})
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]ActivityView, 0, len(entries))
	for _, e := range entries {
		out = append(out, ActivityView{ActivityEntry: e, Ago: RelativeTime(e.Timestamp, now)})
	}
	return out, nil
}

// Summary totals the owner's goals.
func (s *GoalService) Summary(ctx context.Context, ownerID int64) (ledger.Summary, error) {
	goals, err := store.Read(ctx, s.store, func(doc *models.Document) ([]models.Goal, error) {
		return ledger.GoalsForOwner(doc, ownerID), nil
	})
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(goals, s.ledger.Currency), nil
}

func (s *GoalService) now() time.Time {
	if s.ledger.Now != nil {
		return s.ledger.Now()
	}
	return time.Now()
}
