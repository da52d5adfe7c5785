package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
)

type CreateGoalRequest struct {
	// UserID defaults to the caller and must match it when set.
	UserID  int64           `json:"userId,omitempty"`
	Name    string          `json:"name"`
	Target  decimal.Decimal `json:"target"`
	Current decimal.Decimal `json:"current"`
}

type UpdateGoalRequest struct {
	Name    *string          `json:"name,omitempty"`
	Target  *decimal.Decimal `json:"target,omitempty"`
	Current *decimal.Decimal `json:"current,omitempty"`
}

type AddMoneyRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ListGoals returns the owner's goals ordered by id.
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}
	goals, err := h.Goals.Goals(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", Response{"goals": goals})
}

// GoalSummary returns totals across the owner's goals.
func (h *Handler) GoalSummary(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}
	summary, err := h.Goals.Summary(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "OK", Response{"summary": summary})
}

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	var req CreateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID != 0 && req.UserID != me {
		writeMessage(w, http.StatusForbidden, "You do not have access to this resource")
		return
	}
	goal, err := h.Goals.Create(r.Context(), ledger.CreateGoalInput{
		UserID:  me,
		Name:    req.Name,
		Target:  req.Target,
		Current: req.Current,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "Goal created successfully", Response{"goal": goal})
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req UpdateGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	goal, err := h.Goals.Update(r.Context(), me, id, ledger.GoalPatch{
		Name:    req.Name,
		Target:  req.Target,
		Current: req.Current,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Goal updated successfully", Response{"goal": goal})
}

// AddMoney deposits into a goal; the balance never exceeds the target.
func (h *Handler) AddMoney(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req AddMoneyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	goal, err := h.Goals.AddMoney(r.Context(), me, id, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Money added successfully", Response{"goal": goal})
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	me, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	goal, err := h.Goals.Delete(r.Context(), me, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "Goal deleted successfully", Response{"goal": goal})
}
