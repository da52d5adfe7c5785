package models

import "time"

// ActivityKind names the goal mutation an ActivityEntry records.
type ActivityKind string

const (
	ActivityCreateGoal ActivityKind = "create_goal"
	ActivityUpdateGoal ActivityKind = "update_goal"
	ActivityAddMoney   ActivityKind = "add_money"
	ActivityDeleteGoal ActivityKind = "delete_goal"
)

// ActivityEntry is an immutable journal record of one goal mutation.
type ActivityEntry struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"userId"`
	Type        ActivityKind `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}
