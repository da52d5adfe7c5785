package ledger

import (
	"sort"
	"time"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
)

// DefaultActivityLimit is the size of the per-owner activity window.
const DefaultActivityLimit = 10

// Record appends one activity entry to doc and returns it.
func Record(doc *models.Document, ownerID int64, kind models.ActivityKind, description string, now time.Time) models.ActivityEntry {
	entry := models.ActivityEntry{
		ID:          NextActivityID(doc),
		UserID:      ownerID,
		Type:        kind,
		Description: description,
		Timestamp:   now,
	}
	doc.Activities = append(doc.Activities, entry)
	return entry
}

// ActivitiesForOwner returns the owner's most recent entries, newest first.
// Ties on timestamp are broken by descending id. limit <= 0 means DefaultActivityLimit.
func ActivitiesForOwner(doc *models.Document, ownerID int64, limit int) []models.ActivityEntry {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	out := make([]models.ActivityEntry, 0)
	for _, a := range doc.Activities {
		if a.UserID == ownerID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CountForOwner returns how many journal entries belong to ownerID.
func CountForOwner(doc *models.Document, ownerID int64) int {
	n := 0
	for _, a := range doc.Activities {
		if a.UserID == ownerID {
			n++
		}
	}
	return n
}
