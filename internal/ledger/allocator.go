package ledger

import "github.com/AnshRaj112/goalledger-backend/internal/models"

func nextID[T any](items []T, id func(T) int64) int64 {
	var highest int64
	for _, it := range items {
		if v := id(it); v > highest {
			highest = v
		}
	}
	return highest + 1
}

// NextGoalID returns an id greater than every goal id in doc, or 1 when there are none.
func NextGoalID(doc *models.Document) int64 {
	return nextID(doc.Goals, func(g models.Goal) int64 { return g.ID })
}

// NextActivityID returns an id greater than every activity id in doc.
func NextActivityID(doc *models.Document) int64 {
	return nextID(doc.Activities, func(a models.ActivityEntry) int64 { return a.ID })
}

// NextUserID returns an id greater than every user id in doc.
func NextUserID(doc *models.Document) int64 {
	return nextID(doc.Users, func(u models.User) int64 { return u.ID })
}
