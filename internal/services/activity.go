package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
)

// ActivityPublisher receives activity entries once the unit of work that
// recorded them has been saved.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, entry models.ActivityEntry) error
}

// ActivityView is an activity entry with a human readable age.
type ActivityView struct {
	models.ActivityEntry
	Ago string `json:"ago"`
}

// RelativeTime renders how long ago t was: minutes under an hour, hours under a
// day, days under a week, and the calendar date after that.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff/(24*time.Hour)))
	default:
		return t.Format("2 Jan 2006")
	}
}

func publishAll(ctx context.Context, publishers []ActivityPublisher, entry models.ActivityEntry) {
	for _, p := range publishers {
		if err := p.PublishActivity(ctx, entry); err != nil {
			log.Printf("⚠️  failed to publish activity %d: %v", entry.ID, err)
		}
	}
}
