package services

import (
	"context"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

// DatabaseStats counts the collections of the ledger document. DatabaseSize is
// the length in bytes of its persisted encoding.
type DatabaseStats struct {
	TotalUsers      int    `json:"totalUsers"`
	TotalGoals      int    `json:"totalGoals"`
	TotalActivities int    `json:"totalActivities"`
	DatabaseSize    int    `json:"databaseSize"`
	Backend         string `json:"backend"`
}

// Stats reads counts and size from one consistent snapshot.
func Stats(ctx context.Context, s *store.Store) (DatabaseStats, error) {
	stats, err := store.Read(ctx, s, func(doc *models.Document) (DatabaseStats, error) {
		b, err := store.Encode(doc)
		if err != nil {
			return DatabaseStats{}, err
		}
		return DatabaseStats{
			TotalUsers:      len(doc.Users),
			TotalGoals:      len(doc.Goals),
			TotalActivities: len(doc.Activities),
			DatabaseSize:    len(b),
		}, nil
	})
	if err != nil {
		return DatabaseStats{}, err
	}
	stats.Backend = s.Backend()
	return stats, nil
}

// Dump returns the whole document without credential hashes.
func Dump(ctx context.Context, s *store.Store) (models.SanitizedDocument, error) {
	doc, err := s.Snapshot(ctx)
	if err != nil {
		return models.SanitizedDocument{}, err
	}
	return doc.Sanitized(), nil
}
