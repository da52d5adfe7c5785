package ledger

import (
	"strings"

	"github.com/AnshRaj112/goalledger-backend/internal/models"
)

// FindUser returns the index of userID in doc.Users.
func FindUser(doc *models.Document, userID int64) (int, bool) {
	for i, u := range doc.Users {
		if u.ID == userID {
			return i, true
		}
	}
	return -1, false
}

// FindUserByEmail matches email case-insensitively.
func FindUserByEmail(doc *models.Document, email string) (int, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	for i, u := range doc.Users {
		if strings.ToLower(u.Email) == email {
			return i, true
		}
	}
	return -1, false
}
