package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/models"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
	"github.com/AnshRaj112/goalledger-backend/pkg/utils"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AccountService manages the user directory kept in the ledger document.
type AccountService struct {
	store  *store.Store
	admins map[string]bool
	Now    func() time.Time
}

// NewAccountService returns an AccountService. Accounts registered with one of
// adminEmails may use the database viewer.
func NewAccountService(s *store.Store, adminEmails ...string) *AccountService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = utils.NormalizeEmail(e); e != "" {
			admins[e] = true
		}
	}
	return &AccountService{store: s, admins: admins, Now: time.Now}
}

func (a *AccountService) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now().UTC()
}

// Register creates an account. Emails are stored lower-cased and must be unique.
func (a *AccountService) Register(ctx context.Context, name, email, password string) (models.PublicUser, error) {
	if err := utils.ValidateRegistration(name, email, password); err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %s", ledger.ErrValidation, err.Error())
	}
	// bcrypt runs outside the write gate
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}
	email = utils.NormalizeEmail(email)

	user, err := store.Mutate(ctx, a.store, func(doc *models.Document) (models.User, error) {
		if _, exists := ledger.FindUserByEmail(doc, email); exists {
			return models.User{}, fmt.Errorf("%w: an account with email %s already exists", ledger.ErrConflict, email)
		}
		u := models.User{
			ID:           ledger.NextUserID(doc),
			Name:         strings.TrimSpace(name),
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    a.now(),
		}
		doc.Users = append(doc.Users, u)
		return u, nil
	})
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

// Login checks credentials and stamps the user's last login time.
func (a *AccountService) Login(ctx context.Context, email, password string) (models.PublicUser, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return models.PublicUser{}, fmt.Errorf("%w: email and password are required", ledger.ErrValidation)
	}

	user, err := store.Read(ctx, a.store, func(doc *models.Document) (models.User, error) {
		idx, ok := ledger.FindUserByEmail(doc, email)
		if !ok {
			return models.User{}, ErrInvalidCredentials
		}
		return doc.Users[idx], nil
	})
	if err != nil {
		return models.PublicUser{}, err
	}

	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return models.PublicUser{}, ErrInvalidCredentials
	}

	user, err = store.Mutate(ctx, a.store, func(doc *models.Document) (models.User, error) {
		idx, ok := ledger.FindUser(doc, user.ID)
		if !ok {
			return models.User{}, ErrInvalidCredentials
		}
		doc.Users[idx].LastLogin = a.now()
		return doc.Users[idx], nil
	})
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}

// GetUser returns the public record of userID.
func (a *AccountService) GetUser(ctx context.Context, userID int64) (models.PublicUser, error) {
	return store.Read(ctx, a.store, func(doc *models.Document) (models.PublicUser, error) {
		idx, ok := ledger.FindUser(doc, userID)
		if !ok {
			return models.PublicUser{}, fmt.Errorf("%w: user %d", ledger.ErrNotFound, userID)
		}
		return doc.Users[idx].Public(), nil
	})
}

// IsAdmin reports whether userID belongs to a configured admin email.
// An unknown user is not an admin.
func (a *AccountService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if len(a.admins) == 0 {
		return false, nil
	}
	u, err := a.GetUser(ctx, userID)
	if errors.Is(err, ledger.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return a.admins[u.Email], nil
}
