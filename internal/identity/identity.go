// Package identity signs users up and in on this machine and answers "who is the current user".
// Accounts are email-only; there are no passwords.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ajaysubramanyam16/Habit-tracker/internal/engine"
	"github.com/Ajaysubramanyam16/Habit-tracker/internal/storage"
)

var (
	ErrNotSignedIn  = errors.New("not signed in")
	ErrUserNotFound = errors.New("user not found, please sign up")
	ErrUserExists   = errors.New("user already exists")
)

// Repository is the slice of storage.Repo the provider needs.
type Repository interface {
	LoadUser(ctx context.Context, id string) (*engine.User, error)
	SaveUser(ctx context.Context, u *engine.User) error
	FindUserByEmail(ctx context.Context, email string) (*engine.User, error)
	LoadSession(ctx context.Context) (*storage.Session, error)
	SaveSession(ctx context.Context, s storage.Session) error
	ClearSession(ctx context.Context) error
}

type Provider struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

func NewProvider(repo Repository, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{repo: repo, now: time.Now, log: log}
}

// SignUp creates a user and signs them in.
func (p *Provider) SignUp(ctx context.Context, name, email string) (*engine.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := p.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	u := engine.NewUser(uuid.New().String(), name, email)
	u.Avatar = AvatarURL(name)
	if err := p.repo.SaveUser(ctx, u); err != nil {
		return nil, err
	}
	if err := p.startSession(ctx, u.ID); err != nil {
		return nil, err
	}
	p.log.Info("user signed up", "user", u.ID)
	return u, nil
}

// LogIn signs in an existing user by email.
func (p *Provider) LogIn(ctx context.Context, email string) (*engine.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := p.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := p.startSession(ctx, u.ID); err != nil {
		return nil, err
	}
	p.log.Info("user logged in", "user", u.ID)
	return u, nil
}

func (p *Provider) LogOut(ctx context.Context) error {
	return p.repo.ClearSession(ctx)
}

// CurrentUser returns the signed-in user, or (nil, nil) when nobody is.
// A session pointing at a deleted user counts as signed out.
func (p *Provider) CurrentUser(ctx context.Context) (*engine.User, error) {
	s, err := p.repo.LoadSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return p.repo.LoadUser(ctx, s.UserID)
}

// RequireUser is CurrentUser that fails with ErrNotSignedIn instead of returning nil.
func (p *Provider) RequireUser(ctx context.Context) (*engine.User, error) {
	u, err := p.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return u, nil
}

func (p *Provider) FindByEmail(ctx context.Context, email string) (*engine.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return p.repo.FindUserByEmail(ctx, email)
}

func (p *Provider) startSession(ctx context.Context, userID string) error {
	return p.repo.SaveSession(ctx, storage.Session{UserID: userID, SignedInAt: p.now().UTC()})
}

// AvatarURL builds the generated initials avatar used for new accounts.
func AvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=6366f1&color=fff", url.QueryEscape(name))
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("invalid email %q", email)
	}
	return email, nil
}
