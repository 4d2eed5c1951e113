package remote

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/chronotours/internal/domain"
)

// Demo credentials accepted by AuthService.
const (
	DemoEmail    = "test@example.com"
	DemoPassword = "password"
)

// AuthService simulates the Auth collaborator. Only the demo account can
// sign in with credentials; a registered account is signed in by
// CreateAccount itself and only reserves its email.
type AuthService struct {
	latency time.Duration

	mu         sync.Mutex
	registered map[string]struct{} // lowercased emails
}

// NewAuthService returns an AuthService answering after latency.
func NewAuthService(latency time.Duration) *AuthService {
	return &AuthService{latency: latency, registered: make(map[string]struct{})}
}

func demoUser() domain.Session {
	return domain.Session{
		UserID:         "123",
		Username:       "TimeTraveler",
		Email:          DemoEmail,
		ProfilePicture: "https://example.com/profile.jpg",
		Points:         100,
	}
}

// Authenticate accepts the demo credentials only.
func (a *AuthService) Authenticate(ctx context.Context, email, password string) (domain.Session, error) {
	if err := delay(ctx, a.latency); err != nil {
		return domain.Session{}, err
	}
	if email == DemoEmail && password == DemoPassword {
		return demoUser(), nil
	}
	return domain.Session{}, fmt.Errorf("%w: invalid credentials", domain.ErrAuthenticationFailed)
}

// CreateAccount registers a new user with zeroed stats. Blank fields, a
// malformed email, or an email that is already taken fail with
// domain.ErrValidation.
func (a *AuthService) CreateAccount(ctx context.Context, username, email, password string) (domain.Session, error) {
	if err := delay(ctx, a.latency); err != nil {
		return domain.Session{}, err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return domain.Session{}, fmt.Errorf("%w: username is required", domain.ErrValidation)
	case password == "":
		return domain.Session{}, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Session{}, fmt.Errorf("%w: email is invalid", domain.ErrValidation)
	}

	key := strings.ToLower(email)
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, taken := a.registered[key]; taken || key == DemoEmail {
		return domain.Session{}, fmt.Errorf("%w: email is already registered", domain.ErrValidation)
	}

	sess := domain.Session{
		UserID:   uuid.NewString(),
		Username: username,
		Email:    email,
	}
	a.registered[key] = struct{}{}
	return sess, nil
}
