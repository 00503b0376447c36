package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
)

// AuthService records which account the backend calls are made for. The identity provider's
// own session handling stays outside; only the account id and its access token are kept.
type AuthService struct {
	sessions ports.SessionRepository
	store    ports.SecretStore
	clock    ports.Clock
}

func NewAuthService(sessions ports.SessionRepository, store ports.SecretStore, clock ports.Clock) *AuthService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AuthService{sessions: sessions, store: store, clock: clock}
}

func TokenRef(accountID domain.AccountID) string {
	return fmt.Sprintf("accounts/%s/token", accountID)
}

func (s *AuthService) SignIn(ctx context.Context, accountID domain.AccountID, email, token string) (domain.Session, error) {
	accountID = domain.AccountID(strings.TrimSpace(string(accountID)))
	if accountID == "" {
		return domain.Session{}, errors.New("account id is required")
	}

	previous, err := s.sessions.Current(ctx)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Session{}, fmt.Errorf("load current session: %w", err)
	}

	session := domain.Session{
		AccountID:  accountID,
		Email:      strings.TrimSpace(email),
		SignedInAt: s.clock.Now().UTC(),
	}

	token = strings.TrimSpace(token)
	if token != "" {
		session.TokenRef = TokenRef(accountID)
		if err := s.store.Put(ctx, session.TokenRef, token); err != nil {
			return domain.Session{}, fmt.Errorf("store access token: %w", err)
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		if session.TokenRef != "" {
			if rollbackErr := s.store.Delete(ctx, session.TokenRef); rollbackErr != nil {
				return domain.Session{}, fmt.Errorf("save session and rollback stored token: %w", errors.Join(err, rollbackErr))
			}
		}
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}

	if previous.TokenRef != "" && previous.TokenRef != session.TokenRef {
		if err := s.store.Delete(ctx, previous.TokenRef); err != nil {
			return session, fmt.Errorf("delete previous access token: %w", err)
		}
	}

	return session, nil
}

func (s *AuthService) SignOut(ctx context.Context) error {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("load current session: %w", err)
	}

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if session.TokenRef != "" {
		if err := s.store.Delete(ctx, session.TokenRef); err != nil {
			return fmt.Errorf("delete access token: %w", err)
		}
	}

	return nil
}

func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

// AccessToken returns the stored token for the current session, or "" when none is stored.
func (s *AuthService) AccessToken(ctx context.Context) (string, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load current session: %w", err)
	}
	if session.TokenRef == "" {
		return "", nil
	}

	token, err := s.store.Get(ctx, session.TokenRef)
	if err != nil {
		return "", fmt.Errorf("load access token: %w", err)
	}

	return strings.TrimSpace(token), nil
}
