package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
)

type CreditStatus struct {
	Session domain.Session
	Balance domain.CreditBalance
}

// CreditService answers balance queries. Every call reads the ledger; nothing is cached.
type CreditService struct {
	ledger   ports.CreditLedger
	sessions ports.SessionRepository
}

func NewCreditService(ledger ports.CreditLedger, sessions ports.SessionRepository) *CreditService {
	return &CreditService{ledger: ledger, sessions: sessions}
}

func (s *CreditService) Balance(ctx context.Context) (CreditStatus, error) {
	session, err := s.sessions.Current(ctx)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return CreditStatus{}, fmt.Errorf("load session: %w", err)
	}
	if !session.SignedIn() {
		return CreditStatus{}, domain.ErrSignInRequired
	}

	balance, err := s.ledger.FetchBalance(ctx, session.AccountID)
	if err != nil {
		return CreditStatus{Session: session}, fmt.Errorf("fetch credit balance: %w", err)
	}

	return CreditStatus{Session: session, Balance: balance}, nil
}
