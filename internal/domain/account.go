package domain

import (
	"strings"
	"time"
)

type AccountID string

type Session struct {
	AccountID  AccountID
	Email      string
	SignedInAt time.Time
	// TokenRef points to a secret-store entry holding the backend access token.
	TokenRef string
}

func (s Session) SignedIn() bool {
	return strings.TrimSpace(string(s.AccountID)) != ""
}

type CreditBalance struct {
	Current int
	Max     int
	Plan    string
}

// Available reports whether at least one credit can be spent.
func (b CreditBalance) Available() bool {
	return b.Current > 0
}

// RemainingPercent returns Current/Max in the 0..100 range; 0 when Max is unknown.
func (b CreditBalance) RemainingPercent() float64 {
	if b.Max <= 0 || b.Current <= 0 {
		return 0
	}
	if b.Current >= b.Max {
		return 100
	}

	return float64(b.Current) / float64(b.Max) * 100
}
