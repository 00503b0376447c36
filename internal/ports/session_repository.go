package ports

import (
	"context"

	"github.com/bnema/contentkit-cli/internal/domain"
)

type SessionRepository interface {
	Current(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
