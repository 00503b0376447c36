package ports

import (
	"context"

	"github.com/bnema/contentkit-cli/internal/domain"
)

// CreditLedger reads the remaining credit of an account. It never mutates the balance.
type CreditLedger interface {
	FetchBalance(ctx context.Context, accountID domain.AccountID) (domain.CreditBalance, error)
}

// RawResponse is a successful generation response before artifact decoding.
type RawResponse struct {
	Body        []byte
	ContentType string
}

type Generator interface {
	Generate(ctx context.Context, accountID domain.AccountID, request domain.GenerationRequest, shape domain.Shape) (RawResponse, error)
}

type Catalog interface {
	ListByCategory(ctx context.Context, category string) ([]domain.Tool, error)
	Search(ctx context.Context, query string) ([]domain.Tool, error)
	ListBookmarked(ctx context.Context, accountID domain.AccountID) ([]domain.Tool, error)
}

type Bookmarks interface {
	Toggle(ctx context.Context, accountID domain.AccountID, toolID domain.ToolID) error
}
