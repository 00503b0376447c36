package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
)

// AccountsAPI talks to the accounts/plans backend: credit balance, bookmarks and the tool catalog.
type AccountsAPI struct {
	client *Client
}

var (
	_ ports.CreditLedger = (*AccountsAPI)(nil)
	_ ports.Bookmarks    = (*AccountsAPI)(nil)
	_ ports.Catalog      = (*AccountsAPI)(nil)
)

func NewAccountsAPI(client *Client) *AccountsAPI {
	return &AccountsAPI{client: client}
}

type planPayload struct {
	Data *struct {
		CurrentLimit int    `json:"currentLimit"`
		MaxLimit     int    `json:"maxLimit"`
		Plan         string `json:"plan"`
	} `json:"data"`
}

type toolPayload struct {
	ID             string   `json:"id"`
	LegacyID       string   `json:"_id"`
	Name           string   `json:"name"`
	TagLine        string   `json:"tagLine"`
	LogoURL        string   `json:"logoUrl"`
	CategoryLabels []string `json:"categoryLabels"`
	IsBookmarked   bool     `json:"isBookmarked"`
}

type toolListPayload struct {
	Message []toolPayload `json:"message"`
}

func (a *AccountsAPI) FetchBalance(ctx context.Context, accountID domain.AccountID) (domain.CreditBalance, error) {
	resp, err := a.client.do(ctx, http.MethodGet, "/plans/current", accountQuery(accountID), nil, "", "application/json")
	if err != nil {
		return domain.CreditBalance{}, err
	}

	var payload planPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return domain.CreditBalance{}, fmt.Errorf("%w: decode plan: %v", domain.ErrDecode, err)
	}
	if payload.Data == nil {
		return domain.CreditBalance{}, fmt.Errorf("%w: plan response has no data", domain.ErrDecode)
	}

	return domain.CreditBalance{
		Current: max(payload.Data.CurrentLimit, 0),
		Max:     max(payload.Data.MaxLimit, 0),
		Plan:    strings.TrimSpace(payload.Data.Plan),
	}, nil
}

func (a *AccountsAPI) Toggle(ctx context.Context, accountID domain.AccountID, toolID domain.ToolID) error {
	path := "/bookmarks/add-remove/" + url.PathEscape(string(toolID))
	_, err := a.client.do(ctx, http.MethodPost, path, accountQuery(accountID), nil, "", "application/json")
	return err
}

func (a *AccountsAPI) ListByCategory(ctx context.Context, category string) ([]domain.Tool, error) {
	return a.listTools(ctx, "/objects/getObjectByLabel/"+url.PathEscape(category), nil)
}

func (a *AccountsAPI) Search(ctx context.Context, query string) ([]domain.Tool, error) {
	return a.listTools(ctx, "/objects/searchObjects/"+url.PathEscape(query), nil)
}

func (a *AccountsAPI) ListBookmarked(ctx context.Context, accountID domain.AccountID) ([]domain.Tool, error) {
	return a.listTools(ctx, "/bookmarks", accountQuery(accountID))
}

func (a *AccountsAPI) listTools(ctx context.Context, path string, query url.Values) ([]domain.Tool, error) {
	resp, err := a.client.do(ctx, http.MethodGet, path, query, nil, "", "application/json")
	if err != nil {
		return nil, err
	}

	var payload toolListPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode tool list: %v", domain.ErrDecode, err)
	}

	tools := make([]domain.Tool, 0, len(payload.Message))
	for _, entry := range payload.Message {
		id := entry.ID
		if id == "" {
			id = entry.LegacyID
		}
		tools = append(tools, domain.Tool{
			ID:             domain.ToolID(id),
			Name:           entry.Name,
			TagLine:        entry.TagLine,
			LogoURL:        entry.LogoURL,
			CategoryLabels: entry.CategoryLabels,
			IsBookmarked:   entry.IsBookmarked,
		})
	}

	return tools, nil
}
