package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"go.uber.org/zap"
)

const bookmarkFailedMessage = "Could not update your bookmark. Please try again."

type CatalogDeps struct {
	Catalog   ports.Catalog
	Bookmarks ports.Bookmarks
	Sessions  ports.SessionRepository
	Notifier  ports.Notifier
	Scheduler ports.Scheduler
}

// CatalogService keeps the tool listing a catalog screen is showing. Category selection
// replaces the listing wholesale, a search supersedes it until the query is cleared.
type CatalogService struct {
	deps      CatalogDeps
	debouncer *Debouncer
	logger    *zap.Logger

	mu       sync.Mutex
	category string
	query    string
	tools    []domain.Tool
	seq      uint64
}

type CatalogOption func(*CatalogService)

func WithDebounceWindow(window time.Duration) CatalogOption {
	return func(s *CatalogService) {
		s.debouncer = NewDebouncer(window, s.deps.Scheduler)
	}
}

func WithCatalogLogger(logger *zap.Logger) CatalogOption {
	return func(s *CatalogService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewCatalogService(deps CatalogDeps, opts ...CatalogOption) *CatalogService {
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = ports.SystemScheduler{}
	}

	s := &CatalogService{deps: deps, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.debouncer == nil {
		s.debouncer = NewDebouncer(DefaultDebounceWindow, deps.Scheduler)
	}

	return s
}

func (s *CatalogService) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.category
}

func (s *CatalogService) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.query
}

// Tools returns a copy of the current listing.
func (s *CatalogService) Tools() []domain.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneTools(s.tools)
}

// SelectCategory fetches the listing for category. MyToolsCategory lists the account's
// bookmarks and requires a signed-in session; without one no fetch is made.
func (s *CatalogService) SelectCategory(ctx context.Context, category string) ([]domain.Tool, error) {
	category = strings.TrimSpace(category)
	seq := s.nextSeq()

	var (
		tools []domain.Tool
		err   error
	)
	if domain.IsMyTools(category) {
		session, sessionErr := s.signedInSession(ctx)
		if sessionErr != nil {
			return nil, sessionErr
		}
		tools, err = s.deps.Catalog.ListBookmarked(ctx, session.AccountID)
		for i := range tools {
			tools[i].IsBookmarked = true
		}
		category = domain.MyToolsCategory
	} else {
		tools, err = s.deps.Catalog.ListByCategory(ctx, category)
	}
	if err != nil {
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: domain.UserMessage(err)})
		return nil, fmt.Errorf("list tools for category %q: %w", category, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq {
		return nil, domain.ErrSuperseded
	}
	s.category = category
	s.query = ""
	s.tools = cloneTools(tools)

	return cloneTools(tools), nil
}

// Search runs a server-side full-text search. An empty query reverts to the selected category.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Tool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.revertToCategory(ctx)
	}

	seq := s.nextSeq()
	tools, err := s.deps.Catalog.Search(ctx, query)
	if err != nil {
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: domain.UserMessage(err)})
		return nil, fmt.Errorf("search tools %q: %w", query, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != seq {
		return nil, domain.ErrSuperseded
	}
	s.query = query
	s.tools = cloneTools(tools)

	return cloneTools(tools), nil
}

// SearchDebounced schedules Search for query, replacing any search still waiting for its
// window. deliver receives the outcome of the search that actually ran.
func (s *CatalogService) SearchDebounced(ctx context.Context, query string, deliver func([]domain.Tool, error)) {
	s.debouncer.Trigger(func() {
		tools, err := s.Search(ctx, query)
		if errors.Is(err, domain.ErrSuperseded) {
			return
		}
		if deliver != nil {
			deliver(tools, err)
		}
	})
}

// CancelPendingSearch drops a debounced search that has not fired yet.
func (s *CatalogService) CancelPendingSearch() {
	s.debouncer.Cancel()
}

// Filter narrows the current listing client-side without contacting the backend.
func (s *CatalogService) Filter(query string) []domain.Tool {
	return FilterLocal(s.Tools(), query)
}

// ToggleBookmark flips the tool's flag optimistically and rolls it back if the backend call fails.
func (s *CatalogService) ToggleBookmark(ctx context.Context, toolID domain.ToolID) (bool, error) {
	session, err := s.signedInSession(ctx)
	if err != nil {
		return false, err
	}

	original, _ := s.flip(toolID)
	updated := !original

	if err := s.deps.Bookmarks.Toggle(ctx, session.AccountID, toolID); err != nil {
		// Undo by flipping again: a toggle that landed meanwhile keeps its effect.
		restored := original
		if previous, found := s.flip(toolID); found {
			restored = !previous
		}
		s.logger.Warn("bookmark toggle failed, rolled back",
			zap.String("tool_id", string(toolID)),
			zap.String("account_id", string(session.AccountID)),
			zap.Error(err),
		)
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: bookmarkFailedMessage})
		return restored, fmt.Errorf("toggle bookmark %s: %w", toolID, err)
	}

	return updated, nil
}

// FilterLocal keeps the tools whose name or tag line contains query, case-insensitively.
func FilterLocal(tools []domain.Tool, query string) []domain.Tool {
	filtered := make([]domain.Tool, 0, len(tools))
	for _, tool := range tools {
		if tool.Matches(query) {
			filtered = append(filtered, tool)
		}
	}

	return filtered
}

func (s *CatalogService) revertToCategory(ctx context.Context) ([]domain.Tool, error) {
	s.mu.Lock()
	category := s.category
	hadQuery := s.query != ""
	s.mu.Unlock()

	if category == "" {
		seq := s.nextSeq()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.seq != seq {
			return nil, domain.ErrSuperseded
		}
		s.query = ""
		if hadQuery {
			s.tools = nil
		}
		return cloneTools(s.tools), nil
	}

	return s.SelectCategory(ctx, category)
}

func (s *CatalogService) signedInSession(ctx context.Context) (domain.Session, error) {
	session, err := s.deps.Sessions.Current(ctx)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !session.SignedIn() {
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeLogin, Message: loginMessage})
		return domain.Session{}, domain.ErrSignInRequired
	}

	return session, nil
}

// flip inverts the local flag and returns its previous value; found is false when the tool
// is not in the listing.
func (s *CatalogService) flip(toolID domain.ToolID) (previous bool, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tools {
		if s.tools[i].ID == toolID {
			previous = s.tools[i].IsBookmarked
			s.tools[i].IsBookmarked = !previous
			found = true
		}
	}

	return previous, found
}

func (s *CatalogService) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	return s.seq
}

func cloneTools(tools []domain.Tool) []domain.Tool {
	if tools == nil {
		return nil
	}

	cloned := make([]domain.Tool, len(tools))
	for i, tool := range tools {
		tool.CategoryLabels = append([]string(nil), tool.CategoryLabels...)
		cloned[i] = tool
	}

	return cloned
}
