package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/contentkit-cli/internal/codec"
	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"go.uber.org/zap"
)

const DefaultScrollDelay = 150 * time.Millisecond

const (
	creditCheckWarning = "Could not verify your remaining credits. Please try again in a moment."
	upsellMessage      = "You have used all of your credits. Upgrade your plan to keep generating."
	loginMessage       = "Please sign in to continue."
)

// Transition is reported to the observer every time a session changes state.
type Transition struct {
	Seq     uint64
	From    domain.State
	To      domain.State
	Attempt int
}

type Submission struct {
	Fields  map[string]string
	Uploads []domain.Upload
}

type Outcome struct {
	State    domain.State
	Result   domain.GenerationResult
	Location string
	Attempts int
	Balance  domain.CreditBalance
}

type GenerationDeps struct {
	Ledger    ports.CreditLedger
	Generator ports.Generator
	Sessions  ports.SessionRepository
	Notifier  ports.Notifier
	Viewport  ports.Viewport
	Scheduler ports.Scheduler
}

type SessionOption func(*GenerationSession)

func WithScrollDelay(delay time.Duration) SessionOption {
	return func(s *GenerationSession) {
		if delay >= 0 {
			s.scrollDelay = delay
		}
	}
}

func WithObserver(observer func(Transition)) SessionOption {
	return func(s *GenerationSession) {
		s.observer = observer
	}
}

func WithModerator(moderator domain.Moderator) SessionOption {
	return func(s *GenerationSession) {
		s.moderator = moderator
	}
}

func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *GenerationSession) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithResultDir sets where binary results are materialized.
func WithResultDir(dir string) SessionOption {
	return func(s *GenerationSession) {
		s.slot = NewResultSlot(dir)
	}
}

// GenerationSession drives one tool screen through
// Idle -> CheckingCredit -> Dispatching -> (RetryWaiting)* -> Success | Failure, or Blocked.
// A new Submit supersedes any submission still in flight.
type GenerationSession struct {
	profile     domain.ToolProfile
	deps        GenerationDeps
	moderator   domain.Moderator
	logger      *zap.Logger
	scrollDelay time.Duration
	observer    func(Transition)
	slot        *ResultSlot

	mu            sync.Mutex
	seq           uint64
	state         domain.State
	pendingScroll ports.Timer
}

func NewGenerationSession(profile domain.ToolProfile, deps GenerationDeps, opts ...SessionOption) (*GenerationSession, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tool profile: %w", err)
	}
	if deps.Ledger == nil || deps.Generator == nil || deps.Sessions == nil {
		return nil, errors.New("generation session requires a credit ledger, a generator and a session repository")
	}
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Viewport == nil {
		deps.Viewport = nopViewport{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = ports.SystemScheduler{}
	}

	s := &GenerationSession{
		profile:     profile,
		deps:        deps,
		moderator:   domain.NewModerator(nil),
		logger:      zap.NewNop(),
		scrollDelay: DefaultScrollDelay,
		state:       domain.StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.slot == nil {
		s.slot = NewResultSlot("")
	}

	return s, nil
}

func (s *GenerationSession) Profile() domain.ToolProfile {
	return s.profile
}

func (s *GenerationSession) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Result returns the current result and, for binary results, its file URL.
func (s *GenerationSession) Result() (domain.GenerationResult, string) {
	return s.slot.Current()
}

// Close discards any in-flight submission and releases the current result.
func (s *GenerationSession) Close() error {
	s.mu.Lock()
	s.seq++
	s.stopPendingScrollLocked()
	s.mu.Unlock()

	return s.slot.Release()
}

func (s *GenerationSession) Submit(ctx context.Context, submission Submission) (Outcome, error) {
	seq := s.begin()
	logger := s.logger.With(zap.String("tool", s.profile.Slug), zap.Uint64("seq", seq))

	if err := s.validate(submission.Fields); err != nil {
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: validationMessage(err)})
		return Outcome{State: domain.StateIdle}, err
	}

	session, err := s.deps.Sessions.Current(ctx)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return Outcome{State: domain.StateIdle}, fmt.Errorf("load session: %w", err)
	}
	if !session.SignedIn() {
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeLogin, Message: loginMessage})
		return Outcome{State: domain.StateIdle}, domain.ErrSignInRequired
	}
	logger = logger.With(zap.String("account_id", string(session.AccountID)))

	if !s.transition(seq, domain.StateCheckingCredit, 0) {
		return Outcome{}, domain.ErrSuperseded
	}

	balance, fetchErr := s.deps.Ledger.FetchBalance(ctx, session.AccountID)
	if fetchErr != nil {
		logger.Warn("credit check failed, treating balance as zero", zap.Error(fetchErr))
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeWarn, Message: creditCheckWarning})
		balance = domain.CreditBalance{}
	}
	if !s.current(seq) {
		return Outcome{}, domain.ErrSuperseded
	}

	if !balance.Available() {
		if !s.transition(seq, domain.StateBlocked, 0) {
			return Outcome{}, domain.ErrSuperseded
		}
		s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeUpsell, Message: upsellMessage})
		outcome := Outcome{State: domain.StateBlocked, Balance: balance}
		if fetchErr != nil {
			return outcome, errors.Join(domain.ErrCreditExhausted, fetchErr)
		}
		return outcome, domain.ErrCreditExhausted
	}

	request := domain.NewGenerationRequest(s.profile, payloadFromFields(submission.Fields), submission.Uploads)
	return s.dispatch(ctx, seq, session.AccountID, request, balance, logger)
}

func (s *GenerationSession) dispatch(ctx context.Context, seq uint64, accountID domain.AccountID, request domain.GenerationRequest, balance domain.CreditBalance, logger *zap.Logger) (Outcome, error) {
	if !s.transition(seq, domain.StateDispatching, 1) {
		return Outcome{}, domain.ErrSuperseded
	}
	s.scheduleLoadingScroll(seq)

	attempt := 0
	for request.AttemptsRemaining > 0 {
		attempt++
		request.AttemptsRemaining--

		raw, err := s.deps.Generator.Generate(ctx, accountID, request, s.profile.Shape)
		if !s.current(seq) {
			logger.Debug("discarding superseded generation response", zap.Int("attempt", attempt))
			return Outcome{}, domain.ErrSuperseded
		}
		if err != nil {
			logger.Info("generation request failed", zap.Int("attempt", attempt), zap.Error(err))
			return s.fail(seq, attempt, balance, err)
		}

		result, err := codec.Decode(raw, s.profile.Shape, s.profile.MIMEType)
		if err != nil {
			logger.Info("generation response could not be decoded", zap.Int("attempt", attempt), zap.Error(err))
			return s.fail(seq, attempt, balance, err)
		}

		if result.Empty() && s.profile.RetriesOnEmpty() {
			if request.AttemptsRemaining == 0 {
				return s.fail(seq, attempt, balance, domain.ErrNoResult)
			}
			logger.Debug("empty result, retrying", zap.Int("attempt", attempt))
			if !s.transition(seq, domain.StateRetryWaiting, attempt) || !s.transition(seq, domain.StateDispatching, attempt+1) {
				return Outcome{}, domain.ErrSuperseded
			}
			continue
		}

		return s.succeed(seq, attempt, balance, result)
	}

	return s.fail(seq, attempt, balance, domain.ErrNoResult)
}

// succeed stores result and enters Success. The artifact is written before the sequence
// check and committed under the session lock, so a superseded or closed session never holds it.
func (s *GenerationSession) succeed(seq uint64, attempt int, balance domain.CreditBalance, result domain.GenerationResult) (Outcome, error) {
	staged, err := s.slot.stage(result)
	if err != nil {
		return s.fail(seq, attempt, balance, fmt.Errorf("store result: %w", err))
	}

	s.mu.Lock()
	if s.seq != seq {
		s.mu.Unlock()
		staged.discard()
		return Outcome{}, domain.ErrSuperseded
	}
	if err := s.slot.commit(staged); err != nil {
		s.mu.Unlock()
		staged.discard()
		return s.fail(seq, attempt, balance, fmt.Errorf("store result: %w", err))
	}
	from := s.state
	s.state = domain.StateSuccess
	s.stopPendingScrollLocked()
	s.mu.Unlock()

	s.notify(Transition{Seq: seq, From: from, To: domain.StateSuccess, Attempt: attempt})
	s.deps.Viewport.ScrollTo(domain.RegionResults)

	return Outcome{
		State:    domain.StateSuccess,
		Result:   result,
		Location: staged.location,
		Attempts: attempt,
		Balance:  balance,
	}, nil
}

func (s *GenerationSession) fail(seq uint64, attempt int, balance domain.CreditBalance, cause error) (Outcome, error) {
	if !s.transition(seq, domain.StateFailure, attempt) {
		return Outcome{}, domain.ErrSuperseded
	}
	s.deps.Notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: domain.UserMessage(cause)})

	return Outcome{State: domain.StateFailure, Attempts: attempt, Balance: balance}, cause
}

func (s *GenerationSession) validate(fields map[string]string) error {
	monitored := s.profile.MonitoredFields
	if len(monitored) == 0 {
		monitored = make([]string, 0, len(fields))
		for name := range fields {
			monitored = append(monitored, name)
		}
		sort.Strings(monitored)
	}

	for _, name := range s.profile.RequiredFields {
		if strings.TrimSpace(fields[name]) == "" {
			return &domain.ValidationError{Field: name, Reason: "is required"}
		}
	}

	for _, name := range monitored {
		if !s.moderator.IsAllowed(fields[name]) {
			return &domain.ValidationError{Field: name}
		}
	}

	return nil
}

// begin starts a new submission and returns its sequence number; older submissions become stale.
func (s *GenerationSession) begin() uint64 {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.stopPendingScrollLocked()
	from := s.state
	s.state = domain.StateIdle
	s.mu.Unlock()

	if from != domain.StateIdle {
		s.notify(Transition{Seq: seq, From: from, To: domain.StateIdle})
	}

	return seq
}

func (s *GenerationSession) current(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seq == seq
}

func (s *GenerationSession) transition(seq uint64, to domain.State, attempt int) bool {
	s.mu.Lock()
	if s.seq != seq {
		s.mu.Unlock()
		return false
	}
	from := s.state
	s.state = to
	if to.Terminal() {
		s.stopPendingScrollLocked()
	}
	s.mu.Unlock()

	s.notify(Transition{Seq: seq, From: from, To: to, Attempt: attempt})
	return true
}

func (s *GenerationSession) scheduleLoadingScroll(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq != seq {
		return
	}
	s.stopPendingScrollLocked()
	s.pendingScroll = s.deps.Scheduler.AfterFunc(s.scrollDelay, func() {
		s.mu.Lock()
		fire := s.seq == seq && s.state.Busy()
		s.pendingScroll = nil
		s.mu.Unlock()

		if fire {
			s.deps.Viewport.ScrollTo(domain.RegionLoading)
		}
	})
}

func (s *GenerationSession) stopPendingScrollLocked() {
	if s.pendingScroll != nil {
		s.pendingScroll.Stop()
		s.pendingScroll = nil
	}
}

func (s *GenerationSession) notify(t Transition) {
	if s.observer != nil {
		s.observer(t)
	}
}

func payloadFromFields(fields map[string]string) map[string]any {
	payload := make(map[string]any, len(fields))
	for name, value := range fields {
		payload[name] = value
	}

	return payload
}

func validationMessage(err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Reason != "" {
			return fmt.Sprintf("%s %s.", validationErr.Field, validationErr.Reason)
		}
		return fmt.Sprintf("Your %s contains words that are not allowed. Please rephrase it.", validationErr.Field)
	}

	return err.Error()
}

type nopNotifier struct{}

func (nopNotifier) Notify(ports.Notice) {}

type nopViewport struct{}

func (nopViewport) ScrollTo(domain.Region) {}
