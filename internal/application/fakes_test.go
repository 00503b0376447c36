package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// fakeScheduler records timers and fires them only when the test asks.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) ports.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, timer)
	return timer
}

func (s *fakeScheduler) FireAll() int {
	s.mu.Lock()
	pending := make([]*fakeTimer, 0, len(s.timers))
	for _, timer := range s.timers {
		if !timer.stopped && !timer.fired {
			timer.fired = true
			pending = append(pending, timer)
		}
	}
	s.mu.Unlock()

	for _, timer := range pending {
		timer.fn()
	}
	return len(pending)
}

func (s *fakeScheduler) Scheduled() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*fakeTimer(nil), s.timers...)
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (n *recordingNotifier) Notify(notice ports.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) Levels() []ports.NoticeLevel {
	n.mu.Lock()
	defer n.mu.Unlock()

	levels := make([]ports.NoticeLevel, 0, len(n.notices))
	for _, notice := range n.notices {
		levels = append(levels, notice.Level)
	}
	return levels
}

func (n *recordingNotifier) Count(level ports.NoticeLevel) int {
	count := 0
	for _, l := range n.Levels() {
		if l == level {
			count++
		}
	}
	return count
}

type recordingViewport struct {
	mu      sync.Mutex
	regions []domain.Region
}

func (v *recordingViewport) ScrollTo(region domain.Region) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.regions = append(v.regions, region)
}

func (v *recordingViewport) Regions() []domain.Region {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]domain.Region(nil), v.regions...)
}

type memorySessions struct {
	session domain.Session
	err     error
}

func (m *memorySessions) Current(context.Context) (domain.Session, error) {
	if m.err != nil {
		return domain.Session{}, m.err
	}
	if !m.session.SignedIn() {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return m.session, nil
}

func (m *memorySessions) Save(_ context.Context, session domain.Session) error {
	m.session = session
	return nil
}

func (m *memorySessions) Clear(context.Context) error {
	m.session = domain.Session{}
	return nil
}

func signedIn() *memorySessions {
	return &memorySessions{session: domain.Session{AccountID: "acct-1", Email: "ada@example.com"}}
}

func signedOut() *memorySessions {
	return &memorySessions{}
}

type recordingClipboard struct {
	copied []string
	err    error
}

func (c *recordingClipboard) Copy(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

type recordingDownloader struct {
	files []ports.File
}

func (d *recordingDownloader) Save(_ context.Context, file ports.File) (string, error) {
	d.files = append(d.files, file)
	return "/downloads/" + file.Name, nil
}

type fakeSharer struct {
	available bool
	shared    []ports.SharePayload
}

func (s *fakeSharer) Available() bool {
	return s.available
}

func (s *fakeSharer) Share(_ context.Context, payload ports.SharePayload) error {
	s.shared = append(s.shared, payload)
	return nil
}
