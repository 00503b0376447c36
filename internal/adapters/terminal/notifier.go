package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/contentkit-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type noticeStyles struct {
	info   lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
	upsell lipgloss.Style
	login  lipgloss.Style
}

func defaultNoticeStyles() noticeStyles {
	return noticeStyles{
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD93D")).Bold(true),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		upsell: lipgloss.NewStyle().Foreground(lipgloss.Color("#C77DFF")).Bold(true).Border(lipgloss.RoundedBorder()).Padding(0, 1),
		login:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4D96FF")).Bold(true),
	}
}

// Notifier prints notices as single styled lines and mirrors them to the log.
type Notifier struct {
	out    io.Writer
	logger *zap.Logger
	styles noticeStyles

	mu      sync.Mutex
	history []ports.Notice
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(out io.Writer, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Notifier{out: out, logger: logger, styles: defaultNoticeStyles()}
}

func (n *Notifier) Notify(notice ports.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.history = append(n.history, notice)
	n.logger.Debug("notice", zap.String("level", string(notice.Level)), zap.String("message", notice.Message))

	if n.out == nil {
		return
	}
	_, _ = fmt.Fprintln(n.out, n.render(notice))
}

// Notices returns every notice emitted so far.
func (n *Notifier) Notices() []ports.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]ports.Notice(nil), n.history...)
}

func (n *Notifier) render(notice ports.Notice) string {
	switch notice.Level {
	case ports.NoticeWarn:
		return n.styles.warn.Render("! " + notice.Message)
	case ports.NoticeError:
		return n.styles.err.Render("x " + notice.Message)
	case ports.NoticeUpsell:
		return n.styles.upsell.Render(notice.Message + "\nRun `ck credits` to see your plan.")
	case ports.NoticeLogin:
		return n.styles.login.Render(notice.Message + " Run `ck login --account <id>`.")
	default:
		return n.styles.info.Render(notice.Message)
	}
}
