package ports

import (
	"context"

	"github.com/bnema/contentkit-cli/internal/domain"
)

type Clipboard interface {
	Copy(ctx context.Context, text string) error
}

type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

type Downloader interface {
	// Save stores the file and returns where it landed.
	Save(ctx context.Context, file File) (string, error)
}

type SharePayload struct {
	Title string
	Text  string
	Files []File
}

type Sharer interface {
	Available() bool
	Share(ctx context.Context, payload SharePayload) error
}

type NoticeLevel string

const (
	NoticeInfo   NoticeLevel = "info"
	NoticeWarn   NoticeLevel = "warn"
	NoticeError  NoticeLevel = "error"
	NoticeUpsell NoticeLevel = "upsell"
	NoticeLogin  NoticeLevel = "login"
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier surfaces short user-facing messages.
type Notifier interface {
	Notify(notice Notice)
}

type Viewport interface {
	ScrollTo(region domain.Region)
}
