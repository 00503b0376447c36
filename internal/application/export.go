package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/contentkit-cli/internal/codec"
	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
)

var ErrNothingToExport = errors.New("no result to export")

const emptyShareMessage = "The result is empty, so there is nothing to share."

// ExportService copies, saves and shares generation results. It never calls the backend.
type ExportService struct {
	clipboard  ports.Clipboard
	downloader ports.Downloader
	sharer     ports.Sharer
	notifier   ports.Notifier
}

func NewExportService(clipboard ports.Clipboard, downloader ports.Downloader, sharer ports.Sharer, notifier ports.Notifier) *ExportService {
	if notifier == nil {
		notifier = nopNotifier{}
	}

	return &ExportService{
		clipboard:  clipboard,
		downloader: downloader,
		sharer:     sharer,
		notifier:   notifier,
	}
}

func (s *ExportService) Copy(ctx context.Context, result domain.GenerationResult) error {
	if result == nil {
		return ErrNothingToExport
	}

	text, err := codec.ToClipboardText(result)
	if err != nil {
		return err
	}

	return s.copyText(ctx, text, "Copied to clipboard.")
}

// Download saves the result and returns the path it was written to.
func (s *ExportService) Download(ctx context.Context, result domain.GenerationResult, filename string) (string, error) {
	if result == nil {
		return "", ErrNothingToExport
	}
	if s.downloader == nil {
		return "", errors.New("downloads are not available")
	}

	file, err := codec.ToDownloadableFile(result, filename)
	if err != nil {
		return "", err
	}

	path, err := s.downloader.Save(ctx, file)
	if err != nil {
		s.notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: "Could not save the file."})
		return "", fmt.Errorf("save %s: %w", file.Name, err)
	}

	s.notifier.Notify(ports.Notice{Level: ports.NoticeInfo, Message: fmt.Sprintf("Saved to %s", path)})
	return path, nil
}

// Share hands the result to the platform share capability. Without one, textual results are
// copied to the clipboard and binary results copy their location instead.
func (s *ExportService) Share(ctx context.Context, result domain.GenerationResult, title, location string) error {
	if result == nil {
		return ErrNothingToExport
	}
	if result.Empty() {
		s.notifier.Notify(ports.Notice{Level: ports.NoticeInfo, Message: emptyShareMessage})
		return nil
	}

	payload, err := codec.ToSharePayload(result, title)
	if err != nil {
		return err
	}

	if s.sharer != nil && s.sharer.Available() {
		if err := s.sharer.Share(ctx, payload); err != nil {
			return fmt.Errorf("share result: %w", err)
		}
		return nil
	}

	fallback := payload.Text
	if fallback == "" {
		fallback = location
	}
	if fallback == "" {
		return errors.New("sharing is not available and the result has no shareable text")
	}

	return s.copyText(ctx, fallback, "Sharing is not available here, so the result was copied to your clipboard.")
}

func (s *ExportService) copyText(ctx context.Context, text, confirmation string) error {
	if s.clipboard == nil {
		return errors.New("clipboard is not available")
	}
	if err := s.clipboard.Copy(ctx, text); err != nil {
		s.notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: "Could not copy to clipboard."})
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	s.notifier.Notify(ports.Notice{Level: ports.NoticeInfo, Message: confirmation})
	return nil
}
