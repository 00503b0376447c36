package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/contentkit-cli/internal/ports"
)

const maxNameAttempts = 100

// Downloader saves files into a directory without overwriting existing ones:
// "voice.mp3" becomes "voice (1).mp3" when the name is taken.
type Downloader struct {
	dir string
}

var _ ports.Downloader = (*Downloader)(nil)

func NewDownloader(dir string) *Downloader {
	return &Downloader{dir: filepath.Clean(dir)}
}

func (d *Downloader) Save(ctx context.Context, file ports.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(strings.TrimSpace(file.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", errors.New("download file name is empty")
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads directory: %w", err)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, attempt, ext)
		}
		path := filepath.Join(d.dir, candidate)

		out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", candidate, err)
		}

		if _, err := out.Write(file.Data); err != nil {
			_ = out.Close()
			_ = os.Remove(path)
			return "", fmt.Errorf("write %s: %w", candidate, err)
		}
		if err := out.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", candidate, err)
		}

		return path, nil
	}

	return "", fmt.Errorf("no free file name for %s in %s", name, d.dir)
}
