package terminal

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipboardWritesOSC52Sequence(t *testing.T) {
	var out bytes.Buffer
	clipboard := NewClipboard(&out)
	clipboard.getenv = func(string) string { return "" }

	require.NoError(t, clipboard.Copy(context.Background(), "a\n\nb"))

	assert.Contains(t, out.String(), "\x1b]52;c;")
	assert.Contains(t, out.String(), base64.StdEncoding.EncodeToString([]byte("a\n\nb")))
}

func TestClipboardWrapsForTmux(t *testing.T) {
	var out bytes.Buffer
	clipboard := NewClipboard(&out)
	clipboard.getenv = func(key string) string {
		if key == "TMUX" {
			return "/tmp/tmux-1000/default,1,0"
		}
		return ""
	}

	require.NoError(t, clipboard.Copy(context.Background(), "hi"))
	assert.Contains(t, out.String(), "\x1bPtmux;")
}

func TestNotifierRendersAndRecords(t *testing.T) {
	var out bytes.Buffer
	notifier := NewNotifier(&out, nil)

	notifier.Notify(ports.Notice{Level: ports.NoticeError, Message: "Topic is too long"})
	notifier.Notify(ports.Notice{Level: ports.NoticeLogin, Message: "Please sign in to continue."})

	assert.Contains(t, out.String(), "Topic is too long")
	assert.Contains(t, out.String(), "ck login")
	assert.Len(t, notifier.Notices(), 2)
}

func TestViewportPrintsSectionHeaders(t *testing.T) {
	var out bytes.Buffer
	viewport := NewViewport(&out)

	viewport.ScrollTo(domain.RegionLoading)
	viewport.ScrollTo(domain.RegionResults)

	assert.Contains(t, out.String(), "Generating")
	assert.Contains(t, out.String(), "Result")
}

func TestDownloaderNeverOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Downloads")
	downloader := NewDownloader(dir)

	first, err := downloader.Save(context.Background(), ports.File{Name: "voice.mp3", Data: []byte("one")})
	require.NoError(t, err)
	second, err := downloader.Save(context.Background(), ports.File{Name: "../voice.mp3", Data: []byte("two")})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "voice.mp3"), first)
	assert.Equal(t, filepath.Join(dir, "voice (1).mp3"), second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestUnavailableSharer(t *testing.T) {
	sharer := UnavailableSharer{}
	assert.False(t, sharer.Available())
	assert.Error(t, sharer.Share(context.Background(), ports.SharePayload{}))
}
