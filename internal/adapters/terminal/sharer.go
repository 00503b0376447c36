package terminal

import (
	"context"
	"errors"

	"github.com/bnema/contentkit-cli/internal/ports"
)

var errShareUnavailable = errors.New("native share is not available in a terminal")

// UnavailableSharer reports that no native share capability exists, which sends
// callers down the clipboard fallback path.
type UnavailableSharer struct{}

var _ ports.Sharer = UnavailableSharer{}

func (UnavailableSharer) Available() bool {
	return false
}

func (UnavailableSharer) Share(context.Context, ports.SharePayload) error {
	return errShareUnavailable
}
