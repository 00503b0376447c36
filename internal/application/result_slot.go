package application

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/contentkit-cli/internal/codec"
	"github.com/bnema/contentkit-cli/internal/domain"
)

const resultFilePattern = "ck-result-*"

// ResultSlot holds the result currently shown by a screen. Binary results are written to a
// temporary file whose file:// URL stays valid until the result is replaced or released.
type ResultSlot struct {
	dir string

	mu       sync.Mutex
	result   domain.GenerationResult
	path     string
	location string
}

// NewResultSlot stores binary artifacts under dir, or the system temp dir when dir is empty.
func NewResultSlot(dir string) *ResultSlot {
	return &ResultSlot{dir: dir}
}

// stagedResult is a result whose artifact exists on disk but is not yet held by the slot.
type stagedResult struct {
	result   domain.GenerationResult
	path     string
	location string
}

// discard removes an artifact that never made it into the slot.
func (r stagedResult) discard() {
	if r.path != "" {
		_ = os.Remove(r.path)
	}
}

// Replace swaps in result, releasing the previous artifact first. It returns the new
// artifact URL, empty for textual results.
func (s *ResultSlot) Replace(result domain.GenerationResult) (string, error) {
	staged, err := s.stage(result)
	if err != nil {
		return "", err
	}
	if err := s.commit(staged); err != nil {
		staged.discard()
		return "", err
	}

	return staged.location, nil
}

// stage materializes result without touching the slot.
func (s *ResultSlot) stage(result domain.GenerationResult) (stagedResult, error) {
	binary, ok := result.(domain.BinaryResult)
	if !ok {
		return stagedResult{result: result}, nil
	}

	path, err := s.materialize(binary)
	if err != nil {
		return stagedResult{}, err
	}

	return stagedResult{
		result:   result,
		path:     path,
		location: (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(),
	}, nil
}

// commit makes staged the current result, releasing the previous artifact.
func (s *ResultSlot) commit(staged stagedResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.releaseLocked(); err != nil {
		return err
	}
	s.result = staged.result
	s.path = staged.path
	s.location = staged.location

	return nil
}

func (s *ResultSlot) Current() (domain.GenerationResult, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result, s.location
}

// Release drops the current result and revokes its artifact URL.
func (s *ResultSlot) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.releaseLocked()
}

func (s *ResultSlot) releaseLocked() error {
	path := s.path
	s.result = nil
	s.path = ""
	s.location = ""

	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("release result artifact: %w", err)
	}

	return nil
}

func (s *ResultSlot) materialize(result domain.BinaryResult) (string, error) {
	dir := s.dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create result directory: %w", err)
	}

	file, err := os.CreateTemp(dir, resultFilePattern+codec.ExtensionFor(result.MIMEType))
	if err != nil {
		return "", fmt.Errorf("create result artifact: %w", err)
	}

	path := file.Name()
	if _, err := file.Write(result.Data); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write result artifact: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close result artifact: %w", err)
	}

	return path, nil
}
