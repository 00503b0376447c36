package domain

import (
	"fmt"
	"strings"
)

type State string

const (
	StateIdle           State = "idle"
	StateCheckingCredit State = "checking_credit"
	StateDispatching    State = "dispatching"
	StateRetryWaiting   State = "retry_waiting"
	StateSuccess        State = "success"
	StateFailure        State = "failure"
	StateBlocked        State = "blocked"
)

// Terminal reports whether only a fresh submission can leave the state.
func (s State) Terminal() bool {
	switch s {
	case StateSuccess, StateFailure, StateBlocked:
		return true
	default:
		return false
	}
}

// Busy reports whether a loading indicator should be visible.
func (s State) Busy() bool {
	switch s {
	case StateCheckingCredit, StateDispatching, StateRetryWaiting:
		return true
	default:
		return false
	}
}

// ToolProfile configures one generation tool: where it posts, what it returns and how often it may retry.
type ToolProfile struct {
	Slug            string
	Name            string
	Category        string
	Shape           Shape
	MIMEType        string
	Attempts        int
	MonitoredFields []string
	RequiredFields  []string
	UploadField     string
	DefaultFilename string
}

func (p ToolProfile) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("slug is required")
	}
	if !p.Shape.Valid() {
		return fmt.Errorf("tool %s: unsupported shape %q", p.Slug, p.Shape)
	}
	if p.Attempts < 1 {
		return fmt.Errorf("tool %s: attempts must be at least 1", p.Slug)
	}

	return nil
}

// RetriesOnEmpty reports whether an empty result is retried instead of accepted.
func (p ToolProfile) RetriesOnEmpty() bool {
	return p.Attempts > 1
}

type Upload struct {
	Field    string
	Filename string
	Data     []byte
}

type GenerationRequest struct {
	ToolEndpoint      string
	Payload           map[string]any
	Uploads           []Upload
	AttemptsRemaining int
}

func NewGenerationRequest(profile ToolProfile, payload map[string]any, uploads []Upload) GenerationRequest {
	attempts := profile.Attempts
	if attempts < 1 {
		attempts = 1
	}
	if payload == nil {
		payload = map[string]any{}
	}

	return GenerationRequest{
		ToolEndpoint:      profile.Slug,
		Payload:           payload,
		Uploads:           uploads,
		AttemptsRemaining: attempts,
	}
}

// Multipart reports whether the request must be sent as a multipart form.
func (r GenerationRequest) Multipart() bool {
	return len(r.Uploads) > 0
}
