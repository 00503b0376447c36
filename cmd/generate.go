package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	resultview "github.com/bnema/contentkit-cli/internal/adapters/render/result"
	"github.com/bnema/contentkit-cli/internal/adapters/terminal"
	"github.com/bnema/contentkit-cli/internal/application"
	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 32 << 20

type generateOptions struct {
	fields   []string
	files    []string
	copy     bool
	download string
	share    bool
	asJSON   bool
}

func newGenerateCmd(app *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:     "generate TOOL",
		Aliases: []string{"gen"},
		Short:   "Run a generation tool",
		Long:    "Run a generation tool. Inputs are passed as --field name=value; tools that take a file accept --file. Binary results are saved to the downloads directory.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.fields, "field", "f", nil, "Input field as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.files, "file", nil, "File to upload (repeatable)")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the text result to the clipboard")
	cmd.Flags().StringVar(&opts.download, "download", "", "Save the result under this file name in the downloads directory")
	cmd.Flags().BoolVar(&opts.share, "share", false, "Share the result")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *app, slug string, opts generateOptions) error {
	profile, err := app.registry.Get(slug)
	if err != nil {
		return err
	}

	fields, err := parseFields(opts.fields)
	if err != nil {
		return err
	}

	uploads, err := readUploads(profile, opts.files)
	if err != nil {
		return err
	}

	// Spinner output owns stderr while the request runs; notices and section markers
	// are held back and flushed once it stops.
	chrome := &syncBuffer{}
	var viewport ports.Viewport
	notifierOut := cmd.ErrOrStderr()
	if !opts.asJSON {
		notifierOut = chrome
		viewport = terminal.NewViewport(chrome)
	}

	relay := &labelRelay{}
	session, err := app.newGenerationSession(profile, terminal.NewNotifier(notifierOut, app.logger), viewport, func(t application.Transition) {
		relay.set(stateLabel(profile, t))
	})
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()

	submission := application.Submission{Fields: fields, Uploads: uploads}
	var outcome application.Outcome
	submit := func(ctx context.Context) error {
		var submitErr error
		outcome, submitErr = session.Submit(ctx, submission)
		return submitErr
	}

	if opts.asJSON {
		err = submit(cmd.Context())
	} else {
		err = runSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("%s: starting...", profile.Name), relay, submit)
		chrome.flushTo(cmd.ErrOrStderr())
	}
	if err != nil {
		return generateError(profile, err)
	}

	exports := app.newExportService(cmd.ErrOrStderr(), terminal.NewNotifier(cmd.ErrOrStderr(), app.logger))
	saved, err := exportResult(cmd.Context(), exports, profile, outcome, opts)
	if err != nil {
		return err
	}

	if opts.asJSON {
		return writeOutcomeJSON(cmd, profile, outcome, saved)
	}

	location := outcome.Location
	if saved != "" {
		location = saved
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), resultview.Render(profile.Name, outcome.Result, location))
	return err
}

// exportResult runs the requested export actions. Binary results are always saved since
// their temp file goes away with the process.
func exportResult(ctx context.Context, exports *application.ExportService, profile domain.ToolProfile, outcome application.Outcome, opts generateOptions) (string, error) {
	var saved string

	filename := strings.TrimSpace(opts.download)
	if filename == "" && outcome.Result != nil && outcome.Result.Shape() == domain.ShapeBlob {
		filename = profile.DefaultFilename
		if filename == "" {
			filename = profile.Slug
		}
	}
	if filename != "" {
		path, err := exports.Download(ctx, outcome.Result, filename)
		if err != nil {
			return "", err
		}
		saved = path
	}

	if opts.copy {
		if err := exports.Copy(ctx, outcome.Result); err != nil {
			return saved, err
		}
	}

	if opts.share {
		location := outcome.Location
		if saved != "" {
			location = saved
		}
		if err := exports.Share(ctx, outcome.Result, profile.Name, location); err != nil {
			return saved, err
		}
	}

	return saved, nil
}

func stateLabel(profile domain.ToolProfile, t application.Transition) string {
	switch t.To {
	case domain.StateCheckingCredit:
		return fmt.Sprintf("%s: checking credits...", profile.Name)
	case domain.StateDispatching:
		if t.Attempt > 1 {
			return fmt.Sprintf("%s: generating (attempt %d/%d)...", profile.Name, t.Attempt, profile.Attempts)
		}
		return fmt.Sprintf("%s: generating...", profile.Name)
	case domain.StateRetryWaiting:
		return fmt.Sprintf("%s: empty result, retrying...", profile.Name)
	default:
		return fmt.Sprintf("%s: %s", profile.Name, t.To)
	}
}

func generateError(profile domain.ToolProfile, err error) error {
	switch {
	case errors.Is(err, domain.ErrSignInRequired):
		return fmt.Errorf("%s: %w: run `ck login --account <id>` first", profile.Slug, err)
	case errors.Is(err, domain.ErrCreditExhausted):
		return fmt.Errorf("%s: %w", profile.Slug, domain.ErrCreditExhausted)
	default:
		return fmt.Errorf("%s: %w", profile.Slug, err)
	}
}

func parseFields(raw []string) (map[string]string, error) {
	fields := make(map[string]string, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --field %q: expected name=value", entry)
		}
		fields[name] = value
	}

	return fields, nil
}

func readUploads(profile domain.ToolProfile, paths []string) ([]domain.Upload, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if profile.UploadField == "" {
		return nil, fmt.Errorf("tool %s does not accept file uploads", profile.Slug)
	}

	uploads := make([]domain.Upload, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		if info.Size() > maxUploadBytes {
			return nil, fmt.Errorf("upload %s is larger than %d MiB", path, maxUploadBytes>>20)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		uploads = append(uploads, domain.Upload{
			Field:    profile.UploadField,
			Filename: filepath.Base(path),
			Data:     data,
		})
	}

	return uploads, nil
}

type outcomeJSON struct {
	Tool     string   `json:"tool"`
	State    string   `json:"state"`
	Attempts int      `json:"attempts"`
	Text     string   `json:"text,omitempty"`
	Variants []string `json:"variants,omitempty"`
	MIMEType string   `json:"mime_type,omitempty"`
	Bytes    int      `json:"bytes,omitempty"`
	Saved    string   `json:"saved,omitempty"`
	Credits  int      `json:"credits_before"`
}

func writeOutcomeJSON(cmd *cobra.Command, profile domain.ToolProfile, outcome application.Outcome, saved string) error {
	payload := outcomeJSON{
		Tool:     profile.Slug,
		State:    string(outcome.State),
		Attempts: outcome.Attempts,
		Saved:    saved,
		Credits:  outcome.Balance.Current,
	}

	switch r := outcome.Result.(type) {
	case domain.TextResult:
		payload.Text = r.Text
	case domain.TextListResult:
		payload.Variants = r.Items
	case domain.BinaryResult:
		payload.MIMEType = r.MIMEType
		payload.Bytes = len(r.Data)
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return err
}

// syncBuffer collects output written from the session and its scroll timer.
type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) flushTo(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, _ = w.Write(b.buf)
	b.buf = nil
}
