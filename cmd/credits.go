package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	creditsview "github.com/bnema/contentkit-cli/internal/adapters/render/credits"
	"github.com/bnema/contentkit-cli/internal/application"
	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCreditsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "credits",
		Aliases: []string{"plan"},
		Short:   "Show the credits left on the signed-in account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCredits(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runCredits(cmd *cobra.Command, app *app, asJSON bool) error {
	var status application.CreditStatus
	fetch := func(ctx context.Context) error {
		var err error
		status, err = app.credits.Balance(ctx)
		return err
	}

	var err error
	if asJSON {
		err = fetch(cmd.Context())
	} else {
		err = runSpinner(cmd.Context(), cmd.ErrOrStderr(), "Fetching credits...", nil, fetch)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSignInRequired) {
			return fmt.Errorf("%w: run `ck login --account <id>` first", err)
		}
		return err
	}

	if asJSON {
		encoded, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("encode credits: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return err
	}

	view, err := creditsview.Render(status)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), view)
	return err
}
