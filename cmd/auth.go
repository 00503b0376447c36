package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	var accountID string
	var email string
	var token string
	var tokenStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a ContentKit account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tokenStdin {
				raw, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), 64*1024))
				if err != nil {
					return fmt.Errorf("read token from stdin: %w", err)
				}
				token = string(raw)
			}

			session, err := app.auth.SignIn(cmd.Context(), domain.AccountID(accountID), email, token)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", accountLabel(session))
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	cmd.Flags().StringVar(&email, "email", "", "Account email shown by whoami and credits")
	cmd.Flags().StringVar(&token, "token", "", "Backend access token")
	cmd.Flags().BoolVar(&tokenStdin, "token-stdin", false, "Read the access token from stdin")
	_ = cmd.MarkFlagRequired("account")
	cmd.MarkFlagsMutuallyExclusive("token", "token-stdin")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.auth.SignOut(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.auth.Current(cmd.Context())
			if errors.Is(err, domain.ErrSessionNotFound) || (err == nil && !session.SignedIn()) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return err
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\nsigned in: %s\n", accountLabel(session), session.SignedInAt.Local().Format("2006-01-02 15:04"))
			return err
		},
	}
}

func accountLabel(session domain.Session) string {
	if email := strings.TrimSpace(session.Email); email != "" {
		return fmt.Sprintf("%s (%s)", email, session.AccountID)
	}
	return string(session.AccountID)
}
