package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	catalogview "github.com/bnema/contentkit-cli/internal/adapters/render/catalog"
	"github.com/bnema/contentkit-cli/internal/adapters/terminal"
	"github.com/bnema/contentkit-cli/internal/application"
	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse, search and bookmark ContentKit tools",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogSearchCmd(app),
		newCatalogBookmarkCmd(app),
		newCatalogBrowseCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *app) *cobra.Command {
	var category string
	var filter string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tools of a category, or the categories when none is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(category) == "" {
				for _, name := range app.categories() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			svc := app.newCatalogService(terminal.NewNotifier(cmd.ErrOrStderr(), app.logger))
			tools, err := svc.SelectCategory(cmd.Context(), category)
			if err != nil {
				return err
			}
			if strings.TrimSpace(filter) != "" {
				tools = application.FilterLocal(tools, filter)
			}

			return writeTools(cmd, category, tools, asJSON)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category label, or \"My Tools\" for bookmarks")
	cmd.Flags().StringVar(&filter, "filter", "", "Keep tools whose name or tag line contains this text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newCatalogSearchCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the tool catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			svc := app.newCatalogService(terminal.NewNotifier(cmd.ErrOrStderr(), app.logger))
			tools, err := svc.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			return writeTools(cmd, fmt.Sprintf("Search: %s", query), tools, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newCatalogBookmarkCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark TOOL_ID",
		Short: "Add or remove a tool from My Tools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolID := domain.ToolID(strings.TrimSpace(args[0]))
			svc := app.newCatalogService(terminal.NewNotifier(cmd.ErrOrStderr(), app.logger))

			// Load the bookmarks first so the toggle starts from the real flag.
			if _, err := svc.SelectCategory(cmd.Context(), domain.MyToolsCategory); err != nil {
				return err
			}

			bookmarked, err := svc.ToggleBookmark(cmd.Context(), toolID)
			if err != nil {
				return err
			}

			if bookmarked {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", toolID)
			} else {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", toolID)
			}
			return err
		},
	}
}

func newCatalogBrowseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The browser shows notices in its own status line.
			svc := app.newCatalogService(terminal.NewNotifier(nil, app.logger))

			tool, ok, err := catalogview.Browse(cmd.Context(), svc, app.categories(), cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				if errors.Is(err, domain.ErrSuperseded) {
					return nil
				}
				return err
			}
			if !ok {
				return nil
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", tool.Name, tool.ID)
			return err
		},
	}
}

type toolJSON struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TagLine      string   `json:"tag_line,omitempty"`
	LogoURL      string   `json:"logo_url,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	IsBookmarked bool     `json:"is_bookmarked"`
}

func writeTools(cmd *cobra.Command, heading string, tools []domain.Tool, asJSON bool) error {
	if !asJSON {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), catalogview.RenderList(heading, tools))
		return err
	}

	payload := make([]toolJSON, 0, len(tools))
	for _, tool := range tools {
		payload = append(payload, toolJSON{
			ID:           string(tool.ID),
			Name:         tool.Name,
			TagLine:      tool.TagLine,
			LogoURL:      tool.LogoURL,
			Categories:   tool.CategoryLabels,
			IsBookmarked: tool.IsBookmarked,
		})
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tools: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return err
}
