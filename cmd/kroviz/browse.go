package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-kroviz/pkg/orchestrator"
	"github.com/goliatone/go-kroviz/pkg/page"
	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/renderers/tui"
	"github.com/goliatone/go-kroviz/pkg/ro"
)

var browsePlain bool

var browseCmd = &cobra.Command{
	Use:   "browse [href]",
	Short: "Browse the backend in the terminal",
	Long: `Prints each page as an outline and prompts for the next link to follow.
Starts from the menu bars unless an href is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().BoolVar(&browsePlain, "plain", false, "Disable terminal colours")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	backend, err := newClient(cfg)
	if err != nil {
		return err
	}

	var rendererOptions []tui.Option
	if browsePlain {
		rendererOptions = append(rendererOptions, tui.WithStyles(tui.PlainStyles()))
	}
	outline := tui.New(rendererOptions...)
	registry := render.NewRegistry()
	registry.MustRegister(outline)
	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(outline.Name()),
		orchestrator.WithLogger(logger.Named("orchestrator")),
	)
	navigator := tui.NewNavigator(
		tui.WithRenderer(outline),
		tui.WithOutput(cmd.OutOrStdout()),
	)

	bars, err := backend.Menubars(ctx)
	if err != nil {
		return pipelineError("load menu bars", err)
	}

	var link ro.Link
	if len(args) == 1 {
		link = ro.Link{Href: args[0], Method: http.MethodGet}
	}
	for {
		req := orchestrator.Request{
			Content: orchestrator.Content{Menubars: &bars},
			Status:  page.Status{Message: "Connected to " + backend.BaseURL()},
		}
		if link.Href != "" {
			loaded, err := orchestrator.Load(ctx, backend, link)
			if err != nil {
				logger.Debug("follow failed", zap.String("href", link.Href), zap.Error(err))
				req.Status = page.Status{Level: page.LevelError, Message: err.Error(), URL: link.Href}
			} else {
				loaded.Content.Menubars = &bars
				req.Content = loaded.Content
				req.Status = loaded.Status
			}
		}

		navigator.Visit(link)
		p, err := orch.Compose(ctx, req)
		if err != nil {
			return pipelineError("compose", err)
		}
		next, err := navigator.Choose(ctx, p.Root, p.Options)
		switch {
		case errors.Is(err, tui.ErrQuit), errors.Is(err, tui.ErrNoChoices):
			return nil
		case err != nil:
			return err
		}
		link = next
	}
}
