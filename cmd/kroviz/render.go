package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-kroviz/pkg/config"
	"github.com/goliatone/go-kroviz/pkg/orchestrator"
	"github.com/goliatone/go-kroviz/pkg/render"
	"github.com/goliatone/go-kroviz/pkg/renderers/tui"
	"github.com/goliatone/go-kroviz/pkg/renderers/vanilla"
)

var (
	renderObject   string
	renderLayout   string
	renderMenubars string
	renderResult   string
	renderList     string
	renderName     string
	renderOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render local RO payloads",
	Long: `Renders RO documents saved on disk without contacting a backend.

Example:
  kroviz render --object fred.json --layout fred.layout.xml --menubars menubars.json`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderObject, "object", "", "Domain object representation")
	renderCmd.Flags().StringVar(&renderLayout, "layout", "", "Object layout (JSON, XML or YAML)")
	renderCmd.Flags().StringVar(&renderMenubars, "menubars", "", "Menu bars representation")
	renderCmd.Flags().StringVar(&renderList, "list", "", "List representation")
	renderCmd.Flags().StringVar(&renderResult, "result", "", "Action result representation")
	renderCmd.Flags().StringVarP(&renderName, "renderer", "r", "", "Renderer: vanilla or tui (overrides config)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (stdout if empty)")
}

func runRender(cmd *cobra.Command, args []string) error {
	var payloads orchestrator.Payloads
	for _, entry := range []struct {
		path string
		dst  *[]byte
	}{
		{renderObject, &payloads.Object},
		{renderLayout, &payloads.Layout},
		{renderMenubars, &payloads.Menubars},
		{renderList, &payloads.List},
		{renderResult, &payloads.Result},
	} {
		if entry.path == "" {
			continue
		}
		data, err := os.ReadFile(entry.path)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
		*entry.dst = data
	}

	orch, err := localOrchestrator(cfg.Render)
	if err != nil {
		return err
	}
	name := cfg.Render.Renderer
	if renderName != "" {
		name = renderName
	}

	out, err := orch.Generate(cmd.Context(), orchestrator.Request{
		Raw:          payloads,
		Renderer:     name,
		ThemeName:    cfg.Render.Theme,
		ThemeVariant: cfg.Render.Variant,
	})
	if err != nil {
		return pipelineError("render", err)
	}

	if renderOutput == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(renderOutput, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("page written", zap.String("path", renderOutput))
	return nil
}

// localOrchestrator registers both renderers so either can be picked per
// request.
func localOrchestrator(r config.Render) (*orchestrator.Orchestrator, error) {
	html, err := vanilla.New(htmlOptions(r)...)
	if err != nil {
		return nil, pipelineError("html renderer", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(tui.New())

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(r.Renderer),
		orchestrator.WithLogger(logger.Named("orchestrator")),
	}
	themes, err := themeOptions(r)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(append(options, themes...)...), nil
}
