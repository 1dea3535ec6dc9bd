package main

import (
	"fmt"

	"github.com/goliatone/go-kroviz/pkg/client"
	"github.com/goliatone/go-kroviz/pkg/config"
	"github.com/goliatone/go-kroviz/pkg/orchestrator"
	"github.com/goliatone/go-kroviz/pkg/renderers/vanilla"
)

func newClient(c config.Config) (*client.Client, error) {
	return client.New(c.Backend.URL,
		client.WithBasicAuth(c.Backend.Username, c.Backend.Password),
		client.WithTimeout(c.Backend.Timeout.Std()),
		client.WithLogger(logger.Named("client")),
	)
}

// themeOptions registers the configured theme manifests, if any.
func themeOptions(r config.Render) ([]orchestrator.Option, error) {
	manifests, err := r.LoadManifests()
	if err != nil {
		return nil, err
	}
	if len(manifests) == 0 {
		return nil, nil
	}
	return []orchestrator.Option{
		orchestrator.WithThemeManifests(manifests...),
		orchestrator.WithThemeDefaults(r.Theme, r.Variant),
	}, nil
}

func htmlOptions(r config.Render) []vanilla.Option {
	var options []vanilla.Option
	if r.TemplatesDir != "" {
		options = append(options, vanilla.WithTemplatesDir(r.TemplatesDir))
	}
	if r.InlineStyles {
		options = append(options, vanilla.WithDefaultStyles())
	}
	return options
}

func pipelineError(what string, err error) error {
	return fmt.Errorf("%s: %w", what, err)
}
