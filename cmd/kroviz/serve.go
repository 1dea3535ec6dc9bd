package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-kroviz/pkg/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser front end",
	Long: `Starts an HTTP server that renders the backend's menu bars on / and any
RO resource on /follow?href=<url>. Links in rendered pages point back at
/follow so the whole backend can be browsed without client-side code.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	backend, err := newClient(cfg)
	if err != nil {
		return err
	}
	themes, err := themeOptions(cfg.Render)
	if err != nil {
		return err
	}

	srv, err := server.New(backend,
		server.WithLogger(logger.Named("server")),
		server.WithTimeouts(cfg.Server.ReadTimeout.Std(), cfg.Server.ShutdownTimeout.Std()),
		server.WithHTMLOptions(htmlOptions(cfg.Render)...),
		server.WithPipelineOptions(themes...),
	)
	if err != nil {
		return pipelineError("build server", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, addr)
}
