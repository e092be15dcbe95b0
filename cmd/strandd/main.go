// strandd is a small demo server for the strand pipeline: it serves
// the static mounts and echo routes defined by a YAML config file.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/strandhttp/strand"
	"github.com/strandhttp/strand/config"
	"github.com/strandhttp/strand/middleware"
)

var (
	flagConfig string
	flagListen string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "strandd",
		Short:         "Demo HTTP server built on the strand pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVarP(&flagListen, "listen", "l", "", "listen address (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "strandd:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flagListen != "" {
		cfg.Listen = flagListen
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return err
	}

	app, err := buildApp(cfg)
	if err != nil {
		return err
	}

	idIn, idOut := middleware.RequestID(middleware.RequestIDConfig{TrustIncoming: true})
	logIn, logOut := middleware.AccessLog(middleware.AccessLogConfig{Logger: logger})
	metricsIn, metricsOut := middleware.Metrics()
	app.UseIncoming(idIn, logIn, metricsIn)
	app.UseOutgoing(idOut, logOut, metricsOut)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", app)

	logger.Info("listening", "addr", cfg.Listen)
	return http.ListenAndServe(cfg.Listen, mux)
}

// buildApp wires the configured routes: a health endpoint, an echo
// endpoint, the static mounts, and the optional fallback body.
func buildApp(cfg config.Config) (*strand.App, error) {
	app := strand.New()

	if err := app.Get("/healthz", func(_ context.Context, _ *strand.Request) (any, error) {
		return []byte("ok"), nil
	}); err != nil {
		return nil, err
	}

	if err := app.Get("/echo/:word", func(_ context.Context, req *strand.Request) (any, error) {
		return req.Params["word"], nil
	}); err != nil {
		return nil, err
	}

	for _, mount := range cfg.Static {
		app.Serve(mount.Prefix, os.DirFS(mount.Dir))
	}

	if cfg.Fallback != "" {
		body := cfg.Fallback
		app.Fallback(func(_ context.Context, _ *strand.Request, reason strand.Reason, _ error) (any, error) {
			if reason == strand.ReasonHandlerError {
				return nil, nil
			}
			return body, nil
		})
	}

	return app, nil
}
