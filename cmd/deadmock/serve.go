package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/artpar/deadmock/adapters/applog"
	"github.com/artpar/deadmock/adapters/bodycache"
	"github.com/artpar/deadmock/adapters/mappingstore"
	"github.com/artpar/deadmock/adapters/matcher"
	"github.com/artpar/deadmock/adapters/server"
	"github.com/artpar/deadmock/adapters/telemetry"
	"github.com/artpar/deadmock/adapters/upstream"
	"github.com/artpar/deadmock/app"
	"github.com/artpar/deadmock/config"
	"github.com/artpar/deadmock/internal/banner"
)

var (
	allClasses     bool
	exactClasses   bool
	patternClasses bool

	mappingsPath string
	filesPath    string
	envPath      string
	metricsAddr  string

	useProxy      bool
	proxyURL      string
	proxyUsername string
	proxyPassword string

	verbose bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock server",
	Long: `Start deadmock's mock HTTP origin server.

The server loads every mapping file under --mappings-path, compiles their
match patterns, binds the listen address resolved from --env-path (or
deadmock's packaged default of 127.0.0.1:32276), and serves requests
until interrupted.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVarP(&allClasses, "all", "a", false, "enable every matcher class (default)")
	serveCmd.Flags().BoolVarP(&exactClasses, "exact", "e", false, "enable only exact-match matcher classes")
	serveCmd.Flags().BoolVarP(&patternClasses, "pattern", "p", false, "enable only pattern-match matcher classes")
	serveCmd.MarkFlagsMutuallyExclusive("all", "exact", "pattern")

	serveCmd.Flags().StringVarP(&mappingsPath, "mappings-path", "m", "mappings", "directory of TOML mapping files")
	serveCmd.Flags().StringVarP(&filesPath, "files-path", "f", "files", "directory of canned response body files")
	serveCmd.Flags().StringVar(&envPath, "env-path", "config/env.yaml", "path to the environment config file")
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "listen address for the /metrics endpoint")

	serveCmd.Flags().BoolVar(&useProxy, "proxy", false, "route every proxied mapping through an outbound HTTP proxy")
	serveCmd.Flags().StringVar(&proxyURL, "proxy-url", "", "outbound proxy URL (required with --proxy)")
	serveCmd.Flags().StringVar(&proxyUsername, "proxy-username", "", "outbound proxy Basic auth username")
	serveCmd.Flags().StringVar(&proxyPassword, "proxy-password", "", "outbound proxy Basic auth password")

	serveCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
}

func matcherClass() matcher.Class {
	switch {
	case exactClasses:
		return matcher.Exact()
	case patternClasses:
		return matcher.Pattern()
	default:
		return matcher.All()
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	log := applog.New(verbose)

	banner.Print(os.Stdout, banner.Info{Version: version, Commit: commit, Built: buildDate})

	store, err := mappingstore.Load(mappingsPath)
	if err != nil {
		log.Error.Error().Err(err).Str("path", mappingsPath).Msg("failed to load mappings")
		return fmt.Errorf("load mappings: %w", err)
	}
	log.Info.Info().Int("count", store.Len()).Str("path", mappingsPath).Msg("mappings loaded")

	env, err := config.Load(envPath)
	if err != nil {
		log.Error.Error().Err(err).Str("path", envPath).Msg("failed to load environment config")
		return fmt.Errorf("load config: %w", err)
	}
	addr := env.Addr()

	proxyCfg := upstream.Config{
		UseProxy:      useProxy,
		ProxyURL:      proxyURL,
		ProxyUsername: proxyUsername,
		ProxyPassword: proxyPassword,
	}
	if useProxy && proxyURL == "" {
		return fmt.Errorf("--proxy requires --proxy-url")
	}

	cache := bodycache.New(filesPath)
	m := matcher.New(store, matcherClass())
	metrics := telemetry.New()

	producer := app.NewProducer(m, cache, proxyCfg, metrics, log)
	pipeline := app.NewPipeline(producer, metrics, log)
	srv := server.New(addr, pipeline, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricsServer := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}
	go func() {
		log.Info.Info().Str("addr", metricsAddr).Msg("serving metrics")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error.Error().Err(err).Msg("metrics server error")
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error.Error().Err(err).Msg("server error")
			return err
		}
	case <-ctx.Done():
		log.Info.Info().Msg("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = metricsServer.Shutdown(shutdownCtx)

	return nil
}
