package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Fernoxx/slithermatch-server/internal/arena"
	"github.com/Fernoxx/slithermatch-server/internal/config"
	gamenet "github.com/Fernoxx/slithermatch-server/internal/net"
	"github.com/Fernoxx/slithermatch-server/internal/telemetry"
	"github.com/Fernoxx/slithermatch-server/logging"
	"github.com/Fernoxx/slithermatch-server/logging/sinks"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game server",
	Long: `Run the authoritative game server.

The process hosts the persistent freeplay room plus on-demand paid and
casual rooms, and serves the websocket endpoint at /ws.

Examples:
  server serve
  server serve --addr :9000
  server serve --config ./slithermatch.yaml`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		settings.Addr = flagAddr
	}

	router, closeRouter, err := buildRouter(settings.Logging)
	if err != nil {
		return err
	}
	defer closeRouter()

	counters := telemetry.NewCounters()
	hubCfg := arena.DefaultConfig()
	hubCfg.Seed = settings.Seed
	if settings.Timers.CountdownSeconds > 0 {
		hubCfg.CountdownDuration = time.Duration(settings.Timers.CountdownSeconds) * time.Second
	}
	if settings.Timers.TeardownSeconds > 0 {
		hubCfg.TeardownDelay = time.Duration(settings.Timers.TeardownSeconds) * time.Second
	}
	hub := arena.NewHub(hubCfg, router, counters)

	server := &http.Server{
		Addr:    settings.Addr,
		Handler: gamenet.NewServer(hub, counters).Routes(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Printf("server listening on %s", settings.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		hub.RunSimulation(ctx.Done())
		return nil
	})
	group.Go(func() error {
		hub.RunBroadcast(ctx.Done())
		return nil
	})
	group.Go(func() error {
		hub.RunLeaderboard(ctx.Done())
		return nil
	})
	group.Go(func() error {
		hub.RunStatus(ctx.Done())
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func buildRouter(settings config.LoggingSettings) (*logging.Router, func(), error) {
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = settings.Sinks

	var named []logging.NamedSink
	if cfg.HasSink("console") {
		named = append(named, logging.NamedSink{
			Name: "console",
			Sink: sinks.NewConsoleSink(os.Stdout, cfg.Console),
		})
	}
	if cfg.HasSink("json") {
		path := settings.JSONPath
		if path == "" {
			path = "slithermatch-events.ndjson"
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		named = append(named, logging.NamedSink{
			Name: "json",
			Sink: sinks.NewJSON(file, cfg.JSON.FlushInterval),
		})
	}
	if cfg.HasSink("memory") {
		named = append(named, logging.NamedSink{Name: "memory", Sink: sinks.NewMemorySink()})
	}

	router, err := logging.NewRouter(nil, cfg, named)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(ctx)
	}
	return router, closer, nil
}
