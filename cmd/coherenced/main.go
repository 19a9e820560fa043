// Command coherenced runs the relay daemon that holds the upstream API
// credentials and forwards evaluation prompts on behalf of clients.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/coherence-eval/coherence/internal/server"
)

func main() {
	log := clog.New(slog.NewJSONHandler(os.Stderr, nil))
	ctx := clog.WithLogger(context.Background(), log)

	var config server.Config
	if err := envconfig.Process(ctx, &config); err != nil {
		log.With("error", err).Error("failed to load configuration")
		os.Exit(1)
	}

	if config.APIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; evaluate requests will fail")
	}

	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           server.New(config).Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.With("addr", config.Addr, "upstream", config.UpstreamURL).Info("relay listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.With("error", err).Error("server failed")
		os.Exit(1)
	}
}
