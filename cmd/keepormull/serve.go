package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	rand "math/rand/v2"

	"github.com/lox/keepormull/cmd/keepormull/shared"
	"github.com/lox/keepormull/internal/randutil"
	"github.com/lox/keepormull/internal/server"
)

// ServeCmd runs the HTTP and websocket practice server.
type ServeCmd struct {
	Config string `kong:"default='keepormull.hcl',help='Path to HCL config file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed for shuffles (optional)'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	addr := cfg.Addr()
	if c.Addr != "" {
		addr = c.Addr
	}
	level := cfg.Server.LogLevel
	if c.Debug {
		level = "debug"
	}

	var rng *rand.Rand
	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info().Int64("seed", seed).Msg("Using deterministic seed")
		rng = randutil.New(seed)
	} else {
		seed = time.Now().UnixNano()
		rng = randutil.New(seed)
	}

	st, err := shared.OpenBackend(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	s := server.NewServer(shared.SetupServerLogger(level), st, server.WithRNG(rng))

	logger.Info().
		Str("address", addr).
		Str("store", cfg.Store.Backend).
		Str("store_path", cfg.Store.Path).
		Msg("Starting keepormull server")

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := s.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
