package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "holdem-rooms/docs"
	httpapi "holdem-rooms/internal/api/http"
	"holdem-rooms/internal/api/ws"
	"holdem-rooms/internal/config"
	"holdem-rooms/internal/logging"
	"holdem-rooms/internal/room"
	"holdem-rooms/internal/store"
)

const shutdownTimeout = 5 * time.Second

// @title Hold'em Rooms API
// @version 1.0
// @description Room inspection API for the multi-room Texas Hold'em server
// @contact.name Backend Team
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "holdem-server",
		Short:         "Multi-room Texas Hold'em game server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	f.String("addr", "", "listen address (overrides PORT)")
	f.String("allowed-origin", config.Defaults().AllowedOrigin, "allowed websocket/CORS origin")
	f.Int("starting-chips", config.Defaults().Table.StartingChips, "chips each player starts with")
	f.Duration("bot-delay", config.Defaults().Table.BotDelay, "bot think time")
	f.Int("bot-raise-step", config.Defaults().Table.BotRaiseStep, "amount the bot raises over the current bet")
	f.String("log-level", config.Defaults().LogLevel, "debug, info, warn or error")
	f.Bool("log-pretty", false, "human readable console logs")

	bind(v, cmd, map[string]string{
		config.KeyHTTPAddr:      "addr",
		config.KeyAllowedOrigin: "allowed-origin",
		config.KeyStartingChips: "starting-chips",
		config.KeyBotDelay:      "bot-delay",
		config.KeyBotRaiseStep:  "bot-raise-step",
		config.KeyLogLevel:      "log-level",
		config.KeyLogPretty:     "log-pretty",
	})
	return cmd
}

func bind(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg.Table, log.With().Str("component", "rooms").Logger())
	defer rm.Close()

	hub := ws.NewHub(rm, log, cfg.AllowedOrigin)
	rm.SetTransport(hub)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(rm, hub, cfg.AllowedOrigin, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
