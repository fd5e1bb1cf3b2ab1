package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wormle/internal/httpserver"
	"github.com/robalobadob/wormle/internal/store"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start an HTTP server exposing solver sessions as a JSON API. Sessions live in memory only.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if servePort != "" {
		cfg.Port = servePort
	}
	list, err := loadWords(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	srv := httpserver.New(store.NewMemoryStore(), httpserver.Options{
		Words:        list,
		Length:       cfg.WordLength,
		Shuffle:      cfg.Shuffle,
		JWTSecret:    []byte(cfg.JWTSecret),
		TokenTTL:     cfg.GetTokenTTL(),
		SessionTTL:   cfg.GetSessionTTL(),
		RateLimitRPS: cfg.RateLimitRPS,
		RateBurst:    cfg.RateLimitBurst,
		ClientOrigin: cfg.ClientOrigin,
	})
	log.Info().Str("port", cfg.Port).Int("words", len(list)).Msg("starting wormle server")
	return srv.Start(cmd.Context(), cfg.Addr())
}
