// Package main is the entry point for the spell cards server and tools
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spell-cards/internal/config"
)

var (
	envFile    string
	httpPort   int
	grpcPort   int
	store      string
	redisAddr  string
	sqlitePath string
)

var rootCmd = &cobra.Command{
	Use:          "spell-cards",
	Short:        "Pathfinder 2e spell card book",
	Long:         `spell-cards serves an editable book of Pathfinder 2e spell cards and provides tools to import, export and render it.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.IntVar(&httpPort, "http-port", 0, "HTTP port (overrides SPELLCARDS_HTTP_PORT)")
	flags.IntVar(&grpcPort, "grpc-port", 0, "gRPC health port, 0 disables it (overrides SPELLCARDS_GRPC_PORT)")
	flags.StringVar(&store, "store", "", "spell book store: redis or sqlite (overrides SPELLCARDS_STORE)")
	flags.StringVar(&redisAddr, "redis-addr", "", "redis address (overrides SPELLCARDS_REDIS_ADDR)")
	flags.StringVar(&sqlitePath, "sqlite-path", "", "sqlite file for the spell book (overrides SPELLCARDS_SQLITE_PATH)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(srdCmd)
}

// loadConfig reads the environment and applies any flags that were set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("http-port") {
		cfg.HTTPPort = httpPort
	}
	if flags.Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if flags.Changed("store") {
		cfg.Store = store
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr = redisAddr
		cfg.RedisURL = ""
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = sqlitePath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	return cfg, nil
}
