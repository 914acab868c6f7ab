// Package main is the entry point for the shard loadout gRPC server
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-shards/cmd/server/client"
	"github.com/KirkDiggler/rpg-shards/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-shards",
	Short: "RPG shard loadout gRPC server",
	Long: `rpg-shards manages shard loadouts: slot counts, locks, equipped shards,
the party inventory exchange and the abilities granted by adjacent shards.`,
	SilenceUsage: true,
}

var (
	redisAddress   string
	catalogFile    string
	linksFile      string
	defaultPartyID string
	logLevel       string
	maxSlots       int
	cursedShards   []int
	useLinks       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&redisAddress, "redis", "", "Redis address, comma separated for cluster mode")
	flags.StringVar(&catalogFile, "catalog", "", "item catalog JSON file")
	flags.StringVar(&linksFile, "links", "", "shard link rules file")
	flags.StringVar(&defaultPartyID, "party", "", "default party id")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.IntVar(&maxSlots, "max-slots", 0, "maximum shard slots per character")
	flags.IntSliceVar(&cursedShards, "cursed", nil, "shard ids that lock their slot")
	flags.BoolVar(&useLinks, "use-links", true, "grant abilities for adjacent shards")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(partyCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// loadSettings reads the environment, applies any flags that were set and
// validates the result
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	settings, err := readSettings(cmd)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// readSettings reads the environment and flags and configures logging
func readSettings(cmd *cobra.Command) (*config.Config, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("redis") {
		settings.RedisAddress = redisAddress
	}
	if flags.Changed("catalog") {
		settings.CatalogFile = catalogFile
	}
	if flags.Changed("links") {
		settings.LinksFile = linksFile
	}
	if flags.Changed("party") {
		settings.DefaultPartyID = defaultPartyID
	}
	if flags.Changed("log-level") {
		settings.LogLevel = logLevel
	}
	if flags.Changed("max-slots") {
		settings.MaxSlots = maxSlots
	}
	if flags.Changed("cursed") {
		settings.CursedShards = cursedShards
	}
	if flags.Changed("use-links") {
		settings.UseLinks = useLinks
	}
	if flags.Changed("port") {
		settings.GRPCPort = grpcPort
	}

	level, err := config.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return settings, nil
}
