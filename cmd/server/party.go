package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-shards/internal/app"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
)

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Manage party rosters and inventories",
}

var partySeedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Store party rosters and set their inventory counts from a JSON file",
	Long: `Store each party in the seed file and move every listed item to its seeded
count. Running the same file twice leaves the store unchanged. Example file:

  {"parties": [{"id": "party_1", "members": ["actor_1"], "inventory": {"w10": 2}}]}`,
	Args: cobra.ExactArgs(1),
	RunE: runPartySeed,
}

var partyResetCmd = &cobra.Command{
	Use:   "reset [party-id]",
	Short: "Delete a party with its member loadouts and inventory",
	Args:  cobra.ExactArgs(1),
	RunE:  runPartyReset,
}

func init() {
	partyCmd.AddCommand(partySeedCmd)
	partyCmd.AddCommand(partyResetCmd)
}

func runPartySeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0]) // #nosec G304 -- operator supplied seed file
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := app.LoadSeed(f)
	if err != nil {
		return err
	}

	application, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	for _, seed := range doc.Parties {
		result, err := application.SeedParty(cmd.Context(), seed)
		if err != nil {
			return err
		}
		if err := printJSON(cmd, result); err != nil {
			return err
		}
	}
	return nil
}

func runPartyReset(cmd *cobra.Command, args []string) error {
	application, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	result, err := application.ResetParty(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

// openApp builds the service over the configured Redis without loading link rules
func openApp(cmd *cobra.Command) (*app.App, func(), error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}

	client, err := redisclient.NewFromAddress(settings.RedisAddress, &redisclient.Options{UseTLS: settings.RedisUseTLS})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	application, err := app.New(&app.Config{Settings: settings, Redis: client})
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to build shard service: %w", err)
	}

	return application, func() { _ = client.Close() }, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
