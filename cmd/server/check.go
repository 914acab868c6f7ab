package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-shards/internal/app"
	redisclient "github.com/KirkDiggler/rpg-shards/internal/redis"
)

var checkDelete bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan stored loadouts and inventories for corrupt records",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkDelete, "delete", false, "delete corrupt records after confirmation")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}

	client, err := redisclient.NewFromAddress(settings.RedisAddress, &redisclient.Options{UseTLS: settings.RedisUseTLS})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "Scanning shard data at", settings.RedisAddress)

	report, err := app.CheckData(ctx, client, settings.MaxSlots)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\nChecked %d keys, found %d problems\n", report.Checked, len(report.Problems))
	if len(report.Problems) == 0 {
		return nil
	}

	for _, p := range report.Problems {
		_, _ = fmt.Fprintf(out, "  - %s: %s\n", p.Key, p.Reason)
	}

	if !checkDelete {
		return nil
	}

	_, _ = fmt.Fprint(out, "\nDo you want to DELETE these records? (yes/no): ")
	var response string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
	if !strings.EqualFold(strings.TrimSpace(response), "yes") {
		_, _ = fmt.Fprintln(out, "Aborted - no changes made")
		return nil
	}

	deleted, err := app.DeleteProblems(ctx, client, report)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Deleted %d records\n", deleted)
	return nil
}
