package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-shards/internal/commands"
)

var (
	execVars     []string
	execCommands []string
)

var execCmd = &cobra.Command{
	Use:   "exec [script]",
	Short: "Run MSHARDS command lines against the store",
	Long: `Run MSHARDS command lines directly against Redis, without a server. Lines come
from --command flags, a script file, or stdin when the script is "-". Examples:

  exec -c "MSHARDS SLOTS 1 3" -c "MSHARDS CHANGE 1 1 w10"
  exec --var 5=2 setup.mshards`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringArrayVar(&execVars, "var", nil, "game variable as id=value, repeatable")
	execCmd.Flags().StringArrayVarP(&execCommands, "command", "c", nil, "command line to run, repeatable")
}

func runExec(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	script, err := execScript(cmd, args)
	if err != nil {
		return err
	}

	vars, err := commands.ParseVariables(execVars)
	if err != nil {
		return err
	}

	application, closeApp, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeApp()

	if err := application.LoadRules(ctx); err != nil {
		return err
	}

	dispatcher, err := application.Dispatcher(vars)
	if err != nil {
		return err
	}

	results, runErr := dispatcher.ExecuteScript(ctx, script)
	for _, result := range results {
		if err := printJSON(cmd, result); err != nil {
			return err
		}
	}

	return runErr
}

func execScript(cmd *cobra.Command, args []string) (io.Reader, error) {
	switch {
	case len(execCommands) > 0 && len(args) > 0:
		return nil, fmt.Errorf("use either --command or a script, not both")
	case len(execCommands) > 0:
		return strings.NewReader(strings.Join(execCommands, "\n")), nil
	case len(args) == 0 || args[0] == "-":
		return cmd.InOrStdin(), nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 -- operator supplied script
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return strings.NewReader(string(data)), nil
}
