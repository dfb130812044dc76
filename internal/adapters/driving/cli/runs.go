package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/galley/internal/core/domain"
)

var (
	runsLimit   int
	runsShowRaw bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect saved chaining runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs")
	runsShowCmd.Flags().BoolVar(&runsShowRaw, "json", false, "output the run as JSON")
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	svc, err := chainService()
	if err != nil {
		return err
	}

	runs, err := svc.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No saved runs.")
		return nil
	}
	for _, r := range runs {
		cmd.Printf("%s  %s  %d tokens  %d chains  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Tokens, r.ChainCount, r.Name)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	svc, err := chainService()
	if err != nil {
		return err
	}

	run, err := svc.GetRun(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	if runsShowRaw {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	renderRun(cmd.OutOrStdout(), run)
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	svc, err := chainService()
	if err != nil {
		return err
	}

	err = svc.DeleteRun(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %s not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	cmd.Printf("Deleted run %s\n", args[0])
	return nil
}
