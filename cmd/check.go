package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridwerk/microgrid/config"
	"github.com/gridwerk/microgrid/core/guard"
	"github.com/gridwerk/microgrid/core/model"
	"github.com/gridwerk/microgrid/infra/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check <snapshot.json>",
	Short: "Validate a telemetry snapshot against the guard-rail constraints",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var state model.SystemState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	g := guard.New(logger.New("guard-rail"))
	for _, sc := range cfg.Cycle.Constraints {
		c, err := sc.Constraint()
		if err != nil {
			return fmt.Errorf("site constraint: %w", err)
		}
		g.AddConstraint(sc.Component, c)
	}

	report := g.CheckSystemHealth(state)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	if !report.Healthy {
		return fmt.Errorf("%d critical violation(s)", report.CriticalViolations)
	}
	return nil
}
