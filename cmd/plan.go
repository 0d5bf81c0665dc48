package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridwerk/microgrid/config"
	"github.com/gridwerk/microgrid/core/forecast"
	"github.com/gridwerk/microgrid/core/solver"
	"github.com/gridwerk/microgrid/infra/logger"
)

var planSOC float64

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a one-shot dispatch plan and print it as JSON",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().Float64Var(&planSOC, "soc", -1, "initial state of charge in percent (defaults to the configured value)")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	soc := cfg.Cycle.InitialSOCPct
	if planSOC >= 0 {
		soc = planSOC
	}

	horizon := cfg.Cycle.HorizonHours
	source := forecast.NewSynthetic(cfg.Forecast)
	bridge := solver.NewBridge(logger.New("solver-bridge"))
	res := bridge.Optimize(source.Solar(horizon), source.Load(horizon), cfg.Cycle.BatteryCapacityKWh, soc, cfg.Cycle.Tariff, horizon)

	out := struct {
		solver.Result
		SOCTrajectory []float64 `json:"soc_trajectory"`
	}{
		Result:        res,
		SOCTrajectory: solver.ProjectSOC(res.BatterySchedule, cfg.Cycle.BatteryCapacityKWh, soc),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
