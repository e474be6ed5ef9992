package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/golangdaddy/apexdrift/pkg/game"
)

func newSimulateCmd() *cobra.Command {
	var (
		ticks int
		fps   float64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "drives a seeded run headless with the autopilot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks <= 0 || fps <= 0 {
				return fmt.Errorf("ticks and fps must be positive")
			}
			tuning, err := loadTuning()
			if err != nil {
				return err
			}
			s := seed
			if s == 0 {
				s = time.Now().UnixNano()
			}
			sum, err := game.Simulate(tuning, s, ticks, 1/fps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"seed=%d ticks=%d score=%d distance=%.0f crashed=%t good=%d perfect=%d\n",
				sum.Seed, sum.Ticks, sum.Score, sum.Distance, sum.Crashed, sum.Good, sum.Perfect)
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 60*60*5, "maximum ticks to simulate")
	cmd.Flags().Float64Var(&fps, "fps", 60, "fixed simulation rate")
	return cmd
}
