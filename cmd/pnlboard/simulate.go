package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/dashboard"
)

var simulateFlags queryFlags

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo profiles over the yearly PnL",
	Long: `Draws one randomized cumulative path per configured profile. Each period's
PnL is perturbed by a uniform factor within the profile's bound. Pass --seed
to reproduce a run.`,
	RunE: runSimulate,
}

func init() {
	simulateFlags.register(simulateCmd)
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	q, err := simulateFlags.query(time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return withService(func(ctx context.Context, svc *dashboard.Service, cfg *config.Config, log *zap.Logger) error {
		view, err := svc.Simulate(ctx, q)
		if err != nil {
			return err
		}
		printSimulation(out, view)
		log.Debug("simulation printed", zap.Uint64("seed", view.Seed))
		return nil
	})
}

func printSimulation(out io.Writer, view *dashboard.SimulationView) {
	if len(view.Base) == 0 {
		fmt.Fprintln(out, "No periods to simulate.")
		return
	}

	header := []string{"PERIOD", "BASE"}
	for _, p := range view.Paths {
		header = append(header, fmt.Sprintf("%s (±%.0f%%)", strings.ToUpper(p.Name), p.Bound*100))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")
	for i, b := range view.Base {
		row := []string{b.Key, b.Cumulative.StringFixed(2)}
		for _, p := range view.Paths {
			row = append(row, p.Points[i].Value.StringFixed(2))
		}
		fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
	}
	w.Flush()

	fmt.Fprintf(out, "\nSeed: %d\n", view.Seed)
}
