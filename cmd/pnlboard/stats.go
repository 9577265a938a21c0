package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/dashboard"
)

var statsFlags queryFlags

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics",
	RunE:  runStats,
}

func init() {
	statsFlags.register(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	q, err := statsFlags.query(time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return withService(func(ctx context.Context, svc *dashboard.Service, cfg *config.Config, log *zap.Logger) error {
		view, err := svc.Stats(ctx, q)
		if err != nil {
			return err
		}
		printStats(out, view)
		log.Debug("stats printed", zap.Int("trades", view.Summary.TotalTrades))
		return nil
	})
}

func printStats(out io.Writer, view *dashboard.StatsView) {
	s := view.Summary
	if s.TotalTrades == 0 {
		fmt.Fprintf(out, "No trades in %s.\n", view.Range)
		return
	}

	title := "Performance Summary"
	if view.Strategy != "" {
		title += " - " + view.Strategy
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, "-------------------")
	fmt.Fprintf(out, "Range:          %s\n", view.Range)
	fmt.Fprintf(out, "Trades:         %d (%d won, %d lost)\n", s.TotalTrades, s.WinningTrades, s.LosingTrades)
	fmt.Fprintf(out, "Win rate:       %.1f%%\n", s.WinRate)
	fmt.Fprintf(out, "Total PnL:      %s\n", s.TotalPnL.StringFixed(2))
	fmt.Fprintf(out, "Gross profit:   %s\n", s.GrossProfit.StringFixed(2))
	fmt.Fprintf(out, "Gross loss:     %s\n", s.GrossLoss.StringFixed(2))
	fmt.Fprintf(out, "Avg win/loss:   %s / %s\n", s.AvgWin.StringFixed(2), s.AvgLoss.StringFixed(2))
	fmt.Fprintf(out, "Largest win:    %s\n", s.LargestWin.StringFixed(2))
	fmt.Fprintf(out, "Largest loss:   %s\n", s.LargestLoss.StringFixed(2))
	fmt.Fprintf(out, "Max drawdown:   %s\n", s.MaxDrawdown.StringFixed(2))
	fmt.Fprintf(out, "Profit factor:  %.2f\n", s.ProfitFactor)
	fmt.Fprintf(out, "Sharpe ratio:   %.2f\n", s.SharpeRatio)
}
