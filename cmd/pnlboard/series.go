package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/pnlboard/internal/config"
	"github.com/newthinker/pnlboard/internal/dashboard"
)

var seriesFlags queryFlags

var seriesCmd = &cobra.Command{
	Use:       "series [cumulative|drawdown|yearly]",
	Short:     "Print a derived PnL series as a table",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"cumulative", "drawdown", "yearly"},
	RunE:      runSeries,
}

func init() {
	seriesFlags.register(seriesCmd)
	rootCmd.AddCommand(seriesCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	q, err := seriesFlags.query(time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	return withService(func(ctx context.Context, svc *dashboard.Service, cfg *config.Config, log *zap.Logger) error {
		switch args[0] {
		case "cumulative":
			view, err := svc.Cumulative(ctx, q)
			if err != nil {
				return err
			}
			printCumulative(out, view)
			log.Debug("cumulative printed", zap.Int("points", len(view.Points)))
		case "drawdown":
			view, err := svc.Drawdown(ctx, q)
			if err != nil {
				return err
			}
			printDrawdown(out, view)
			log.Debug("drawdown printed", zap.Int("points", len(view.Points)))
		case "yearly":
			view, err := svc.Yearly(ctx, q)
			if err != nil {
				return err
			}
			printYearly(out, view)
			log.Debug("yearly printed", zap.Int("years", len(view.Years)))
		default:
			return fmt.Errorf("unknown series %q (want cumulative, drawdown or yearly)", args[0])
		}
		return nil
	})
}

func printCumulative(out io.Writer, view *dashboard.CumulativeView) {
	if len(view.Points) == 0 {
		fmt.Fprintf(out, "No trades in %s.\n", view.Range)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCUMULATIVE\t")
	fmt.Fprintln(w, "----\t----------\t")
	for _, p := range view.Points {
		fmt.Fprintf(w, "%s\t%s\t\n", p.Key, p.Cumulative.StringFixed(2))
	}
	w.Flush()
	fmt.Fprintf(out, "\nTotal: %s over %s\n", view.Total.StringFixed(2), view.Range)
}

func printDrawdown(out io.Writer, view *dashboard.DrawdownView) {
	if len(view.Points) == 0 {
		fmt.Fprintf(out, "No trades in %s.\n", view.Range)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tEQUITY\tPEAK\tDRAWDOWN\tBAND\tSTOP\t")
	fmt.Fprintln(w, "----\t------\t----\t--------\t----\t----\t")
	for i, p := range view.Points {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.Key,
			p.Equity.StringFixed(2),
			p.Peak.StringFixed(2),
			p.Drawdown.StringFixed(2),
			view.Normalized[i].StringFixed(2),
			view.StopLine[i].StringFixed(2))
	}
	w.Flush()

	fmt.Fprintf(out, "\nMax drawdown: %s at %s\n", view.MaxDrawdown.StringFixed(2), view.MaxDrawdownAt)
	if len(view.Breaches) > 0 {
		fmt.Fprintf(out, "Stop (%s) reached on: %v\n", view.StopMode, view.Breaches)
	}
}

func printYearly(out io.Writer, view *dashboard.YearlyView) {
	if len(view.Years) == 0 {
		fmt.Fprintln(out, "No yearly data.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "YEAR\tPNL\tCUMULATIVE\tDRAWDOWN\t")
	fmt.Fprintln(w, "----\t---\t----------\t--------\t")
	for _, y := range view.Years {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			y.Year, y.PnL.StringFixed(2), y.Cumulative.StringFixed(2), y.Drawdown.StringFixed(2))
	}
	w.Flush()
}
