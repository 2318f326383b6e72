package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newWagerCmd(dataDir *string) *cobra.Command {
	wager := &cobra.Command{Use: "wager", Short: "Seal and review judgment wagers"}

	var days int
	var sessionID string
	seal := &cobra.Command{
		Use:   "seal <prediction> --days <30|90|365>",
		Short: "Seal a prediction for later audit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.WagerCLI.Seal(cmd.Context(), sessionID, strings.Join(args, " "), days)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wager %d sealed, review on %s\n", out.ID, out.ReviewDate.Local().Format("2006-01-02"))
			return nil
		},
	}
	seal.Flags().IntVar(&days, "days", 30, "review horizon in days: 30|90|365")
	seal.Flags().StringVar(&sessionID, "session-id", "", "optional strategy session the wager came from")

	list := &cobra.Command{
		Use:   "list",
		Short: "List wagers with their current status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			wagers, err := app.WagerCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(wagers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no wagers")
				return nil
			}
			for _, w := range wagers {
				score := "-"
				if w.AccuracyScore != nil {
					score = fmt.Sprintf("%d%%", *w.AccuracyScore)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n", w.ID, w.DisplayStatus, w.ReviewDate.Local().Format("2006-01-02"), score, w.Prediction)
			}
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the judgment ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.WagerCLI.Stats(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total=%d pending=%d due=%d audited=%d average_accuracy=%d%%\n", out.Total, out.Pending, out.Due, out.Audited, out.AverageAccuracy)
			return nil
		},
	}

	wager.AddCommand(seal, list, stats)
	return wager
}
