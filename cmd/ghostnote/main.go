package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"ghostnote/internal/bootstrap"
	"ghostnote/internal/platform/config"
	"ghostnote/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "ghostnote",
		Short:         "Voice-note strategy drafts, judgment ledger and brief archive",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding the ledger database and config.yaml")

	root.AddCommand(newDraftCmd(&dataDir))
	root.AddCommand(newWagerCmd(&dataDir))
	root.AddCommand(newAuditCmd(&dataDir))
	root.AddCommand(newArchiveCmd(&dataDir))
	root.AddCommand(newStrategyCmd(&dataDir))
	root.AddCommand(newServeCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

// loadApp builds the application for one command. Callers must Close it.
func loadApp(ctx context.Context, dataDir string) (*bootstrap.App, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return app, nil
}

func closeApp(app *bootstrap.App) {
	_ = app.Close()
	_ = app.Logger.Sync()
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse drafts and the judgment ledger in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newAuditCmd(dataDir *string) *cobra.Command {
	var followUp string
	audit := &cobra.Command{
		Use:   "audit <wager-id> --follow-up <what happened>",
		Short: "Resolve a wager against what actually happened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if strings.TrimSpace(followUp) == "" {
				return fmt.Errorf("--follow-up is required")
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.AuditCLI.Audit(cmd.Context(), id, followUp)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wager %d audited by %s: accuracy=%d%%\n", out.WagerID, out.Resolver, out.AccuracyScore)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "blind spot: %s\n", out.BlindSpot)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "growth insight: %s\n", out.GrowthInsight)
			return nil
		},
	}
	audit.Flags().StringVar(&followUp, "follow-up", "", "what actually happened since the wager was sealed")
	return audit
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readInput returns the file at path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
