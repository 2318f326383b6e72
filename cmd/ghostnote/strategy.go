package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	draftdto "ghostnote/internal/modules/draft/dto"
)

func newStrategyCmd(dataDir *string) *cobra.Command {
	strategy := &cobra.Command{Use: "strategy", Short: "Analyze transcripts and generate strategy"}

	var transcriptPath string
	var duration time.Duration
	analyze := &cobra.Command{
		Use:   "analyze --transcript-file <path>",
		Short: "Measure speaking pace and extract signals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			transcript, err := readTranscript(cmd, transcriptPath)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.StrategyCLI.Analyze(cmd.Context(), transcript, duration)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	analyze.Flags().StringVar(&transcriptPath, "transcript-file", "-", "transcript text file (- for stdin)")
	analyze.Flags().DurationVar(&duration, "duration", 0, "recording length, e.g. 4m30s")

	var language, mode string
	var variation, share bool
	var draftID int64
	generate := &cobra.Command{
		Use:   "generate --transcript-file <path>",
		Short: "Generate scribe and strategist content with the configured model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			transcript, err := readTranscript(cmd, transcriptPath)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.StrategyCLI.Generate(cmd.Context(), transcript, duration, language, variation)
			if err != nil {
				return err
			}
			if draftID != 0 {
				analysis := out.Analysis
				if _, err := app.DraftCLI.AttachContent(cmd.Context(), draftdto.AttachContentInput{
					ID:       draftID,
					Content:  out.Content,
					Analysis: &analysis,
				}); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "content saved to draft %d\n", draftID)
			}
			if share {
				text, err := app.StrategyCLI.ShareText(cmd.Context(), out.Content, mode)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	generate.Flags().StringVar(&transcriptPath, "transcript-file", "-", "transcript text file (- for stdin)")
	generate.Flags().DurationVar(&duration, "duration", 0, "recording length, e.g. 4m30s")
	generate.Flags().StringVar(&language, "language", "EN", "output language code")
	generate.Flags().BoolVar(&variation, "variation", false, "ask for an alternative take")
	generate.Flags().Int64Var(&draftID, "draft", 0, "attach the result to this draft")
	generate.Flags().BoolVar(&share, "share", false, "print share text instead of JSON")
	generate.Flags().StringVar(&mode, "mode", "scribe", "share text view: scribe|strategist")

	strategy.AddCommand(analyze, generate)
	return strategy
}

func readTranscript(cmd *cobra.Command, path string) (string, error) {
	raw, err := readInput(cmd, path)
	if err != nil {
		return "", err
	}
	transcript := strings.TrimSpace(string(raw))
	if transcript == "" {
		return "", fmt.Errorf("transcript is empty")
	}
	return transcript, nil
}
