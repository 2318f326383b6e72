package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	archivedto "ghostnote/internal/modules/archive/dto"
	strategydto "ghostnote/internal/modules/strategy/dto"
)

func newArchiveCmd(dataDir *string) *cobra.Command {
	archive := &cobra.Command{Use: "archive", Short: "Publish and read strategy briefs"}

	var contentPath, mode, language string
	var draftID int64
	publish := &cobra.Command{
		Use:   "publish (--draft <id> | --content-file <path>)",
		Short: "Snapshot strategy content under a new public slug",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (draftID == 0) == (contentPath == "") {
				return fmt.Errorf("exactly one of --draft or --content-file is required")
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)

			input := archivedto.PublishInput{Mode: mode, Language: language}
			if draftID != 0 {
				d, err := app.DraftCLI.Show(cmd.Context(), draftID)
				if err != nil {
					return err
				}
				if d.Content == nil {
					return fmt.Errorf("draft %d has no generated content", draftID)
				}
				input.Content = *d.Content
				input.Analysis = d.Analysis
			} else {
				raw, err := readInput(cmd, contentPath)
				if err != nil {
					return err
				}
				content := strategydto.Content{}
				if err := json.Unmarshal(raw, &content); err != nil {
					return fmt.Errorf("decode content: %w", err)
				}
				input.Content = content
			}

			out, err := app.ArchiveCLI.Publish(cmd.Context(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "published %s at %s\n", out.ID, out.PublicPath)
			return nil
		},
	}
	publish.Flags().Int64Var(&draftID, "draft", 0, "draft whose content to publish")
	publish.Flags().StringVar(&contentPath, "content-file", "", "JSON strategy content (- for stdin)")
	publish.Flags().StringVar(&mode, "mode", "scribe", "view to publish: scribe|strategist")
	publish.Flags().StringVar(&language, "language", "EN", "language code")

	var width int
	var asJSON bool
	show := &cobra.Command{
		Use:   "show <slug>",
		Short: "Render a published brief",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			if asJSON {
				out, err := app.ArchiveCLI.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out)
			}
			text, err := app.ArchiveCLI.Show(cmd.Context(), args[0], width)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(text, "\n"))
			return nil
		},
	}
	show.Flags().IntVar(&width, "width", 80, "wrap width")
	show.Flags().BoolVar(&asJSON, "json", false, "print the stored entry as JSON")

	var dir string
	export := &cobra.Command{
		Use:   "export <slug> --dir <path>",
		Short: "Write a brief as a markdown note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			path, err := app.ArchiveCLI.Export(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
			return nil
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "target directory")

	archive.AddCommand(publish, show, export)
	return archive
}
