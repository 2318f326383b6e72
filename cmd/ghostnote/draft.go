package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	draftdto "ghostnote/internal/modules/draft/dto"
	strategydto "ghostnote/internal/modules/strategy/dto"
)

func newDraftCmd(dataDir *string) *cobra.Command {
	draft := &cobra.Command{Use: "draft", Short: "Capture and manage voice-note drafts"}

	var title, transcript, tag, audioPath string
	create := &cobra.Command{
		Use:   "create [--title <title>]",
		Short: "Save a new draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			audioData := ""
			if audioPath != "" {
				uri, err := audioDataURI(audioPath)
				if err != nil {
					return err
				}
				audioData = uri
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.DraftCLI.Create(cmd.Context(), title, transcript, tag, audioData)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "draft %d saved (%s)\n", out.ID, out.Status)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "draft title (defaults to \"Voice Note <time>\")")
	create.Flags().StringVar(&transcript, "transcript", "", "transcript text (empty keeps the audio-only placeholder)")
	create.Flags().StringVar(&tag, "tag", "", "tag (default brain dump)")
	create.Flags().StringVar(&audioPath, "audio", "", "optional audio file stored inline as a data URI")

	list := &cobra.Command{
		Use:   "list",
		Short: "List drafts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			drafts, err := app.DraftCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no drafts")
				return nil
			}
			for _, d := range drafts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", d.ID, d.Status, d.CreatedAt.Local().Format("2006-01-02 15:04"), d.Title)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one draft as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.DraftCLI.Show(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	var newTitle, newTranscript, contentPath string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a draft's title, transcript or generated content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			input := draftdto.UpdateInput{ID: id}
			if cmd.Flags().Changed("title") {
				input.Title = &newTitle
			}
			if cmd.Flags().Changed("transcript") {
				input.Transcript = &newTranscript
			}
			if contentPath != "" {
				raw, err := readInput(cmd, contentPath)
				if err != nil {
					return err
				}
				content := strategydto.Content{}
				if err := json.Unmarshal(raw, &content); err != nil {
					return fmt.Errorf("decode content: %w", err)
				}
				now := time.Now().UTC()
				input.Content = &content
				input.LastUpdated = &now
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.DraftCLI.Update(cmd.Context(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "draft %d updated (%s)\n", out.ID, out.Status)
			return nil
		},
	}
	update.Flags().StringVar(&newTitle, "title", "", "new title")
	update.Flags().StringVar(&newTranscript, "transcript", "", "new transcript")
	update.Flags().StringVar(&contentPath, "content-file", "", "JSON strategy content to store (- for stdin)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(cmd.Context(), *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(app)
			if err := app.DraftCLI.Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "draft %d deleted\n", id)
			return nil
		},
	}

	draft.AddCommand(create, list, show, update, del)
	return draft
}

func audioDataURI(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		mediaType = "audio/webm"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}
