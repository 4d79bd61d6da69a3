package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rehnuma-chat/internal/chat"
)

const (
	formatText = "text"
	formatHTML = "html"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored conversation to a transcript file",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		if format != formatText && format != formatHTML {
			return fmt.Errorf("unknown format %q (want text or html)", exportFormat)
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		s.store.Restore(context.Background())
		messages := chat.MessagesFromTurns(s.store.Turns())
		if len(messages) == 0 {
			s.surface.Notify("No messages to download.")
			return nil
		}

		now := time.Now()
		path, body := exportTarget(format, exportOutput, now, messages)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", formatText, "transcript format: text or html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default rehnuma-chat-<timestamp>.txt|.html)")
}

// exportTarget picks the output path and renders the transcript body.
func exportTarget(format, output string, now time.Time, messages []chat.Message) (string, string) {
	path := output
	if path == "" {
		path = chat.TranscriptFileName(now)
		if format == formatHTML {
			path = strings.TrimSuffix(path, ".txt") + ".html"
		}
	}
	if format == formatHTML {
		return path, chat.RenderHTMLDocument(messages, "Rehnuma Chat History", now)
	}
	return path, chat.FormatTranscript(messages, now)
}
