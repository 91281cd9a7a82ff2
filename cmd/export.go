package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/snf/qa-bot-core/qabot"
	"github.com/snf/qa-bot-core/qabot/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversations to file",
	Long: `Export saved conversations to various formats (jsonl, md, yaml, json).

You can export all conversations or a single one by ID.
Use 'qa-bot list' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		storage, cleanup, err := openStorage()
		if err != nil {
			return err
		}
		defer func() { _ = cleanup() }()

		store := storage.Load()
		if len(store) == 0 {
			return fmt.Errorf("no saved conversations to export")
		}

		var transcripts []*export.Transcript
		if sessionID != "" {
			session := findSession(store, sessionID)
			if session == nil {
				return fmt.Errorf("session %s not found", sessionID)
			}
			transcripts = append(transcripts, export.NewTranscript(sessionID, session))
		} else {
			for id, session := range store {
				transcripts = append(transcripts, export.NewTranscript(id, session))
			}
		}

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		for _, transcript := range transcripts {
			path := filepath.Join(outputDir,
				fmt.Sprintf("%s.%s", transcript.SessionID, exporter.Extension()))
			if err := writeTranscript(exporter, transcript, path); err != nil {
				return err
			}
			qabot.LogInfo("Exported %s", path)
		}

		fmt.Printf("Exported %d conversation(s) to %s\n", len(transcripts), outputDir)
		return nil
	},
}

func writeTranscript(exporter export.Exporter, transcript *export.Transcript, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := exporter.Export(transcript, f); err != nil {
		return fmt.Errorf("failed to export %s: %w", transcript.SessionID, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&format, "format", "f", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&outputDir, "output", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Export a single session by ID")
}
