package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwhitt/romannotate/db"
	"github.com/jwhitt/romannotate/engine"
	"github.com/jwhitt/romannotate/sidecar"
)

var (
	analyzeOut      string
	analyzeMetadata bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "sidecar output path (default: next to the input)")
	analyzeCmd.Flags().BoolVar(&analyzeMetadata, "metadata", false, "look up source metadata and embed it in the sidecar")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.mid>",
	Short: "Writes a Roman-numeral sidecar for a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyze(args[0])
	},
}

func analyze(path string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithProgress(func(stage engine.Stage, measure int) {
			switch stage {
			case engine.StageParsed:
				fmt.Println("Parsed midi file")
			case engine.StageKeyDetected:
				fmt.Println("Detected key")
			case engine.StageDone:
				fmt.Printf("Labeled %v measures\n", measure)
			}
		}),
	}
	if analyzeMetadata {
		opts = append(opts, engine.WithMetadataLookup(db.GetSourceMetadata))
	}

	doc, err := engine.Analyze(path, opts...)
	if err != nil {
		return err
	}

	data, err := sidecar.Render(doc)
	if err != nil {
		return err
	}

	out := analyzeOut
	if out == "" {
		out = sidecar.Path(path)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %v (key %v %v)\n", out, doc.Key.TonicName(), doc.Key.Mode)
	return nil
}
