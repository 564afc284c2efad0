package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwhitt/romannotate/midi"
	"github.com/jwhitt/romannotate/util"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Dumps the parsed event stream of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	parsed, err := midi.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("ticks per quarter: %v\n", parsed.TicksPerQuarter)
	for _, t := range parsed.Tempos {
		fmt.Printf("tempo: tick=%v micros/quarter=%v\n", t.Tick, t.MicrosPerQuarter)
	}
	for _, ts := range parsed.TimeSignatures {
		fmt.Printf("time signature: tick=%v %v/%v\n", ts.Tick, ts.Numerator, ts.Denominator)
	}

	counts := make(map[uint8]int)
	for _, n := range parsed.Notes {
		counts[n.Channel]++
	}
	for _, ch := range util.SortedKeys(counts) {
		fmt.Printf("channel %v: %v notes\n", ch, counts[ch])
	}

	for _, a := range parsed.Anomalies {
		fmt.Printf("anomaly: %v\n", a.Message)
	}
	return nil
}
