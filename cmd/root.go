package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logFile string

var rootCmd = &cobra.Command{
	Use:   "romannotate",
	Short: "Roman-numeral harmony annotations for MIDI files",
	Long: `romannotate detects the key of a MIDI performance and writes a
sidecar file labeling every measure with a Roman numeral.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append engine logs to this file instead of stderr")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// newLogger builds the CLI's log sink. The returned func closes the log
// file, if one was opened.
func newLogger() (*logrus.Logger, func(), error) {
	l := logrus.New()
	if logFile == "" {
		return l, func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	l.SetOutput(f)
	return l, func() { f.Close() }, nil
}
