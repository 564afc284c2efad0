package cmd

import (
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jwhitt/romannotate/engine"
	"github.com/jwhitt/romannotate/sidecar"
	"github.com/jwhitt/romannotate/util"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watches a directory and keeps sidecars up to date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch(args[0])
	},
}

func watch(dir string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}

	// write bursts (copies, DAW exports) are coalesced before analysis
	var mu sync.Mutex
	pending := make(map[string]struct{})
	flush := func() {
		mu.Lock()
		paths := util.SortedKeys(pending)
		for k := range pending {
			delete(pending, k)
		}
		mu.Unlock()

		for _, p := range paths {
			doc, err := engine.Analyze(p, engine.WithLogger(logger))
			if err != nil {
				logger.WithError(err).Errorf("analysis failed for %v", p)
				continue
			}
			data, err := sidecar.Render(doc)
			if err != nil {
				logger.WithError(err).Errorf("render failed for %v", p)
				continue
			}
			out := sidecar.Path(p)
			if err := os.WriteFile(out, data, 0644); err != nil {
				logger.WithError(err).Errorf("write failed for %v", out)
				continue
			}
			logger.Infof("wrote %v", out)
		}
	}
	debounced := debounce.New(500 * time.Millisecond)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	logger.Infof("watching %v", dir)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".mid") && !strings.HasSuffix(ev.Name, ".midi") {
				continue
			}
			mu.Lock()
			pending[ev.Name] = struct{}{}
			mu.Unlock()
			debounced(flush)
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.WithError(werr).Warn("watch error")
		case <-sigCh:
			logger.Info("stopping watch")
			return nil
		}
	}
}
