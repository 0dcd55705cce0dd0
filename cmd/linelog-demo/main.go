// Command linelog-demo emits a rotating stream of sample log lines across
// all five levels, exercising data pairs, retries, and error details.
//
// By default the stream is printed to stdout. With --follow the lines are
// instead consumed from the broadcast subscription and displayed in a
// terminal viewer.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/linelog"
)

func main() {
	cfg := linelog.NewConfig()

	var (
		count  int
		follow bool
	)

	rootCmd := &cobra.Command{
		Use:   "linelog-demo [flags]",
		Short: "Emit sample structured log lines",
		Long: `linelog-demo emits a rotating stream of sample log lines across all five
levels. Use --log-level to watch the global gate filter the stream, --color
to control ANSI output, and --follow to view the broadcast subscription in a
terminal UI instead of printing.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg, count, follow)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().IntVar(&count, "count", 100, "number of sample lines to emit")
	rootCmd.Flags().BoolVar(&follow, "follow", false, "view the stream in a terminal UI instead of printing")

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *linelog.Config, count int, follow bool) error {
	err := cfg.Apply()
	if err != nil {
		return err
	}

	if follow {
		return followStream(count)
	}

	colorize, err := cfg.ColorEnabled()
	if err != nil {
		return err
	}

	for idx := range count {
		emitSample(idx, colorize)
	}

	return nil
}

var sampleLevels = []linelog.Level{
	linelog.LevelTrace,
	linelog.LevelDebug,
	linelog.LevelInfo,
	linelog.LevelWarn,
	linelog.LevelError,
}

// emitSample builds and prints the idx-th sample entry.
func emitSample(idx int, colorize bool) {
	level := sampleLevels[idx%len(sampleLevels)]

	b := linelog.New("demo", fmt.Sprintf("mod%d", idx%4), level, messageFor(level, idx)).
		Cid(fmt.Sprintf("demo-%03d", idx)).
		Data("iteration", strconv.Itoa(idx)).
		Data("dur_ms", strconv.Itoa(5+idx%25)).
		Data("topic", fmt.Sprintf("topic-%d", idx%7)).
		Colorize(colorize)

	if level == linelog.LevelWarn {
		b = b.Data("retry", fmt.Sprintf("%d/5", 1+idx%5))
		if idx%3 == 0 {
			b = b.Detail("hint: check the task queue")
		}
	}

	if level == linelog.LevelError {
		b = b.Data("code", "E500").
			Detail("stack: demoWorker -> processTask").
			Detail("cause: simulated failure")
	}

	b.Print()
}

func messageFor(level linelog.Level, idx int) string {
	switch level {
	case linelog.LevelTrace:
		return fmt.Sprintf("Trace event %d", idx)
	case linelog.LevelDebug:
		return fmt.Sprintf("Step diagnostics %d", idx)
	case linelog.LevelInfo:
		return fmt.Sprintf("Operation completed %d", idx)
	case linelog.LevelWarn:
		return fmt.Sprintf("Recoverable anomaly %d", idx)
	case linelog.LevelError:
		return fmt.Sprintf("Processing failed %d", idx)
	}

	return fmt.Sprintf("Event %d", idx)
}
