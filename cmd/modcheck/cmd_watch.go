package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/modcheck/workspace"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Poll a directory and report documents as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if info, err := os.Stat(dir); err != nil {
				return err
			} else if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", dir)
			}

			if !cmd.Flags().Changed("interval") {
				interval = cfg.Watch.Interval.Duration
			}

			ws := workspace.New(dir,
				workspace.WithExtension(cfg.Check.Extension),
				workspace.WithParserOptions(cfg.ParserOptions()...),
			)
			out := cmd.OutOrStdout()
			fw := workspace.NewFileWatcher(ws, interval, func(ev workspace.Event) {
				printEvent(out, ev)
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fw.Start()
			<-ctx.Done()
			fw.Stop()
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval (overrides the config file)")

	return cmd
}

func printEvent(w io.Writer, ev workspace.Event) {
	if ev.Removed {
		fmt.Fprintf(w, "%s: removed\n", ev.Path)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", ev.Path, styleVerdict(ev.File.Valid(), validity(ev.File.Valid())))
	if d := ev.File.Result.Diagnostic; d != nil {
		fmt.Fprintf(w, "  %s\n", d)
	}
}
