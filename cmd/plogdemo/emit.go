package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abyssdigger/plog"
	"github.com/abyssdigger/plog/config"
	"github.com/abyssdigger/plog/file"
	"github.com/spf13/cobra"
)

const DEFAULT_FLUSH_TIMEOUT = 10 * time.Second

func newEmitCmd(a *app) *cobra.Command {
	var (
		at     string
		tag    string
		count  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "emit message...",
		Short: "Log a message through the configured printers",
		Example: `  plogdemo emit --at warn --tag NET "link down"
  plogdemo emit --json '{"b":1,"a":[1,2]}'
  plogdemo emit --threshold error --count 3 ignored unless error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindFlags(cmd.Flags(), map[string]string{"level": "threshold", "file.dir": "file-dir"}); err != nil {
				return err
			}
			level, err := plog.ParseLevel(at)
			if err != nil {
				return err
			}
			if level.IsSentinel() {
				return fmt.Errorf("can't emit at %s, it is a threshold", strings.ToUpper(at))
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			built, err := cfg.Build(file.NewDirLock())
			if err != nil {
				return err
			}
			if built.Crash != nil {
				defer built.Crash.Recover()
			}
			logger := plog.NewLogger(built.Config, built.Printers...)
			client := logger.Client(tag)
			msg := strings.Join(args, " ")
			for range count {
				if asJSON {
					client.JSON(msg)
				} else {
					client.Log(level, msg)
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), DEFAULT_FLUSH_TIMEOUT)
			defer cancel()
			return built.Close(ctx)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&at, "at", "INFO", "level of the emitted entries")
	flags.StringVar(&tag, "tag", "", "tag of the emitted entries (config tag when empty)")
	flags.IntVarP(&count, "count", "n", 1, "number of times the message is logged")
	flags.BoolVar(&asJSON, "json", false, "pretty-print the message as JSON (DEBUG level)")
	flags.String("threshold", "", "override the configured level threshold")
	flags.String("file-dir", "", "override the configured file printer directory")
	return cmd
}
