package main

import (
	"fmt"
	"os"
	"time"

	"github.com/abyssdigger/plog"
	"github.com/abyssdigger/plog/file"
	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [dir]",
		Short: "Delete log files older than the retention window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindFlags(cmd.Flags(), map[string]string{"file.retention_days": "days"}); err != nil {
				return err
			}
			dir := a.v.GetString("file.dir")
			if len(args) > 0 {
				dir = args[0]
			}
			days := a.v.GetInt("file.retention_days")
			removed, err := file.Sweep(dir, days, time.Now())
			for _, name := range removed {
				fmt.Fprintln(cmd.OutOrStdout(), "removed", name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) removed from %s (retention %d days)\n", len(removed), dir, days)
			return err
		},
	}
	cmd.Flags().Int("days", 0, "retention window in days (config file.retention_days when not given)")
	return cmd
}

func newArchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive [dir] zipfile",
		Short: "Zip the files of a log directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, zipPath := a.v.GetString("file.dir"), args[0]
			if len(args) == 2 {
				dir, zipPath = args[0], args[1]
			}
			n, err := file.Archive(dir, zipPath, nil)
			if err != nil {
				return err
			}
			info, err := os.Stat(zipPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) from %s archived to %s (%s)\n",
				n, dir, zipPath, units.HumanSize(float64(info.Size())))
			return nil
		},
	}
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the level names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for level := plog.LVL_VERBOSE - 1; level <= plog.LVL_ERROR+1; level++ {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-10s %s\n", int(level), plog.LevelName(level), plog.LevelShortName(level))
			}
		},
	}
}
