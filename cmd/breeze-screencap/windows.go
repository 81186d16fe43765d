package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/breeze-rmm/screencap/internal/tools"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List top-level windows, front to back",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()
		windows, err := svc.ListWindows()
		if err != nil {
			emit(tools.NewErrorResult(tools.CmdListWindows, err, time.Since(start).Milliseconds()))
			return
		}
		emit(tools.NewSuccessResult(tools.CmdListWindows, windows, time.Since(start).Milliseconds()))
	},
}

var windowAtCmd = &cobra.Command{
	Use:   "window-at X Y",
	Short: "Show the frontmost window under a point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := parseInts(args)
		if err != nil {
			return err
		}
		start := time.Now()
		win, err := svc.WindowAt(pt[0], pt[1])
		if err != nil {
			emit(tools.NewErrorResult(tools.CmdWindowAt, err, time.Since(start).Milliseconds()))
			return nil
		}
		emit(tools.NewSuccessResult(tools.CmdWindowAt, win, time.Since(start).Milliseconds()))
		return nil
	},
}
